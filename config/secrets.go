package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// databaseSecret mirrors the JSON layout stored in Secrets Manager.
type databaseSecret struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
}

// ResolveDatabaseSecret fetches the named secret and merges any non-empty
// fields over the env-derived database config.
func ResolveDatabaseSecret(ctx context.Context, dbConfig *DatabaseConfig) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load aws config: %w", err)
	}

	client := secretsmanager.NewFromConfig(awsCfg)

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &dbConfig.SecretName,
	})
	if err != nil {
		return fmt.Errorf("failed to get secret %q: %w", dbConfig.SecretName, err)
	}

	if out.SecretString == nil {
		return errors.New("secret has no string payload")
	}

	var secret databaseSecret
	if err := json.Unmarshal([]byte(*out.SecretString), &secret); err != nil {
		return fmt.Errorf("failed to decode secret %q: %w", dbConfig.SecretName, err)
	}

	if secret.Host != "" {
		dbConfig.Host = secret.Host
	}
	if secret.Port != "" {
		dbConfig.Port = secret.Port
	}
	if secret.Username != "" {
		dbConfig.User = secret.Username
	}
	if secret.Password != "" {
		dbConfig.Password = secret.Password
	}
	if secret.DBName != "" {
		dbConfig.DBName = secret.DBName
	}

	return nil
}
