package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	S3       S3Config
	JWT      JWTConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// SecretName points at an AWS Secrets Manager secret whose JSON payload
	// overrides the credential fields above. Empty means env-only config.
	SecretName string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	// .env is optional; deployments configure through the environment.
	_ = godotenv.Load()

	AppConfig = &Config{
		Server:   GetServerConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		S3:       GetS3Config(),
		JWT:      GetJWTConfig(),
	}

	if AppConfig.Database.SecretName != "" {
		if err := ResolveDatabaseSecret(context.Background(), &AppConfig.Database); err != nil {
			panic(err)
		}
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := DatabaseConfig{
		Host:     "localhost",
		Port:     "5433",
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380",
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:   ServerConfig{Port: "5000"},
		Database: testConfig,
		Redis:    testRedisConfig,
		S3: S3Config{
			Region: "us-east-1",
			Bucket: "test-bucket",
		},
		JWT: JWTConfig{
			Secret: "test-secret",
			Expiry: 7 * 24 * time.Hour,
		},
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port: getEnv("PORT", "5000"),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       getEnv("DB_PORT", "5432"),
		User:       getEnv("DB_USER", "postgres"),
		Password:   getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "eventos"),
		SSLMode:    getEnv("DB_SSL_MODE", "disable"),
		SecretName: getEnv("DB_SECRET_NAME", ""),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetS3Config() S3Config {
	return S3Config{
		Region:          getEnv("AWS_REGION", "us-east-1"),
		Bucket:          getEnv("AWS_BUCKET_NAME", ""),
		AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}
}

func GetJWTConfig() JWTConfig {
	// Issued tokens are valid for 7 days.
	return JWTConfig{
		Secret: getEnv("JWT_SECRET", "change-me"),
		Expiry: 7 * 24 * time.Hour,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
