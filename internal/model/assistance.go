package model

import "time"

// Assistance links one user to one event; at most one row may exist per
// (user, event) pair, enforced by a unique constraint.
type Assistance struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"userId" db:"user_id"`
	EventID       int       `json:"eventId" db:"event_id"`
	SignaturePath *string   `json:"signaturePath,omitempty" db:"signature_path"`
	PhotoPath     *string   `json:"photoPath,omitempty" db:"photo_path"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

type ParentalAuthorization struct {
	ID                int       `json:"id" db:"id"`
	UserID            int       `json:"userId" db:"user_id"`
	EventID           int       `json:"eventId" db:"event_id"`
	AuthorizationPath string    `json:"authorizationPath" db:"authorization_path"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}

// RegistrationInput drives one attendance registration. Exactly one of
// UserID or Profile identifies the person; Signature and Photo are optional
// proof artifacts (mutually exclusive).
type RegistrationInput struct {
	EventID   int
	UserID    int
	Profile   *UserProfile
	Signature string // base64 data URL
	Photo     []byte
	PhotoName string
}

// RegistrationResult is the outcome of a single registration.
type RegistrationResult struct {
	AssistanceID int    `json:"assistanceId"`
	UserID       int    `json:"userId"`
	FileURL      string `json:"fileUrl,omitempty"`
}

// BatchItemResult is one entry of a batch registration response. Error and
// Message are user-facing; exactly one of the outcome fields is set.
type BatchItemResult struct {
	Identification string `json:"identification"`
	AssistanceID   int    `json:"assistanceId,omitempty"`
	SignaturePath  string `json:"signaturePath,omitempty"`
	Message        string `json:"message,omitempty"`
	Error          string `json:"error,omitempty"`
}

// BatchRegistrationInput registers many people against one event.
type BatchRegistrationInput struct {
	EventID int
	Users   []BatchUserInput
}

type BatchUserInput struct {
	UserProfile
	Signature string `json:"signature"`
}
