package model

import "time"

type User struct {
	ID             int       `json:"id" db:"id"`
	FullName       string    `json:"fullName" db:"full_name"`
	Identification string    `json:"identification" db:"identification"`
	DocumentType   *string   `json:"documentType,omitempty" db:"document_type"`
	BirthDate      time.Time `json:"birthDate" db:"birth_date"`
	Phone          *string   `json:"phone,omitempty" db:"phone"`
	Email          *string   `json:"email,omitempty" db:"email"`
	OSIGD          *string   `json:"osigd,omitempty" db:"osigd"`
	Gender         *string   `json:"gender,omitempty" db:"gender"`
	Ethnicity      *string   `json:"ethnicity,omitempty" db:"ethnicity"`
	Disability     bool      `json:"disability" db:"disability"`
	Leader         bool      `json:"leader" db:"leader"`
	Migrant        bool      `json:"migrant" db:"migrant"`
	Organization   *string   `json:"organization,omitempty" db:"organization"`
	Municipality   *string   `json:"municipality,omitempty" db:"municipality"`
	Department     *string   `json:"department,omitempty" db:"department"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// UserProfile is the payload used to create a user, either directly or while
// registering attendance for someone not yet in the directory.
type UserProfile struct {
	FullName       string  `json:"fullName"`
	Identification string  `json:"identification"`
	DocumentType   *string `json:"documentType"`
	BirthDate      string  `json:"birthDate"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	OSIGD          *string `json:"osigd"`
	Gender         *string `json:"gender"`
	Ethnicity      *string `json:"ethnicity"`
	Disability     bool    `json:"disability"`
	Leader         bool    `json:"leader"`
	Migrant        bool    `json:"migrant"`
	Organization   *string `json:"organization"`
	Municipality   *string `json:"municipality"`
	Department     *string `json:"department"`
}
