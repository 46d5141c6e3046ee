package model

import "time"

type Event struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Location    string    `json:"location" db:"location"`
	Date        time.Time `json:"date" db:"date"`
	Type        string    `json:"type" db:"type"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// EventFilters are conjunctive; every field is optional.
type EventFilters struct {
	Name      string `form:"name"`
	Type      string `form:"type"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Location  string `form:"location"`
}

// MonthCount is one row of the events-per-month aggregation.
type MonthCount struct {
	Month       string `json:"month" db:"month"`
	EventsCount int    `json:"eventsCount" db:"events_count"`
}

// EventAttendee is one attendee sub-record of an EventWithAttendees entry.
type EventAttendee struct {
	UserID         int     `json:"userId"`
	FullName       string  `json:"fullName"`
	Identification string  `json:"identification"`
	AssistanceID   int     `json:"assistanceId"`
	SignaturePath  *string `json:"signaturePath,omitempty"`
	PhotoPath      *string `json:"photoPath,omitempty"`
}

// EventWithAttendees folds the events→assistance→users left join into one
// entry per event; events without attendees keep an empty list.
type EventWithAttendees struct {
	Event
	Attendees []EventAttendee `json:"attendees"`
}
