package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsEvent is one tracked visit against an application. Rows are
// append-only and never mutated.
type AnalyticsEvent struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	VisitorIP     string    `json:"visitor_ip"`
	UserAgent     string    `json:"user_agent"`
	Country       string    `json:"country"`
	City          string    `json:"city"`
	Path          string    `json:"path"`
	Referer       string    `json:"referer"`
	CreatedAt     time.Time `json:"created_at"`
}

func (e *AnalyticsEvent) Prepare() {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
}

// DayCount is one bucket of the day-grouped aggregate, ordered chronologically.
type DayCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

// CountryCount is one bucket of the country-grouped aggregate.
type CountryCount struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}
