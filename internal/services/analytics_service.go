package services

import (
	"fmt"
	"time"

	"deployhub/internal/apperror"
	"deployhub/internal/models"

	"github.com/google/uuid"
)

const (
	defaultAnalyticsDays = 30
	maxAnalyticsDays     = 365
)

type AnalyticsStore interface {
	Create(event *models.AnalyticsEvent) error
	GetByApplicationIDSince(applicationID uuid.UUID, since time.Time) ([]models.AnalyticsEvent, error)
	CountByDay(applicationID uuid.UUID, since time.Time) ([]models.DayCount, error)
	CountByCountry(applicationID uuid.UUID, since time.Time) ([]models.CountryCount, error)
}

type AnalyticsService struct {
	events AnalyticsStore
	apps   ApplicationStore
}

func NewAnalyticsService(events AnalyticsStore, apps ApplicationStore) *AnalyticsService {
	return &AnalyticsService{events: events, apps: apps}
}

// Track records one visit against the application behind the subdomain. The
// tracking endpoint is unauthenticated; an unknown subdomain is the only
// rejection.
func (s *AnalyticsService) Track(subdomain string, event *models.AnalyticsEvent) error {
	app, err := s.apps.GetBySubdomain(subdomain)
	if err != nil {
		return fmt.Errorf("failed to resolve subdomain: %w", err)
	}
	if app == nil {
		return apperror.NotFound("application", subdomain)
	}

	event.ApplicationID = app.ID
	return s.events.Create(event)
}

// AnalyticsSummary bundles the raw events with the day and country rollups.
type AnalyticsSummary struct {
	TotalVisits int64                 `json:"total_visits"`
	Events      []models.AnalyticsEvent `json:"events"`
	ByDay       []models.DayCount     `json:"by_day"`
	ByCountry   []models.CountryCount `json:"by_country"`
}

// Summary returns the owner's visit data for the last `days` days (default
// 30, capped at 365).
func (s *AnalyticsService) Summary(userID, appID uuid.UUID, days int) (*AnalyticsSummary, error) {
	app, err := s.apps.GetByID(appID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}
	if app == nil {
		return nil, apperror.NotFound("application", appID.String())
	}
	if app.UserID != userID {
		return nil, apperror.Forbidden("application belongs to another user")
	}

	if days <= 0 {
		days = defaultAnalyticsDays
	}
	if days > maxAnalyticsDays {
		days = maxAnalyticsDays
	}
	since := time.Now().AddDate(0, 0, -days)

	events, err := s.events.GetByApplicationIDSince(app.ID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	byDay, err := s.events.CountByDay(app.ID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by day: %w", err)
	}

	byCountry, err := s.events.CountByCountry(app.ID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by country: %w", err)
	}

	return &AnalyticsSummary{
		TotalVisits: int64(len(events)),
		Events:      events,
		ByDay:       byDay,
		ByCountry:   byCountry,
	}, nil
}
