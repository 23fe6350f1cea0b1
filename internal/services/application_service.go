package services

import (
	"fmt"
	"strings"

	"deployhub/internal/apperror"
	"deployhub/internal/models"
	"deployhub/internal/utils"

	"github.com/google/uuid"
)

// Free-tier users get a single application; premium users are uncapped.
const freeTierAppQuota = 1

// ApplicationStore is the slice of the application repository the services
// layer depends on.
type ApplicationStore interface {
	Create(app *models.Application) error
	GetByID(id uuid.UUID) (*models.Application, error)
	GetBySubdomain(subdomain string) (*models.Application, error)
	GetByUserID(userID uuid.UUID) ([]models.Application, error)
	SubdomainExists(subdomain string) (bool, error)
	CountByUserID(userID uuid.UUID) (int64, error)
	UpdateStatus(id uuid.UUID, status string) error
	AddStorageUsed(id uuid.UUID, bytes int64) error
	Delete(id uuid.UUID) error
}

type ApplicationService struct {
	apps  ApplicationStore
	users UserStore
}

func NewApplicationService(apps ApplicationStore, users UserStore) *ApplicationService {
	return &ApplicationService{apps: apps, users: users}
}

func (s *ApplicationService) Create(userID uuid.UUID, app *models.Application) (*models.Application, error) {
	app.Name = strings.TrimSpace(app.Name)
	app.Subdomain = strings.ToLower(strings.TrimSpace(app.Subdomain))

	if app.Name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if !utils.ValidSubdomain(app.Subdomain) {
		return nil, apperror.ValidationFailed("subdomain", "subdomain must be a valid DNS label")
	}

	switch app.SourceKind {
	case models.SourceKindRepo:
		if app.RepoURL == nil || strings.TrimSpace(*app.RepoURL) == "" {
			return nil, apperror.ValidationFailed("repo_url", "repo_url is required for repo sources")
		}
	case models.SourceKindArchive:
	default:
		return nil, apperror.ValidationFailed("source_kind", "source_kind must be repo or archive")
	}

	user, err := s.users.FindUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user", userID.String())
	}

	if !user.IsPremium {
		count, err := s.apps.CountByUserID(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to count applications: %w", err)
		}
		if count >= freeTierAppQuota {
			return nil, apperror.Forbidden("free tier allows a single application; upgrade to premium to add more")
		}
	}

	// Friendly pre-check; the UNIQUE constraint still backstops races.
	taken, err := s.apps.SubdomainExists(app.Subdomain)
	if err != nil {
		return nil, fmt.Errorf("failed to check subdomain: %w", err)
	}
	if taken {
		return nil, apperror.Conflict("application", "subdomain already taken")
	}

	app.UserID = userID
	app.Status = models.AppStatusPending

	if err := s.apps.Create(app); err != nil {
		return nil, err
	}

	return app, nil
}

func (s *ApplicationService) List(userID uuid.UUID) ([]models.Application, error) {
	return s.apps.GetByUserID(userID)
}

// Get enforces ownership. A missing application reports not-found before any
// ownership check, so callers can't probe which IDs exist.
func (s *ApplicationService) Get(userID, appID uuid.UUID) (*models.Application, error) {
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
	return app, nil
}

func (s *ApplicationService) Delete(userID, appID uuid.UUID) error {
	app, err := s.Get(userID, appID)
	if err != nil {
		return err
	}
	return s.apps.Delete(app.ID)
}

// CheckSubdomain reports whether the subdomain is free to register.
func (s *ApplicationService) CheckSubdomain(subdomain string) (bool, error) {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if !utils.ValidSubdomain(subdomain) {
		return false, apperror.ValidationFailed("subdomain", "subdomain must be a valid DNS label")
	}

	taken, err := s.apps.SubdomainExists(subdomain)
	if err != nil {
		return false, fmt.Errorf("failed to check subdomain: %w", err)
	}
	return !taken, nil
}
