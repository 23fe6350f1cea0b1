package models

import (
	"time"

	"github.com/google/uuid"
)

// Application status values. Transitions happen only inside the deployment
// service: pending -> building -> live | failed.
const (
	AppStatusPending  = "pending"
	AppStatusBuilding = "building"
	AppStatusLive     = "live"
	AppStatusFailed   = "failed"
)

// Source kinds an application can be registered from.
const (
	SourceKindRepo    = "repo"
	SourceKindArchive = "archive"
)

type Application struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	Name             string     `json:"name"`
	Subdomain        string     `json:"subdomain"` // globally unique
	SourceKind       string     `json:"source_kind"`
	RepoURL          *string    `json:"repo_url,omitempty"`
	BuildCommand     *string    `json:"build_command,omitempty"`
	OutputDir        *string    `json:"output_dir,omitempty"`
	Status           string     `json:"status"`
	DeploymentURL    *string    `json:"deployment_url,omitempty"`
	StorageUsedBytes int64      `json:"storage_used_bytes"`
	LastDeployedAt   *time.Time `json:"last_deployed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (a *Application) Prepare() {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = AppStatusPending
	}
}
