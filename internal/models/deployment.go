package models

import (
	"time"

	"github.com/google/uuid"
)

// Deployment status values. A deployment is immutable once it reaches one of
// the two terminal states (success, failed).
const (
	DeploymentStatusPending  = "pending"
	DeploymentStatusBuilding = "building"
	DeploymentStatusSuccess  = "success"
	DeploymentStatusFailed   = "failed"
)

type Deployment struct {
	ID             uuid.UUID  `json:"id"`
	ApplicationID  uuid.UUID  `json:"application_id"`
	Status         string     `json:"status"`
	BuildLogs      string     `json:"build_logs"` // append-only
	AnalysisResult *string    `json:"analysis_result,omitempty"`
	DeployedAt     *time.Time `json:"deployed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (d *Deployment) Prepare() {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Status == "" {
		d.Status = DeploymentStatusPending
	}
}

// Terminal reports whether the deployment can no longer change.
func (d *Deployment) Terminal() bool {
	return d.Status == DeploymentStatusSuccess || d.Status == DeploymentStatusFailed
}
