package models

import (
	"time"

	"github.com/google/uuid"
)

// SharedFile is an uploaded file exposed through an expiring share link.
// Token is the public slug in the share URL; StoragePath points at the file
// on the local data disk.
type SharedFile struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	FileName      string    `json:"file_name"`
	SizeBytes     int64     `json:"size_bytes"`
	Token         string    `json:"token"`
	StoragePath   string    `json:"-"`
	ExpiresAt     time.Time `json:"expires_at"`
	DownloadCount int64     `json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func (f *SharedFile) Prepare() {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
}

// Expired reports whether the share link is past its expiry.
func (f *SharedFile) Expired(now time.Time) bool {
	return now.After(f.ExpiresAt)
}
