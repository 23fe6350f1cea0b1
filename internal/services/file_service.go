package services

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"deployhub/internal/apperror"
	"deployhub/internal/config"
	"deployhub/internal/models"
	"deployhub/internal/utils"

	"github.com/google/uuid"
)

const (
	defaultShareExpiryHours = 24
	maxShareExpiryHours     = 168 // one week
)

type FileStore interface {
	Create(file *models.SharedFile) error
	GetByID(id uuid.UUID) (*models.SharedFile, error)
	GetByToken(token string) (*models.SharedFile, error)
	GetByUserID(userID uuid.UUID) ([]models.SharedFile, error)
	IncrementDownloadCount(id uuid.UUID) error
	Delete(id uuid.UUID) error
}

// FileService stores uploads on the local data disk and exposes them through
// expiring share tokens.
type FileService struct {
	files    FileStore
	platform config.PlatformConfig
}

func NewFileService(files FileStore, platform config.PlatformConfig) *FileService {
	return &FileService{files: files, platform: platform}
}

func (s *FileService) Upload(userID uuid.UUID, fileName string, src io.Reader, expiryHours int) (*models.SharedFile, error) {
	fileName = filepath.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		return nil, apperror.ValidationFailed("file", "file name is required")
	}

	if expiryHours <= 0 {
		expiryHours = defaultShareExpiryHours
	}
	if expiryHours > maxShareExpiryHours {
		expiryHours = maxShareExpiryHours
	}

	token, err := utils.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate share token: %w", err)
	}

	file := &models.SharedFile{
		UserID:    userID,
		FileName:  fileName,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(expiryHours) * time.Hour),
	}
	file.Prepare()
	file.StoragePath = filepath.Join(s.platform.DataDir, "shared", file.ID.String())

	if err := os.MkdirAll(filepath.Dir(file.StoragePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create share directory: %w", err)
	}

	dst, err := os.Create(file.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	size, err := io.Copy(dst, src)
	dst.Close()
	if err != nil {
		os.Remove(file.StoragePath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	file.SizeBytes = size

	if err := s.files.Create(file); err != nil {
		os.Remove(file.StoragePath)
		return nil, fmt.Errorf("failed to record file: %w", err)
	}

	return file, nil
}

func (s *FileService) List(userID uuid.UUID) ([]models.SharedFile, error) {
	return s.files.GetByUserID(userID)
}

func (s *FileService) Delete(userID, fileID uuid.UUID) error {
	file, err := s.files.GetByID(fileID)
	if err != nil {
		return fmt.Errorf("failed to fetch file: %w", err)
	}
	if file == nil {
		return apperror.NotFound("file", fileID.String())
	}
	if file.UserID != userID {
		return apperror.Forbidden("file belongs to another user")
	}

	if err := s.files.Delete(file.ID); err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	if err := os.Remove(file.StoragePath); err != nil && !os.IsNotExist(err) {
		log.Printf("file %s: failed to remove bytes from disk: %v", file.ID, err)
	}

	return nil
}

// Resolve looks up a share token for download. The download counter is only
// bumped for a live link; an expired one reports expiry and stays untouched.
func (s *FileService) Resolve(token string) (*models.SharedFile, error) {
	file, err := s.files.GetByToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}
	if file == nil {
		return nil, apperror.NotFound("file", token)
	}
	if file.Expired(time.Now()) {
		return nil, apperror.Expired("share link")
	}

	if err := s.files.IncrementDownloadCount(file.ID); err != nil {
		return nil, fmt.Errorf("failed to count download: %w", err)
	}
	file.DownloadCount++

	return file, nil
}
