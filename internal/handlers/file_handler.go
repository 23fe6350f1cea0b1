package handlers

import (
	"net/http"
	"strconv"

	"deployhub/internal/responses"
	"deployhub/internal/services"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	fileService *services.FileService
}

func NewFileHandler(fileService *services.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload handles POST /api/v1/files. Expects a multipart "file" plus an
// optional "expires_in_hours" form field.
func (h *FileHandler) Upload(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Missing file")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Failed to read file")
		return
	}
	defer src.Close()

	expiryHours, _ := strconv.Atoi(c.PostForm("expires_in_hours"))

	file, err := h.fileService.Upload(userID, fileHeader.Filename, src, expiryHours)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusCreated, file, "File uploaded successfully")
}

// List handles GET /api/v1/files
func (h *FileHandler) List(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	files, err := h.fileService.List(userID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, files, "Files retrieved successfully")
}

// Delete handles DELETE /api/v1/files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	fileID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.fileService.Delete(userID, fileID); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, nil, "File deleted successfully")
}

// Download handles GET /api/v1/share/:token
func (h *FileHandler) Download(c *gin.Context) {
	file, err := h.fileService.Resolve(c.Param("token"))
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.FileAttachment(file.StoragePath, file.FileName)
}
