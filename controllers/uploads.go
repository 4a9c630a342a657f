package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 20 << 20 // 20MB

var allowedUploadExts = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".ppt": true, ".pptx": true,
	".xls": true, ".xlsx": true, ".txt": true, ".zip": true,
	".jpg": true, ".jpeg": true, ".png": true,
}

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "public/uploads"
}

func baseURL() string {
	if url := os.Getenv("BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

// saveUpload stores one uploaded file under uploadDir/subdir with a
// random name and returns its public URL. The original filename only
// survives as the extension.
func saveUpload(c *gin.Context, file *multipart.FileHeader, subdir string) (string, error) {
	if file.Size > maxUploadSize {
		return "", errors.New("file too large")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExts[ext] {
		return "", fmt.Errorf("file type %s not allowed", ext)
	}

	dir := filepath.Join(uploadDir(), subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	filename := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/uploads/%s/%s", baseURL(), subdir, filename), nil
}
