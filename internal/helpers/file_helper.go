package helpers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxImageSizeBytes = 5 * 1024 * 1024 // 5MB
	uploadBasePath    = "./uploads/"
)

var allowedImageMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// SaveImage stores an uploaded image (event images, profile pictures)
// under uploads/<kind>/ with a generated filename and returns its path.
func SaveImage(c *gin.Context, fileHeader *multipart.FileHeader, kind string) (string, error) {
	if fileHeader.Size > maxImageSizeBytes {
		return "", fmt.Errorf("file size exceeds maximum limit of %d MB", maxImageSizeBytes/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	if _, err := src.Read(buffer); err != nil {
		return "", err
	}
	mimeType := http.DetectContentType(buffer)

	allowed := false
	for _, allowedType := range allowedImageMimeTypes {
		if mimeType == allowedType {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("invalid file type. Allowed types: %v", allowedImageMimeTypes)
	}

	uploadPath := filepath.Join(uploadBasePath, kind)
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
	fullFilepath := filepath.Join(uploadPath, filename)

	if err := c.SaveUploadedFile(fileHeader, fullFilepath); err != nil {
		return "", err
	}

	return fullFilepath, nil
}

func DeleteFile(filePath string) error {
	return os.Remove(filePath)
}
