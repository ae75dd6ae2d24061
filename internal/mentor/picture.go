package mentor

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxPictureBytes is the largest accepted profile picture.
const MaxPictureBytes = 2 * 1024 * 1024

// PictureStore persists an encoded profile picture. *profile.Service
// satisfies it.
type PictureStore interface {
	SetPicture(ctx context.Context, dataURL string) error
}

// ValidationError rejects an upload before anything is stored.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid profile picture: " + e.Reason
}

const tooLarge = "image size must be less than 2MB"

// ReadPicture loads a picture file for UploadProfilePicture. Files over
// MaxPictureBytes are rejected with *ValidationError before any content
// is read.
func ReadPicture(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open picture: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat picture: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, &ValidationError{Reason: info.Name() + " is not a regular file"}
	}
	if info.Size() > MaxPictureBytes {
		return nil, &ValidationError{Reason: tooLarge}
	}

	// The file may grow after Stat; read one byte past the limit so
	// UploadProfilePicture still sees it as oversized.
	data, err := io.ReadAll(io.LimitReader(f, MaxPictureBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read picture: %w", err)
	}
	return data, nil
}

// UploadProfilePicture validates data and stores it as a base64 data URL.
// Oversized or non-image data is rejected with *ValidationError.
func (c *Controller) UploadProfilePicture(ctx context.Context, data []byte) (string, error) {
	if len(data) > MaxPictureBytes {
		return "", &ValidationError{Reason: tooLarge}
	}
	if len(data) == 0 {
		return "", &ValidationError{Reason: "file is empty"}
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", &ValidationError{Reason: fmt.Sprintf("%s is not an image", mt.String())}
	}
	if c.pics == nil {
		return "", fmt.Errorf("upload profile picture: no picture store")
	}

	dataURL := "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data)
	if err := c.pics.SetPicture(ctx, dataURL); err != nil {
		return "", fmt.Errorf("upload profile picture: %w", err)
	}
	c.log.Info("profile picture updated", "mime", mt.String(), "bytes", len(data))
	return dataURL, nil
}
