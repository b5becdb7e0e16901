// Package storage keeps meeting recordings in S3-compatible object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// Object describes a stored recording
type Object struct {
	Key         string    `json:"key"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// ObjectStorage is the subset of object storage the service relies on
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string, meta map[string]string) (*Object, error)
	PresignedGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	PresignedPut(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// AudioKey builds the object key of a meeting recording
func AudioKey(userID, meetingID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("audio/%s/%s%s", userID, meetingID, ext)
}
