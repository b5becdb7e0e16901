package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meetingmind/internal/config"
)

func TestAudioKey(t *testing.T) {
	assert.Equal(t, "audio/u-1/m-1.mp3", AudioKey("u-1", "m-1", "Team Sync.MP3"))
	assert.Equal(t, "audio/u-1/m-1.bin", AudioKey("u-1", "m-1", "recording"))
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorage("http://storage.local")
	ctx := context.Background()

	obj, err := s.Put(ctx, "audio/u/m.mp3", strings.NewReader("data"), 4, "audio/mpeg", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), obj.Size)
	assert.True(t, s.Has("audio/u/m.mp3"))

	link, err := s.PresignedGet(ctx, "audio/u/m.mp3", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "http://storage.local/audio/u/m.mp3?expires=3600", link)

	require.NoError(t, s.Delete(ctx, "audio/u/m.mp3"))
	_, err = s.PresignedGet(ctx, "audio/u/m.mp3", time.Hour)
	assert.Error(t, err)
}

func TestMinioPresignIsOffline(t *testing.T) {
	s, err := NewMinioStorage(config.StorageConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "meeting-audio",
		Region:    "us-east-1",
	}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "meeting-audio", s.bucket)

	raw, err := s.PresignedGet(context.Background(), "audio/u-1/m-1.mp3", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/meeting-audio/audio/u-1/m-1.mp3", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

var _ ObjectStorage = (*MinioStorage)(nil)
var _ ObjectStorage = (*MemoryStorage)(nil)
