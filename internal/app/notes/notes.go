// Package notes keeps a shared last-writer-wins notes document in sync for one share token.
package notes

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"meetingmind/internal/app/model"
)

// API is the server surface for shared notes
type API interface {
	GetNotes(ctx context.Context, token string) (*model.Notes, error)
	UpdateNotes(ctx context.Context, token, content, editedBy, editorColor string) (*model.Notes, error)
}

// Update is a mirrored write together with the writer that produced it
type Update struct {
	Origin string
	Notes  model.Notes
}

// Mirror is a best-effort local broadcast of the latest notes per key.
// It is never authoritative: the server row wins on Load.
type Mirror interface {
	Store(key string, u Update)
	Load(key string) (Update, bool)
	Subscribe(key string, fn func(Update)) func()
}

// Key is the mirror key of a share token
func Key(token string) string {
	return "meeting-notes-" + token
}

// Editor identifies who is typing
type Editor struct {
	Name  string
	Color string
}

// Syncer writes notes for one token and mirrors them locally
type Syncer struct {
	api    API
	mirror Mirror
	token  string
	editor Editor
	origin string
	logger *zap.Logger

	mu      sync.Mutex
	version int
}

// NewSyncer creates a syncer with a unique origin so it can ignore its own mirror echoes
func NewSyncer(api API, mirror Mirror, token string, editor Editor, logger *zap.Logger) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Syncer{
		api:    api,
		mirror: mirror,
		token:  token,
		editor: editor,
		origin: uuid.NewString(),
		logger: logger.Named("notes"),
	}
}

// Load fetches the authoritative document and refreshes the mirror
func (s *Syncer) Load(ctx context.Context) (*model.Notes, error) {
	n, err := s.api.GetNotes(ctx, s.token)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	s.remember(n.Version)
	s.mirror.Store(Key(s.token), Update{Origin: s.origin, Notes: *n})
	return n, nil
}

// Update overwrites the document. There is no merge: the latest write wins.
func (s *Syncer) Update(ctx context.Context, content string) (*model.Notes, error) {
	n, err := s.api.UpdateNotes(ctx, s.token, content, s.editor.Name, s.editor.Color)
	if err != nil {
		return nil, fmt.Errorf("failed to save notes: %w", err)
	}
	s.remember(n.Version)
	s.mirror.Store(Key(s.token), Update{Origin: s.origin, Notes: *n})
	return n, nil
}

// Watch delivers notes written by other local writers. Older versions than the
// last one seen are skipped.
func (s *Syncer) Watch(fn func(model.Notes)) func() {
	return s.mirror.Subscribe(Key(s.token), func(u Update) {
		if u.Origin == s.origin {
			return
		}
		if !s.remember(u.Notes.Version) {
			s.logger.Debug("skipping stale mirrored notes", zap.Int("version", u.Notes.Version))
			return
		}
		fn(u.Notes)
	})
}

// Version is the highest version observed
func (s *Syncer) Version() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// remember records v and reports whether it is not older than what was seen
func (s *Syncer) remember(v int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v < s.version {
		return false
	}
	s.version = v
	return true
}
