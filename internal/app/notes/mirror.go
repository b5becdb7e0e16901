package notes

import "sync"

// LocalMirror is an in-process Mirror shared by every Syncer of one process
type LocalMirror struct {
	mu     sync.Mutex
	values map[string]Update
	subs   map[string]map[int]func(Update)
	nextID int
}

// NewLocalMirror creates an empty mirror
func NewLocalMirror() *LocalMirror {
	return &LocalMirror{
		values: make(map[string]Update),
		subs:   make(map[string]map[int]func(Update)),
	}
}

// Store saves u and notifies subscribers of key
func (m *LocalMirror) Store(key string, u Update) {
	m.mu.Lock()
	m.values[key] = u
	fns := make([]func(Update), 0, len(m.subs[key]))
	for _, fn := range m.subs[key] {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(u)
	}
}

// Load returns the last stored value
func (m *LocalMirror) Load(key string) (Update, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.values[key]
	return u, ok
}

// Subscribe registers fn for key and returns its cancel func
func (m *LocalMirror) Subscribe(key string, fn func(Update)) func() {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	if m.subs[key] == nil {
		m.subs[key] = make(map[int]func(Update))
	}
	m.subs[key][id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs[key], id)
		m.mu.Unlock()
	}
}
