package realtime

import (
	"sync"

	"go.uber.org/zap"

	"meetingmind/internal/app/model"
)

// Notification is a user-facing message raised when a meeting gains derived content
type Notification string

const (
	NotifyTranscriptReady  Notification = "transcript_ready"
	NotifySummaryReady     Notification = "summary_ready"
	NotifyActionItemsReady Notification = "action_items_ready"
)

// CacheOptions configures a CacheSynchronizer
type CacheOptions struct {
	OwnerID string
	// OnNotify is called once per absent-to-present transition
	OnNotify func(meetingID string, n Notification)
	// OnStale is called when the collection needs a full refetch
	OnStale func()
	Logger  *zap.Logger
}

// CacheSynchronizer keeps local meeting caches in step with row-change events
type CacheSynchronizer struct {
	opts CacheOptions

	mu       sync.Mutex
	list     []model.Meeting
	details  map[string]*model.Meeting
	insights map[string]*model.Insights
	stale    bool
	fired    map[string]map[Notification]bool
	unsubs   []Unsubscribe
}

// NewCacheSynchronizer subscribes to the owner's meetings and insights
func NewCacheSynchronizer(broker Broker, opts CacheOptions) *CacheSynchronizer {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := &CacheSynchronizer{
		opts:     opts,
		details:  make(map[string]*model.Meeting),
		insights: make(map[string]*model.Insights),
		fired:    make(map[string]map[Notification]bool),
	}
	s.unsubs = []Unsubscribe{
		broker.Subscribe(Filter{Table: TableMeetings, OwnerID: opts.OwnerID}, s.Apply),
		broker.Subscribe(Filter{Table: TableInsights, OwnerID: opts.OwnerID}, s.Apply),
	}
	return s
}

// SetList replaces the collection cache after a fetch and clears the stale flag
func (s *CacheSynchronizer) SetList(meetings []model.Meeting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append([]model.Meeting(nil), meetings...)
	s.stale = false
	for i := range s.list {
		s.seedFiredLocked(&s.list[i])
	}
}

// SetDetail caches a fetched meeting
func (s *CacheSynchronizer) SetDetail(m *model.Meeting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.details[m.ID] = &cp
	s.seedFiredLocked(&cp)
}

// SetInsights caches fetched insights
func (s *CacheSynchronizer) SetInsights(i *model.Insights) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *i
	s.insights[i.MeetingID] = &cp
}

// List returns a copy of the collection cache
func (s *CacheSynchronizer) List() []model.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Meeting(nil), s.list...)
}

// Detail returns the cached meeting
func (s *CacheSynchronizer) Detail(id string) (model.Meeting, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.details[id]
	if !ok {
		return model.Meeting{}, false
	}
	return *m, true
}

// Insights returns the cached insights of a meeting
func (s *CacheSynchronizer) Insights(meetingID string) (model.Insights, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.insights[meetingID]
	if !ok {
		return model.Insights{}, false
	}
	return *i, true
}

// Stale reports whether the collection should be refetched
func (s *CacheSynchronizer) Stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale
}

// Apply folds one event into the caches
func (s *CacheSynchronizer) Apply(e Event) {
	switch e.Table {
	case TableMeetings:
		s.applyMeeting(e)
	case TableInsights:
		s.applyInsights(e)
	}
}

// Close unsubscribes from the broker
func (s *CacheSynchronizer) Close() {
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	s.mu.Unlock()

	for _, u := range unsubs {
		u()
	}
}

func (s *CacheSynchronizer) applyMeeting(e Event) {
	var notify []Notification
	var stale bool

	s.mu.Lock()
	switch e.Type {
	case EventInsert:
		var m model.Meeting
		if err := e.DecodeNew(&m); err != nil {
			s.mu.Unlock()
			s.opts.Logger.Warn("ignoring undecodable insert", zap.String("record_id", e.RecordID), zap.Error(err))
			return
		}
		s.list = append([]model.Meeting{m}, s.list...)
		s.seedFiredLocked(&m)
		s.stale = true
		stale = true

	case EventUpdate:
		var m model.Meeting
		if err := e.DecodeNew(&m); err != nil {
			s.mu.Unlock()
			s.opts.Logger.Warn("ignoring undecodable update", zap.String("record_id", e.RecordID), zap.Error(err))
			return
		}
		var old model.Meeting
		if ok, err := e.DecodeOld(&old); ok && err == nil {
			old.ID = m.ID
			s.seedFiredLocked(&old)
		}
		notify = s.transitionsLocked(&m)
		for i := range s.list {
			if s.list[i].ID == m.ID {
				s.list[i] = m
			}
		}
		if _, ok := s.details[m.ID]; ok {
			cp := m
			s.details[m.ID] = &cp
		}

	case EventDelete:
		id := e.RecordID
		s.list = removeMeeting(s.list, id)
		delete(s.details, id)
		delete(s.insights, id)
		delete(s.fired, id)
	}
	s.mu.Unlock()

	if stale && s.opts.OnStale != nil {
		s.opts.OnStale()
	}
	if s.opts.OnNotify != nil {
		for _, n := range notify {
			s.opts.OnNotify(e.RecordID, n)
		}
	}
}

func (s *CacheSynchronizer) applyInsights(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.Type == EventDelete {
		delete(s.insights, e.RecordID)
		return
	}
	var i model.Insights
	if err := e.DecodeNew(&i); err != nil {
		s.opts.Logger.Warn("ignoring undecodable insights event", zap.String("record_id", e.RecordID), zap.Error(err))
		return
	}
	s.insights[i.MeetingID] = &i
}

// transitionsLocked compares the new row with what was already observed.
// A notification fires when content appears and is re-armed when it disappears.
func (s *CacheSynchronizer) transitionsLocked(m *model.Meeting) []Notification {
	fired := s.fired[m.ID]
	if fired == nil {
		fired = make(map[Notification]bool)
		s.fired[m.ID] = fired
	}

	present := map[Notification]bool{
		NotifyTranscriptReady:  m.HasTranscript(),
		NotifySummaryReady:     m.HasSummary(),
		NotifyActionItemsReady: len(m.ActionItems) > 0,
	}

	var out []Notification
	for _, n := range []Notification{NotifyTranscriptReady, NotifySummaryReady, NotifyActionItemsReady} {
		switch {
		case present[n] && !fired[n]:
			fired[n] = true
			out = append(out, n)
		case !present[n]:
			fired[n] = false
		}
	}
	return out
}

// seedFiredLocked marks content that was already present when first seen
func (s *CacheSynchronizer) seedFiredLocked(m *model.Meeting) {
	if _, ok := s.fired[m.ID]; ok {
		return
	}
	s.fired[m.ID] = map[Notification]bool{
		NotifyTranscriptReady:  m.HasTranscript(),
		NotifySummaryReady:     m.HasSummary(),
		NotifyActionItemsReady: len(m.ActionItems) > 0,
	}
}

func removeMeeting(list []model.Meeting, id string) []model.Meeting {
	out := list[:0]
	for _, m := range list {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}
