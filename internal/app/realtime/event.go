// Package realtime carries row-change events from the service to subscribed clients.
package realtime

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType is the kind of row change
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
	// EventPing is the heartbeat broadcast; it never carries a record
	EventPing EventType = "PING"
)

// Tables that publish changes
const (
	TableMeetings = "meetings"
	TableInsights = "meeting_insights"
)

// Event is one row change, scoped by the owning user
type Event struct {
	Table    string          `json:"table"`
	Type     EventType       `json:"type"`
	OwnerID  string          `json:"owner_id"`
	RecordID string          `json:"record_id"`
	New      json.RawMessage `json:"new,omitempty"`
	Old      json.RawMessage `json:"old,omitempty"`
	At       time.Time       `json:"at"`
}

// NewEvent encodes the new and old row images; either may be nil
func NewEvent(table string, typ EventType, ownerID, recordID string, newRow, oldRow interface{}) (Event, error) {
	e := Event{Table: table, Type: typ, OwnerID: ownerID, RecordID: recordID, At: time.Now().UTC()}
	var err error
	if newRow != nil {
		if e.New, err = json.Marshal(newRow); err != nil {
			return Event{}, fmt.Errorf("failed to encode new row: %w", err)
		}
	}
	if oldRow != nil {
		if e.Old, err = json.Marshal(oldRow); err != nil {
			return Event{}, fmt.Errorf("failed to encode old row: %w", err)
		}
	}
	return e, nil
}

// Ping builds a heartbeat event
func Ping() Event {
	return Event{Type: EventPing, At: time.Now().UTC()}
}

// DecodeNew unmarshals the new row image into v
func (e Event) DecodeNew(v interface{}) error {
	if len(e.New) == 0 {
		return fmt.Errorf("event has no new row")
	}
	return json.Unmarshal(e.New, v)
}

// DecodeOld unmarshals the old row image into v; it reports false when there is none
func (e Event) DecodeOld(v interface{}) (bool, error) {
	if len(e.Old) == 0 || string(e.Old) == "null" {
		return false, nil
	}
	return true, json.Unmarshal(e.Old, v)
}

// Filter selects events; empty fields match anything
type Filter struct {
	Table    string `json:"table,omitempty"`
	OwnerID  string `json:"owner_id,omitempty"`
	RecordID string `json:"record_id,omitempty"`
}

// Match reports whether e passes the filter. Pings always match.
func (f Filter) Match(e Event) bool {
	if e.Type == EventPing {
		return true
	}
	if f.Table != "" && f.Table != e.Table {
		return false
	}
	if f.OwnerID != "" && f.OwnerID != e.OwnerID {
		return false
	}
	if f.RecordID != "" && f.RecordID != e.RecordID {
		return false
	}
	return true
}
