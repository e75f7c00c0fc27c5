// Package entity carries the bookkeeping attributes every struxml object
// has: a GUID, a last-change timestamp and the change action.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the timestamp layout struxml uses for last_change.
const TimeLayout = "2006-01-02T15:04:05.000"

// ActionAdded marks an object as new to the receiving model.
const ActionAdded = "added"

// Entity is embedded in every struxml element that FEM-Design tracks.
type Entity struct {
	GUID       string `xml:"guid,attr"`
	LastChange string `xml:"last_change,attr"`
	Action     string `xml:"action,attr"`
}

// now is replaced in tests to get stable timestamps.
var now = time.Now

// New creates an entity with a fresh random GUID.
func New() Entity {
	return Entity{
		GUID:       uuid.NewString(),
		LastChange: now().UTC().Format(TimeLayout),
		Action:     ActionAdded,
	}
}

// Touch updates the last change time and marks the entity as modified
// unless it has never been sent to FEM-Design.
func (e *Entity) Touch() {
	e.LastChange = now().UTC().Format(TimeLayout)
	if e.Action != ActionAdded {
		e.Action = "modified"
	}
}

// Valid reports whether the GUID parses.
func (e Entity) Valid() bool {
	_, err := uuid.Parse(e.GUID)
	return err == nil
}
