package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	a, b := New(), New()
	assert.True(t, a.Valid())
	assert.NotEqual(t, a.GUID, b.GUID)
	assert.Equal(t, "2024-03-01T12:30:00.000", a.LastChange)
	assert.Equal(t, ActionAdded, a.Action)
}

func TestTouch(t *testing.T) {
	e := Entity{GUID: "x", Action: "unchanged"}
	e.Touch()
	assert.Equal(t, "modified", e.Action)
	assert.False(t, e.Valid())

	added := New()
	added.Touch()
	assert.Equal(t, ActionAdded, added.Action)
}
