package collision

import (
	"github.com/arloliu/dense7/errs"
)

// Tracker records the identifiers of string table entries during encoding and
// detects hash collisions between entry names.
//
// Entries are identified either by caller-supplied IDs (TrackID) or by names hashed
// to IDs (TrackName). A name collision is not an error: the encoder stores the names
// alongside the table so lookups by name stay exact.
type Tracker struct {
	names        map[uint64]string // ID → name, empty for caller-supplied IDs
	nameSet      map[string]struct{}
	orderedNames []string
	hasCollision bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:        make(map[uint64]string),
		nameSet:      make(map[string]struct{}),
		orderedNames: make([]string, 0),
	}
}

// TrackID tracks a caller-supplied ID.
// Returns errs.ErrHashCollision if the ID was already used; without names the
// entries could not be told apart.
func (t *Tracker) TrackID(id uint64) error {
	if _, exists := t.names[id]; exists {
		return errs.ErrHashCollision
	}

	t.names[id] = ""

	return nil
}

// TrackName tracks an entry name with its hash.
//
// Returns errs.ErrInvalidName for an empty name and errs.ErrDuplicateName when the
// same name is added twice. Two different names with the same hash set the
// collision flag instead.
func (t *Tracker) TrackName(name string, id uint64) error {
	if name == "" {
		return errs.ErrInvalidName
	}

	if _, exists := t.nameSet[name]; exists {
		return errs.ErrDuplicateName
	}

	if _, exists := t.names[id]; exists {
		t.hasCollision = true
	} else {
		t.names[id] = name
	}

	t.nameSet[name] = struct{}{}
	t.orderedNames = append(t.orderedNames, name)

	return nil
}

// HasCollision returns true if two tracked names share an ID.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in the order TrackName was called.
func (t *Tracker) Names() []string {
	return t.orderedNames
}

// Count returns the number of tracked entries.
func (t *Tracker) Count() int {
	if len(t.orderedNames) > 0 {
		return len(t.orderedNames)
	}

	return len(t.names)
}

// Reset clears all tracked entries and the collision state.
func (t *Tracker) Reset() {
	clear(t.names)
	clear(t.nameSet)
	t.orderedNames = t.orderedNames[:0]
	t.hasCollision = false
}
