package domain

import (
	"math"
	"strings"

	apperrors "github.com/allisson/librarian/internal/errors"
)

// Sequencer hands out monotonically increasing sequence numbers per entity kind
// (one counter per item type plus one for users). Numbers are never reused for
// the lifetime of the Sequencer. It is not safe for concurrent use; the Catalog
// that owns it is guarded by its caller.
type Sequencer struct {
	counters map[string]int
}

// NewSequencer creates a Sequencer with every counter at zero.
func NewSequencer() *Sequencer {
	return &Sequencer{counters: make(map[string]int)}
}

// NextItem returns the next sequence number for the item type, starting at 1.
// It fails with ErrSequenceExhausted once the counter reached math.MaxInt.
func (s *Sequencer) NextItem(t ItemType) (int, error) {
	return s.next(string(t))
}

// NextUser returns the next sequence number for users, starting at 1.
// It fails with ErrSequenceExhausted once the counter reached math.MaxInt.
func (s *Sequencer) NextUser() (int, error) {
	return s.next(userSequence)
}

// PeekItem returns the last sequence number handed out for the item type.
func (s *Sequencer) PeekItem(t ItemType) int {
	return s.counters[string(t)]
}

// PeekUser returns the last sequence number handed out for users.
func (s *Sequencer) PeekUser() int {
	return s.counters[userSequence]
}

// Observe raises the matching counter to the sequence number of a generated-style
// ID so that later allocations cannot collide with it. An ID that fails the
// grammar still counts when it starts with a type tag or "U" and ends in a
// positive number (e.g. "B-O'-1976-3"). Other custom IDs are ignored.
func (s *Sequencer) Observe(id string) {
	if itemID, err := ParseItemID(id); err == nil {
		s.raise(string(itemID.Type), itemID.Sequence)
		return
	}
	if userID, err := ParseUserID(id); err == nil {
		s.raise(userSequence, userID.Sequence)
		return
	}

	parts := strings.Split(id, "-")
	if len(parts) < 3 {
		return
	}
	var kind string
	if parts[0] == "U" {
		kind = userSequence
	} else if t, ok := itemTypeFromTag(parts[0]); ok {
		kind = string(t)
	} else {
		return
	}
	if seq, err := parseSequence(parts[len(parts)-1]); err == nil {
		s.raise(kind, seq)
	}
}

// Reset sets every counter back to zero.
func (s *Sequencer) Reset() {
	s.counters = make(map[string]int)
}

func (s *Sequencer) next(kind string) (int, error) {
	if s.counters[kind] == math.MaxInt {
		return 0, apperrors.Wrapf(ErrSequenceExhausted, "%s counter", kind)
	}
	s.counters[kind]++
	return s.counters[kind], nil
}

func (s *Sequencer) raise(kind string, seq int) {
	if seq > s.counters[kind] {
		s.counters[kind] = seq
	}
}
