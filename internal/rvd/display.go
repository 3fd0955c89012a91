package rvd

import (
	"time"

	"github.com/screenview/svcore/internal/clock"
)

// DisplayKind distinguishes a monitor from a window (spec section 3).
type DisplayKind int

const (
	DisplayMonitor DisplayKind = iota
	DisplayWindow
)

// pendingShareTimeout is how long a DisplayShare may go unacknowledged
// before check_expired_shares removes it (spec section 4.5).
const pendingShareTimeout = 5 * time.Second

// Display is one entry in the Host's authoritative display_id -> Display
// map, mirrored read-only by the Client (spec section 3).
type Display struct {
	DisplayID uint8
	NativeID  uint32
	Kind      DisplayKind
	Name      string
	Access    uint8
	Width     uint16
	Height    uint16

	acked    bool
	sharedAt time.Time
}

// displayTable is the Host-owned collection of shared displays,
// keyed by display_id, plus pending-share expiry bookkeeping.
type displayTable struct {
	clock clock.Clock
	byID  map[uint8]*Display
}

func newDisplayTable(c clock.Clock) *displayTable {
	if c == nil {
		c = clock.Real
	}
	return &displayTable{clock: c, byID: make(map[uint8]*Display)}
}

// allocate picks the smallest unused display_id in [0,255].
func (t *displayTable) allocate() (uint8, error) {
	for id := 0; id <= 255; id++ {
		if _, used := t.byID[uint8(id)]; !used {
			return uint8(id), nil
		}
	}
	return 0, ErrRanOutOfDisplayIDs
}

func (t *displayTable) insert(d *Display) {
	d.sharedAt = t.clock.Now()
	t.byID[d.DisplayID] = d
}

func (t *displayTable) remove(id uint8) {
	delete(t.byID, id)
}

func (t *displayTable) get(id uint8) (*Display, bool) {
	d, ok := t.byID[id]
	return d, ok
}

func (t *displayTable) ack(id uint8) {
	if d, ok := t.byID[id]; ok {
		d.acked = true
	}
}

// expired returns, and removes, every pending (unacked) share older
// than pendingShareTimeout.
func (t *displayTable) expired() []uint8 {
	now := t.clock.Now()
	var ids []uint8
	for id, d := range t.byID {
		if !d.acked && now.Sub(d.sharedAt) >= pendingShareTimeout {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		delete(t.byID, id)
	}
	return ids
}
