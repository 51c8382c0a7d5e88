package canvas

import (
	"time"

	"github.com/vovakirdan/focustile/internal/economy"
	"github.com/vovakirdan/focustile/internal/grid"
)

// Stats is the counter panel contents.
type Stats struct {
	economy.Balance
	Sessions  int
	Height    int // Height cursor
	Placed    int // Tiles on the grid
	Selected  string
	Remaining time.Duration
	Running   bool
}

// RenderSink receives drawing instructions from the controller.
type RenderSink interface {
	// DrawTile draws the tile at (pos, height); a nil tile removes it.
	DrawTile(pos grid.Position, height int, tile *grid.PlacedTile)
	DrawPreview(pos grid.Position, tileType string, height int)
	ClearPreview()
	UpdateCounters(s Stats)
	UpdateCountdown(remaining time.Duration, running bool)
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Notify calls f(msg).
func (f NotifierFunc) Notify(msg string) { f(msg) }

// EventKind identifies a controller event.
type EventKind int

const (
	EventPlaced EventKind = iota
	EventReplaced
	EventRemoved
	EventCleared
	EventRejected // Placement refused for lack of tiles
	EventSessionStarted
	EventSessionPaused
	EventSessionCompleted
)

// String returns a human-readable name for the kind.
func (k EventKind) String() string {
	switch k {
	case EventPlaced:
		return "placed"
	case EventReplaced:
		return "replaced"
	case EventRemoved:
		return "removed"
	case EventCleared:
		return "cleared"
	case EventRejected:
		return "rejected"
	case EventSessionStarted:
		return "session_started"
	case EventSessionPaused:
		return "session_paused"
	case EventSessionCompleted:
		return "session_completed"
	default:
		return "unknown"
	}
}

// Event describes a state change, after it has been applied.
type Event struct {
	Kind    EventKind
	Pos     grid.Position
	Height  int
	Tile    string
	Count   int  // Tiles affected (clear) or credited (completion)
	Away    bool // Completion happened while the process was not running
	Balance economy.Balance
}

// Listener observes controller events.
type Listener interface {
	HandleEvent(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e Event)

// HandleEvent calls f(e).
func (f ListenerFunc) HandleEvent(e Event) { f(e) }

type nopSink struct{}

func (nopSink) DrawTile(grid.Position, int, *grid.PlacedTile) {}
func (nopSink) DrawPreview(grid.Position, string, int)        {}
func (nopSink) ClearPreview()                                 {}
func (nopSink) UpdateCounters(Stats)                          {}
func (nopSink) UpdateCountdown(time.Duration, bool)           {}
