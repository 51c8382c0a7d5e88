// Package canvas implements the grid controller: it owns the layered tile
// map, the tile ledger, the focus timer, the notes and the hotbar, applies
// user intents against them and emits render, persist and notify effects.
//
// A Controller is not safe for concurrent use. The terminal front end
// drives it from a single update loop.
package canvas

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/focustile/internal/economy"
	"github.com/vovakirdan/focustile/internal/focus"
	"github.com/vovakirdan/focustile/internal/grid"
	"github.com/vovakirdan/focustile/internal/notes"
	"github.com/vovakirdan/focustile/internal/snapshot"
	"github.com/vovakirdan/focustile/internal/storage"
	"github.com/vovakirdan/focustile/internal/tiles"
)

var (
	// ErrNothingToClear is returned by ClearHeight on an empty height.
	ErrNothingToClear = errors.New("canvas: nothing to clear")

	// ErrHeightLimit is returned when the height cursor is already at a bound.
	ErrHeightLimit = errors.New("canvas: height limit reached")

	// ErrNoSelection is returned by Click when no tile is selected.
	ErrNoSelection = errors.New("canvas: no tile selected")
)

// Placement tells a fresh placement from a replacement.
type Placement int

const (
	Placed Placement = iota
	Replaced
)

// Options configures a Controller. Zero values take the defaults.
type Options struct {
	Session       focus.Config
	StarterTiles  int
	HotbarSlots   int
	DefaultHotbar []string
	Clock         focus.Clock
	Owner         string // Session history owner
	Logger        *log.Logger
}

// DefaultOptions returns the stock session economy.
func DefaultOptions() Options {
	return Options{
		Session:       focus.DefaultConfig(),
		StarterTiles:  5,
		HotbarSlots:   tiles.MaxSlots,
		DefaultHotbar: tiles.DefaultHotbar(),
	}
}

// Controller orchestrates the canvas state.
type Controller struct {
	opts     Options
	repo     *snapshot.Repo
	history  storage.History
	sink     RenderSink
	notifier Notifier
	logger   *log.Logger
	clock    focus.Clock

	layers *grid.LayerMap
	ledger *economy.Ledger
	timer  *focus.Timer
	book   *notes.Book
	hotbar *tiles.Hotbar

	height   int
	selected string

	listeners []Listener
}

// New creates a controller. repo and history may be nil, in which case
// nothing is persisted or recorded. Call Load before use.
func New(repo *snapshot.Repo, history storage.History, sink RenderSink, notifier Notifier, opts Options) *Controller {
	def := DefaultOptions()
	if opts.Session.Duration <= 0 {
		opts.Session.Duration = def.Session.Duration
	}
	if opts.Session.Reward < 0 {
		opts.Session.Reward = def.Session.Reward
	}
	if opts.StarterTiles < 0 {
		opts.StarterTiles = 0
	}
	if opts.HotbarSlots <= 0 {
		opts.HotbarSlots = def.HotbarSlots
	}
	if opts.DefaultHotbar == nil {
		opts.DefaultHotbar = def.DefaultHotbar
	}
	if opts.Clock == nil {
		opts.Clock = focus.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if sink == nil {
		sink = nopSink{}
	}
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}

	c := &Controller{
		opts:     opts,
		repo:     repo,
		history:  history,
		sink:     sink,
		notifier: notifier,
		logger:   opts.Logger,
		clock:    opts.Clock,
		layers:   grid.NewLayerMap(),
		ledger:   economy.NewLedger(),
		book:     notes.NewBook(),
		hotbar:   tiles.NewHotbar(opts.DefaultHotbar, opts.HotbarSlots),
	}
	c.selected = c.hotbar.First()

	var store focus.CheckpointStore
	if repo != nil {
		store = repo
	}
	c.timer = focus.New(opts.Session, opts.Clock, store, c.ledger)
	c.timer.SetLogger(opts.Logger)
	return c
}

// AddListener registers an event observer.
func (c *Controller) AddListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

// Load restores the saved state, or initialises a first run when there is
// none or it cannot be read, then recovers a session that was running
// when the process last exited.
func (c *Controller) Load() {
	snap, err := c.loadSnapshot()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.logger.Warn("saved state unreadable, starting fresh", "error", err)
		}
		c.firstRun()
	} else {
		c.apply(snap)
	}
	c.Redraw()
	c.recover()
}

// recover resumes or completes a session found in the checkpoint store.
func (c *Controller) recover() {
	recovery, st := c.timer.Recover()
	switch recovery {
	case focus.RecoveryResumed:
		c.logger.Info("resumed running session", "started", c.timer.StartedAt(), "remaining", st.Remaining)
		c.notifier.Notify(msgResumed)
		c.sink.UpdateCountdown(st.Remaining, true)
	case focus.RecoveryCompletedAway:
		c.logger.Info("session completed while away", "started", st.Completed.Start)
		c.completed(st)
	}
}

func (c *Controller) loadSnapshot() (*snapshot.Snapshot, error) {
	if c.repo == nil {
		return nil, storage.ErrNotFound
	}
	return c.repo.Load()
}

func (c *Controller) firstRun() {
	c.layers = grid.NewLayerMap()
	c.ledger.Restore(economy.Balance{})
	c.ledger.Credit(c.opts.StarterTiles)
	c.book.Restore(nil, 0)
	c.hotbar.Set(c.opts.DefaultHotbar)
	c.selected = c.hotbar.First()
	c.height = grid.MinHeight
	c.timer.SetSessions(0)

	c.logger.Info("first run", "starter_tiles", c.opts.StarterTiles)
	c.save()
	c.notifier.Notify(msgWelcome(c.opts.StarterTiles))
}

// apply replaces the in-memory state with snap.
func (c *Controller) apply(snap *snapshot.Snapshot) {
	layers, skipped := snap.Layers()
	if skipped > 0 {
		c.logger.Warn("dropped invalid tiles from saved state", "count", skipped)
	}
	c.layers = layers

	c.ledger.Restore(economy.Balance{
		Earned:    snap.TilesEarned,
		Used:      snap.TilesUsed,
		Available: snap.TilesAvailable,
	})

	saved := make([]notes.Note, 0, len(snap.Notes))
	for _, n := range snap.Notes {
		saved = append(saved, notes.Note{ID: n.ID, Text: n.Text, CreatedAt: n.Timestamp})
	}
	c.book.Restore(saved, snap.NoteIDCounter)

	if snap.CurrentHotbarTiles != nil {
		c.hotbar.Set(snap.CurrentHotbarTiles)
	} else {
		c.hotbar.Set(c.opts.DefaultHotbar)
	}
	c.selected = c.hotbar.First()
	c.height = min(max(snap.CurrentHeight, grid.MinHeight), grid.MaxHeight)
	c.timer.SetSessions(snap.SessionsCompleted)
}

// Import replaces the whole state with snap and persists it. Any session
// in progress is dropped without credit; a running timer record from the
// archive takes its place and is recovered like one found at startup.
func (c *Controller) Import(snap *snapshot.Snapshot, timer *snapshot.TimerRecord) error {
	for _, t := range c.layers.Tiles() {
		c.sink.DrawTile(t.Pos, t.Height, nil)
	}
	c.timer.Reset()
	c.apply(snap)
	c.Redraw()
	c.save()
	c.logger.Info("state imported", "tiles", c.layers.Len(), "notes", c.book.Len())

	if timer == nil || !timer.IsRunning || c.repo == nil {
		return nil
	}
	if err := c.repo.SaveTimer(*timer); err != nil {
		return fmt.Errorf("canvas: import timer: %w", err)
	}
	c.recover()
	return nil
}

// Redraw pushes the whole state to the render sink.
func (c *Controller) Redraw() {
	for _, t := range c.layers.Tiles() {
		c.sink.DrawTile(t.Pos, t.Height, &t)
	}
	c.sink.ClearPreview()
	c.sink.UpdateCounters(c.Stats())
	c.sink.UpdateCountdown(c.timer.Remaining(), c.timer.Running())
}

// Snapshot returns the persisted form of the current state.
func (c *Controller) Snapshot() *snapshot.Snapshot {
	b := c.ledger.Balance()
	list := c.book.List()
	saved := make([]snapshot.Note, 0, len(list))
	for _, n := range list {
		saved = append(saved, snapshot.Note{ID: n.ID, Text: n.Text, Timestamp: n.CreatedAt})
	}
	return &snapshot.Snapshot{
		Version:            snapshot.Version,
		GridData:           snapshot.FromLayers(c.layers),
		Notes:              saved,
		SessionsCompleted:  c.timer.Sessions(),
		TilesEarned:        b.Earned,
		TilesUsed:          b.Used,
		TilesAvailable:     b.Available,
		NoteIDCounter:      c.book.NextID(),
		CurrentHotbarTiles: c.hotbar.Tiles(),
		CurrentHeight:      c.height,
	}
}

// save persists the state. Failures are logged and never undo a mutation.
func (c *Controller) save() {
	if c.repo == nil {
		return
	}
	if err := c.repo.Save(c.Snapshot()); err != nil {
		c.logger.Warn("could not save state", "error", err)
	}
}

func (c *Controller) emit(e Event) {
	e.Balance = c.ledger.Balance()
	for _, l := range c.listeners {
		l.HandleEvent(e)
	}
}

// PlaceTile places tileType at pos on the current height.
func (c *Controller) PlaceTile(pos grid.Position, tileType string) (Placement, error) {
	return c.PlaceAt(pos, tileType, c.height)
}

// PlaceAt places tileType at (pos, height). An occupied slot is replaced
// free of charge; a fresh slot costs one tile.
func (c *Controller) PlaceAt(pos grid.Position, tileType string, height int) (Placement, error) {
	if !pos.InBounds() || !grid.ValidHeight(height) {
		return Placed, fmt.Errorf("%w: %v at height %d", grid.ErrOutOfBounds, pos, height)
	}
	if !tiles.Has(tileType) {
		return Placed, fmt.Errorf("%w: %q", tiles.ErrUnknownTile, tileType)
	}

	replacing := c.layers.Occupied(pos, height)
	if !replacing {
		if err := c.ledger.TrySpend(1); err != nil {
			c.notifier.Notify(msgNoTiles(c.timer.Duration()))
			c.emit(Event{Kind: EventRejected, Pos: pos, Height: height, Tile: tileType})
			return Placed, err
		}
	}

	t := grid.NewTile(tileType, pos, height)
	c.layers.Set(t)
	c.sink.DrawTile(pos, height, &t)
	c.sink.UpdateCounters(c.Stats())
	c.save()

	if replacing {
		c.logger.Debug("tile replaced", "pos", pos, "height", height, "tile", tileType)
		c.notifier.Notify(msgReplaced)
		c.emit(Event{Kind: EventReplaced, Pos: pos, Height: height, Tile: tileType})
		return Replaced, nil
	}
	c.logger.Debug("tile placed", "pos", pos, "height", height, "tile", tileType)
	c.notifier.Notify(msgPlaced)
	c.emit(Event{Kind: EventPlaced, Pos: pos, Height: height, Tile: tileType})
	return Placed, nil
}

// RemoveTopTile removes the highest tile in the column at pos, whatever
// the height cursor, and refunds it.
func (c *Controller) RemoveTopTile(pos grid.Position) (grid.PlacedTile, error) {
	top, ok := c.layers.TopHeight(pos)
	if !ok {
		c.notifier.Notify(msgNothingToRemove)
		return grid.PlacedTile{}, grid.ErrNotFound
	}
	removed, err := c.layers.Clear(pos, top)
	if err != nil {
		return grid.PlacedTile{}, err
	}
	c.ledger.Refund(1)
	c.sink.DrawTile(pos, top, nil)
	c.sink.UpdateCounters(c.Stats())
	c.save()

	c.logger.Debug("tile removed", "pos", pos, "height", top, "tile", removed.Type)
	c.notifier.Notify(msgRemoved)
	c.emit(Event{Kind: EventRemoved, Pos: pos, Height: top, Tile: removed.Type, Count: 1})
	return removed, nil
}

// ClearHeight removes every tile at height and refunds each one.
// Returns the number of tiles cleared.
func (c *Controller) ClearHeight(height int) (int, error) {
	if !grid.ValidHeight(height) {
		return 0, fmt.Errorf("%w: height %d", grid.ErrOutOfBounds, height)
	}

	cleared := 0
	for pos := range c.layers.AllAt(height) {
		if _, err := c.layers.Clear(pos, height); err != nil {
			continue
		}
		c.ledger.Refund(1)
		c.sink.DrawTile(pos, height, nil)
		cleared++
	}

	if cleared == 0 {
		c.notifier.Notify(msgNothingToClear(height))
		return 0, ErrNothingToClear
	}

	c.sink.UpdateCounters(c.Stats())
	c.save()

	c.logger.Debug("height cleared", "height", height, "count", cleared)
	c.notifier.Notify(msgCleared(cleared, height))
	c.emit(Event{Kind: EventCleared, Height: height, Count: cleared})
	return cleared, nil
}

// ClearCurrentHeight clears the height under the cursor.
func (c *Controller) ClearCurrentHeight() (int, error) {
	return c.ClearHeight(c.height)
}

// SetHeightCursor moves the height cursor by delta, clamped to the grid's
// height range. Moving against a bound the cursor already sits on is a
// no-op that returns ErrHeightLimit.
func (c *Controller) SetHeightCursor(delta int) (int, error) {
	switch {
	case delta > 0 && c.height >= grid.MaxHeight:
		c.notifier.Notify(fmt.Sprintf(msgMaxHeight, grid.MaxHeight))
		return c.height, ErrHeightLimit
	case delta < 0 && c.height <= grid.MinHeight:
		c.notifier.Notify(fmt.Sprintf(msgMinHeight, grid.MinHeight))
		return c.height, ErrHeightLimit
	case delta == 0:
		return c.height, nil
	}

	c.height = min(max(c.height+delta, grid.MinHeight), grid.MaxHeight)
	c.sink.ClearPreview()
	c.sink.UpdateCounters(c.Stats())
	c.save()

	if delta > 0 {
		c.notifier.Notify(fmt.Sprintf(msgHeightUp, c.height))
	} else {
		c.notifier.Notify(fmt.Sprintf(msgHeightDown, c.height))
	}
	return c.height, nil
}

// Click applies the selected tool at pos: the remove tool removes the top
// tile, any other selection is placed on the current height.
func (c *Controller) Click(pos grid.Position) error {
	switch c.selected {
	case tiles.RemoveTool:
		_, err := c.RemoveTopTile(pos)
		return err
	case "":
		return ErrNoSelection
	default:
		_, err := c.PlaceTile(pos, c.selected)
		return err
	}
}

// Preview shows where the selected tile would go. Nothing is shown with
// the remove tool, or when a fresh placement could not be paid for.
// Returns true if a preview was drawn.
func (c *Controller) Preview(pos grid.Position) bool {
	if !c.CanPreview(pos) {
		c.sink.ClearPreview()
		return false
	}
	c.sink.DrawPreview(pos, c.selected, c.height)
	return true
}

// CanPreview reports whether Preview(pos) would draw.
func (c *Controller) CanPreview(pos grid.Position) bool {
	if c.selected == tiles.RemoveTool || c.selected == "" || !pos.InBounds() {
		return false
	}
	return c.layers.Occupied(pos, c.height) || c.ledger.CanSpend(1)
}

// HidePreview removes any preview.
func (c *Controller) HidePreview() {
	c.sink.ClearPreview()
}

// SelectTile selects a catalog tile or the remove tool.
func (c *Controller) SelectTile(id string) error {
	if id != tiles.RemoveTool && !tiles.Has(id) {
		return fmt.Errorf("%w: %q", tiles.ErrUnknownTile, id)
	}
	c.selected = id
	c.sink.ClearPreview()
	c.sink.UpdateCounters(c.Stats())
	return nil
}

// SelectSlot selects the tile in the given 0-based hotbar slot.
func (c *Controller) SelectSlot(i int) error {
	id, ok := c.hotbar.Slot(i)
	if !ok {
		return fmt.Errorf("canvas: empty hotbar slot %d", i+1)
	}
	return c.SelectTile(id)
}

// ToggleHotbar adds or removes id from the hotbar. If the selected tile
// leaves the hotbar, the selection falls back to the first slot.
func (c *Controller) ToggleHotbar(id string) (bool, error) {
	in, err := c.hotbar.Toggle(id)
	if errors.Is(err, tiles.ErrHotbarFull) {
		c.notifier.Notify(msgHotbarFull)
	}
	if err != nil {
		return false, err
	}
	if !in && c.selected == id {
		c.selected = c.hotbar.First()
		c.sink.ClearPreview()
	}
	c.sink.UpdateCounters(c.Stats())
	c.save()
	return in, nil
}

// AddNote adds a note, newest first.
func (c *Controller) AddNote(text string) (notes.Note, error) {
	n, err := c.book.Add(text, c.clock.Now())
	if err != nil {
		return notes.Note{}, err
	}
	c.save()
	return n, nil
}

// DeleteNote removes the note with the given id.
func (c *Controller) DeleteNote(id int) error {
	if err := c.book.Delete(id); err != nil {
		return err
	}
	c.save()
	return nil
}

// StartSession starts a full focus session.
func (c *Controller) StartSession() (focus.Status, error) {
	st, err := c.timer.Start()
	if err != nil {
		return st, err
	}
	c.logger.Info("session started", "remaining", st.Remaining)
	c.sink.UpdateCountdown(st.Remaining, true)
	c.notifier.Notify(msgStarted(c.timer.Duration()))
	c.emit(Event{Kind: EventSessionStarted})
	return st, nil
}

// PauseSession stops the focus timer without credit.
func (c *Controller) PauseSession() (focus.Status, error) {
	st, err := c.timer.Pause()
	if err != nil {
		return st, err
	}
	c.logger.Info("session paused", "remaining", st.Remaining)
	c.sink.UpdateCountdown(st.Remaining, false)
	c.notifier.Notify(msgPaused)
	c.emit(Event{Kind: EventSessionPaused})
	return st, nil
}

// ToggleSession pauses a running session or starts one.
func (c *Controller) ToggleSession() (focus.Status, error) {
	if c.timer.Running() {
		return c.PauseSession()
	}
	return c.StartSession()
}

// TickSession refreshes the countdown. Ticks scheduled under an older
// timer generation are stale and ignored; the second result reports
// whether the tick was current.
func (c *Controller) TickSession(generation uint64) (focus.Status, bool) {
	if generation != c.timer.Generation() || !c.timer.Running() {
		return focus.Status{State: c.timer.State(), Remaining: c.timer.Remaining()}, false
	}
	st := c.timer.Tick()
	if st.Completed != nil {
		c.completed(st)
		return st, true
	}
	c.sink.UpdateCountdown(st.Remaining, true)
	return st, true
}

// completed applies the side effects of a finished session. The timer
// has already credited the ledger.
func (c *Controller) completed(st focus.Status) {
	done := st.Completed
	if c.history != nil {
		_, err := c.history.RecordSession(storage.SessionRecord{
			Owner:       c.opts.Owner,
			StartedAt:   done.Start,
			CompletedAt: done.At,
			Reward:      done.Reward,
			Away:        done.Away,
		})
		if err != nil {
			c.logger.Warn("could not record session", "error", err)
		}
	}

	c.save()
	c.sink.UpdateCountdown(st.Remaining, false)
	c.sink.UpdateCounters(c.Stats())

	c.logger.Info("session completed", "sessions", done.Sessions, "reward", done.Reward, "away", done.Away)
	c.notifier.Notify(msgCompleted(done.Reward, done.Away))
	c.emit(Event{Kind: EventSessionCompleted, Count: done.Reward, Away: done.Away})
}

// Stats returns the counter panel contents.
func (c *Controller) Stats() Stats {
	return Stats{
		Balance:   c.ledger.Balance(),
		Sessions:  c.timer.Sessions(),
		Height:    c.height,
		Placed:    c.layers.Len(),
		Selected:  c.selected,
		Remaining: c.timer.Remaining(),
		Running:   c.timer.Running(),
	}
}

// Balance returns the ledger counters.
func (c *Controller) Balance() economy.Balance { return c.ledger.Balance() }

// Height returns the height cursor.
func (c *Controller) Height() int { return c.height }

// Selected returns the selected tile id or tiles.RemoveTool.
func (c *Controller) Selected() string { return c.selected }

// Hotbar returns the hotbar slots in order.
func (c *Controller) Hotbar() []string { return c.hotbar.Tiles() }

// Notes returns the notes, newest first.
func (c *Controller) Notes() []notes.Note { return c.book.List() }

// Tile returns the tile at (pos, height), if any.
func (c *Controller) Tile(pos grid.Position, height int) (grid.PlacedTile, bool) {
	return c.layers.Get(pos, height)
}

// Column returns the tiles at pos, bottom to top.
func (c *Controller) Column(pos grid.Position) []grid.PlacedTile {
	return c.layers.Column(pos)
}

// Generation returns the timer generation for scheduling ticks.
func (c *Controller) Generation() uint64 { return c.timer.Generation() }

// Running reports whether a focus session is in progress.
func (c *Controller) Running() bool { return c.timer.Running() }

// Remaining returns the time left in the current session.
func (c *Controller) Remaining() time.Duration { return c.timer.Remaining() }

// TimerRecord returns the stored form of the running session, or nil.
func (c *Controller) TimerRecord() *snapshot.TimerRecord {
	if !c.timer.Running() {
		return nil
	}
	rec := snapshot.RecordOf(focus.Checkpoint{
		Start:    c.timer.StartedAt(),
		Duration: c.timer.Length(),
		Running:  true,
	})
	return &rec
}
