package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/focustile/internal/focus"
	"github.com/vovakirdan/focustile/internal/storage"
)

// TimerRecord is the stored running-session checkpoint.
type TimerRecord struct {
	StartTime int64 `json:"startTime"` // Unix milliseconds
	WorkTime  int   `json:"workTime"`  // Seconds
	IsRunning bool  `json:"isRunning"`
}

// Checkpoint converts the record to the timer's form.
func (r TimerRecord) Checkpoint() focus.Checkpoint {
	return focus.Checkpoint{
		Start:    time.UnixMilli(r.StartTime),
		Duration: time.Duration(r.WorkTime) * time.Second,
		Running:  r.IsRunning,
	}
}

// RecordOf converts a timer checkpoint to its stored form.
func RecordOf(cp focus.Checkpoint) TimerRecord {
	return TimerRecord{
		StartTime: cp.Start.UnixMilli(),
		WorkTime:  int(cp.Duration / time.Second),
		IsRunning: cp.Running,
	}
}

// Repo reads and writes snapshots and the timer checkpoint through a KV.
type Repo struct {
	kv storage.KV
}

// NewRepo creates a repository over kv.
func NewRepo(kv storage.KV) *Repo {
	return &Repo{kv: kv}
}

// Load returns the stored snapshot. Returns storage.ErrNotFound when
// nothing has been saved yet.
func (r *Repo) Load() (*Snapshot, error) {
	data, err := r.kv.Get(DataKey)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Save writes s.
func (r *Repo) Save(s *Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	return r.kv.Put(DataKey, data)
}

// Timer returns the stored timer record, if any.
func (r *Repo) Timer() (*TimerRecord, error) {
	data, err := r.kv.Get(TimerKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec TimerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: timer: %w", ErrInvalid, err)
	}
	return &rec, nil
}

// SaveTimer writes the timer record.
func (r *Repo) SaveTimer(rec TimerRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("snapshot: encode timer: %w", err)
	}
	return r.kv.Put(TimerKey, data)
}

// SaveCheckpoint implements focus.CheckpointStore.
func (r *Repo) SaveCheckpoint(cp focus.Checkpoint) error {
	return r.SaveTimer(RecordOf(cp))
}

// LoadCheckpoint implements focus.CheckpointStore.
func (r *Repo) LoadCheckpoint() (focus.Checkpoint, bool, error) {
	rec, err := r.Timer()
	if err != nil || rec == nil {
		return focus.Checkpoint{}, false, err
	}
	return rec.Checkpoint(), true, nil
}

// ClearCheckpoint implements focus.CheckpointStore.
func (r *Repo) ClearCheckpoint() error {
	return r.kv.Delete(TimerKey)
}

var _ focus.CheckpointStore = (*Repo)(nil)
