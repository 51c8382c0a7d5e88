// Package snapshot defines the persisted form of the canvas state, its
// validation and versioning, and the compressed export archive.
package snapshot

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vovakirdan/focustile/internal/grid"
)

// Storage keys.
const (
	DataKey  = "focustile-data"
	TimerKey = "focustile-timer"
)

// Version is the schema version written by Encode. Blobs without a
// version field are the original browser format and decode as version 0.
const Version = 1

var (
	// ErrInvalid is returned for blobs that fail schema validation.
	ErrInvalid = errors.New("snapshot: invalid data")

	// ErrUnsupportedVersion is returned for blobs written by a newer build.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
)

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("focustile-snapshot.json", schemaJSON)

// Tile is one placed tile as stored.
type Tile struct {
	Type     string `json:"type"`
	Rotation string `json:"rotation"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Height   int    `json:"height"`
}

// Note is one note as stored.
type Note struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Snapshot is the whole persisted canvas state.
type Snapshot struct {
	Version            int                        `json:"version"`
	GridData           map[string]map[string]Tile `json:"gridData"`
	Notes              []Note                     `json:"notes"`
	SessionsCompleted  int                        `json:"sessionsCompleted"`
	TilesEarned        int                        `json:"tilesEarned"`
	TilesUsed          int                        `json:"tilesUsed"`
	TilesAvailable     int                        `json:"tilesAvailable"`
	NoteIDCounter      int                        `json:"noteIdCounter"`
	CurrentHotbarTiles []string                   `json:"currentHotbarTiles"`
	CurrentHeight      int                        `json:"currentHeight"`
}

// Encode serialises s at the current version.
func Encode(s *Snapshot) ([]byte, error) {
	out := *s
	out.Version = Version
	if out.GridData == nil {
		out.GridData = map[string]map[string]Tile{}
	}
	if out.Notes == nil {
		out.Notes = []Note{}
	}
	data, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return data, nil
}

// Decode validates and parses a blob, migrating older versions.
func Decode(data []byte) (*Snapshot, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if s.Version > Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}
	if s.Version == 0 {
		migrateV0(&s)
	}
	return &s, nil
}

// migrateV0 upgrades the browser format. It had no version field and
// could carry tiles saved before orientation was recorded.
func migrateV0(s *Snapshot) {
	for _, col := range s.GridData {
		for h, t := range col {
			if t.Rotation == "" {
				t.Rotation = string(grid.OrientationEast)
				col[h] = t
			}
		}
	}
	s.Version = Version
}

// FromLayers converts a layer map to its stored form.
func FromLayers(m *grid.LayerMap) map[string]map[string]Tile {
	out := make(map[string]map[string]Tile, m.Columns())
	for _, t := range m.Tiles() {
		key := t.Pos.Key()
		col, ok := out[key]
		if !ok {
			col = make(map[string]Tile)
			out[key] = col
		}
		col[strconv.Itoa(t.Height)] = Tile{
			Type:     t.Type,
			Rotation: string(t.Rotation),
			Row:      t.Pos.Row,
			Col:      t.Pos.Col,
			Height:   t.Height,
		}
	}
	return out
}

// Layers rebuilds the layer map. The slot is taken from the map keys;
// entries whose keys are malformed or off the grid are skipped and counted.
func (s *Snapshot) Layers() (*grid.LayerMap, int) {
	m := grid.NewLayerMap()
	skipped := 0
	for key, col := range s.GridData {
		pos, err := grid.ParseKey(key)
		if err != nil {
			skipped += len(col)
			continue
		}
		for hk, t := range col {
			h, err := strconv.Atoi(hk)
			if err != nil || t.Type == "" {
				skipped++
				continue
			}
			pt := grid.NewTile(t.Type, pos, h)
			if t.Rotation != "" {
				pt.Rotation = grid.Orientation(t.Rotation)
			}
			if _, err := m.Set(pt); err != nil {
				skipped++
			}
		}
	}
	return m, skipped
}
