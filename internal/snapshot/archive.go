package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Archive is the export envelope written by WriteArchive.
type Archive struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exportedAt"`
	Data       json.RawMessage `json:"data"`
	Timer      *TimerRecord    `json:"timer,omitempty"`
}

// WriteArchive writes a zstd-compressed export of s and, if a session is
// running, its timer record.
func WriteArchive(w io.Writer, s *Snapshot, timer *TimerRecord, exportedAt time.Time) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("snapshot: archive: %w", err)
	}
	a := Archive{
		Version:    Version,
		ExportedAt: exportedAt.UTC(),
		Data:       data,
		Timer:      timer,
	}
	if err := json.NewEncoder(enc).Encode(&a); err != nil {
		enc.Close()
		return fmt.Errorf("snapshot: archive: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("snapshot: archive: %w", err)
	}
	return nil
}

// ReadArchive reads an export written by WriteArchive. Uncompressed input
// is taken to be a bare state blob copied out of the browser build.
func ReadArchive(r io.Reader) (*Snapshot, *TimerRecord, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot: archive: %w", err)
	}

	if !bytes.HasPrefix(raw, zstdMagic) {
		s, err := Decode(raw)
		return s, nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot: archive: %w", err)
	}
	defer dec.Close()

	plain, err := dec.DecodeAll(raw, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	var a Archive
	if err := json.Unmarshal(plain, &a); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if a.Version > Version {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, a.Version)
	}
	s, err := Decode(a.Data)
	if err != nil {
		return nil, nil, err
	}
	return s, a.Timer, nil
}
