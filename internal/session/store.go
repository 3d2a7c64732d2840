package session

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	metadataFile = "metadata.json"
	eventsFile   = "events.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type ObjectMeta struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Metadata describes one recorded session. Counts and Final are filled in
// when the recorder closes.
type Metadata struct {
	ID          string                `json:"id"`
	Scene       string                `json:"scene"`
	Frontend    string                `json:"frontend"`
	Sensitivity float64               `json:"sensitivity"`
	Timestamp   time.Time             `json:"timestamp"`
	Duration    float64               `json:"duration"`
	Objects     []ObjectMeta          `json:"objects"`
	Events      int                   `json:"events"`
	Rotations   int                   `json:"rotations"`
	SinkErrors  int                   `json:"sink_errors"`
	Final       map[string][4]float64 `json:"final,omitempty"`
}

// newID prefixes the id with the scene's base name so file-backed scenes
// still give a flat directory name.
func newID(scene string, now time.Time) string {
	scene = strings.TrimSuffix(filepath.Base(scene), filepath.Ext(scene))
	if scene == "" || scene == "." || scene == string(filepath.Separator) {
		scene = "session"
	}
	return fmt.Sprintf("%s_%d_%s", scene, now.Unix(), uuid.NewString()[:8])
}

func (s *Store) path(id, name string) string {
	return filepath.Join(s.baseDir, id, name)
}

// Create starts a session directory and returns the recorder writing into it.
func (s *Store) Create(meta Metadata) (*Recorder, error) {
	now := time.Now()
	if meta.Timestamp.IsZero() {
		meta.Timestamp = now
	}
	if meta.ID == "" {
		meta.ID = newID(meta.Scene, meta.Timestamp)
	}
	if err := os.MkdirAll(filepath.Join(s.baseDir, meta.ID), 0755); err != nil {
		return nil, err
	}
	if err := s.writeMetadata(&meta); err != nil {
		return nil, err
	}

	f, err := os.Create(s.path(meta.ID, eventsFile))
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	return newRecorder(s, meta, f, w), nil
}

func (s *Store) writeMetadata(meta *Metadata) error {
	f, err := os.Create(s.path(meta.ID, metadataFile))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// List returns every readable session, oldest first. Directories without
// valid metadata are skipped.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	sessions := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		sessions = append(sessions, *meta)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Timestamp.Before(sessions[j].Timestamp)
	})
	return sessions, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(s.path(id, metadataFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	return &meta, nil
}

// Latest returns the most recent session.
func (s *Store) Latest() (*Metadata, error) {
	sessions, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, ErrNoSessions
	}
	return &sessions[len(sessions)-1], nil
}

// Resolve loads id, or the latest session when id is empty.
func (s *Store) Resolve(id string) (*Metadata, error) {
	if id == "" {
		return s.Latest()
	}
	return s.Load(id)
}

func (s *Store) LoadRecords(id string) ([]Record, error) {
	f, err := os.Open(s.path(id, eventsFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer f.Close()
	return ReadRecords(f)
}

// ReadRecords decodes an events.csv stream, header included.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []Record{}, nil
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRecord(i+2, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Remove deletes a session directory.
func (s *Store) Remove(id string) error {
	if _, err := s.Load(id); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, id))
}
