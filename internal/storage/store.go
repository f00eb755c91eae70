package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/barviz/internal/dataset"
)

const (
	metadataFile = "metadata.json"
	pointsFile   = "points.csv"
)

var (
	ErrNotFound    = errors.New("storage: snapshot not found")
	ErrInvalidName = errors.New("storage: invalid snapshot name")
	ErrCorrupt     = errors.New("storage: corrupt snapshot")
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type Metadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Seed      int64     `json:"seed"`
	Sort      string    `json:"sort"`
	Ticks     int       `json:"ticks"`
	Count     int       `json:"count"`
	Max       float64   `json:"max"`
}

// Save writes d under a new snapshot id derived from name and the current
// time. Name defaults to "snapshot".
func (s *Store) Save(name string, d dataset.Dataset, meta Metadata) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	if name == "" {
		name = "snapshot"
	}
	if strings.ContainsAny(name, `/\. `) {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidName)
	}

	ts := s.now()
	id := fmt.Sprintf("%s_%d", name, ts.UnixNano())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta.ID = id
	meta.Name = name
	meta.Timestamp = ts
	meta.Count = len(d)
	meta.Max = d.Max()

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, pointsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, d); err != nil {
		return "", err
	}
	return id, nil
}

// List returns snapshots oldest first. Unreadable entries are skipped.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	snaps := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *meta)
	}
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].Timestamp.Before(snaps[j].Timestamp)
	})
	return snaps, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", id, err, ErrCorrupt)
	}
	return &meta, nil
}

// LoadDataset reads the points of a snapshot and checks the dataset
// invariants.
func (s *Store) LoadDataset(id string) (dataset.Dataset, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, pointsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	defer file.Close()

	d, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", id, err, ErrCorrupt)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return d, nil
}

// Latest returns the id of the newest snapshot.
func (s *Store) Latest() (string, error) {
	snaps, err := s.List()
	if err != nil {
		return "", err
	}
	if len(snaps) == 0 {
		return "", ErrNotFound
	}
	return snaps[len(snaps)-1].ID, nil
}

func (s *Store) Delete(id string) error {
	if _, err := s.Load(id); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, id))
}
