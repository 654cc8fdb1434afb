package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"voirank/internal/fileutil"
	"voirank/internal/services"
)

// ErrNoData indicates the snapshot blob for a category does not exist.
// Callers treat it as an empty dataset rather than a failure.
var ErrNoData = errors.New("no snapshot data")

// Meta carries the search response metadata saved alongside the records.
type Meta struct {
	Status     int       `json:"status,omitempty"`
	TotalCount int       `json:"totalCount"`
	Category   string    `json:"category,omitempty"`
	Keywords   []string  `json:"keywords,omitempty"`
	FetchedAt  time.Time `json:"fetchedAt,omitzero"`
}

// Blob is a persisted snapshot for one category.
type Blob struct {
	Meta Meta     `json:"meta"`
	Data []Record `json:"data"`
}

// BlobStore reads and writes category blobs as <dir>/<category>.json.
type BlobStore struct {
	dir string
}

// NewBlobStore returns a store rooted at dir.
func NewBlobStore(dir string) *BlobStore {
	return &BlobStore{dir: dir}
}

// Path returns the blob location for a category.
func (s *BlobStore) Path(category string) string {
	return filepath.Join(s.dir, category+".json")
}

// Load reads the blob for category. A missing file yields an error matching
// both ErrNoData and services.ErrNotFound.
func (s *BlobStore) Load(category string) (*Blob, error) {
	path := s.Path(category)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "dataset", "load blob", path, ErrNoData)
		}
		return nil, fmt.Errorf("open blob %s: %w", path, err)
	}
	defer file.Close()

	blob, err := DecodeBlob(file)
	if err != nil {
		return nil, fmt.Errorf("decode blob %s: %w", path, err)
	}
	return blob, nil
}

// Records loads the blob for category and returns only its records.
func (s *BlobStore) Records(category string) ([]Record, error) {
	blob, err := s.Load(category)
	if err != nil {
		return nil, err
	}
	return blob.Data, nil
}

// Save writes the blob for category atomically.
func (s *BlobStore) Save(category string, blob *Blob) error {
	if blob == nil {
		return errors.New("dataset: nil blob")
	}
	return fileutil.WriteAtomic(s.Path(category), 0o644, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(blob)
	})
}

// Exists reports whether a blob is present for category.
func (s *BlobStore) Exists(category string) bool {
	return fileutil.Exists(s.Path(category))
}

// DecodeBlob parses a blob document. A bare JSON array of records is accepted
// as a blob without metadata.
func DecodeBlob(r io.Reader) (*Blob, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var blob Blob
	if err := json.Unmarshal(raw, &blob); err == nil {
		return &blob, nil
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	return &Blob{Meta: Meta{TotalCount: len(records)}, Data: records}, nil
}
