package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"teahouse/internal/entity"
)

// Collection file names under the data directory.
const (
	OrdersFile   = "orders.json"
	ProductsFile = "products.json"
	RatingsFile  = "ratings.json"
)

// Store reads and writes named JSON collections under a single data
// directory. Each collection is one file holding a top-level array.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the absolute location of a collection file.
func (s *Store) Path(file string) string {
	return filepath.Join(s.dir, file)
}

// Load decodes the named collection into out. A missing file is not an
// error: out is left untouched and callers see an empty collection.
func (s *Store) Load(file string, out any) error {
	data, err := os.ReadFile(s.Path(file))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: read %s: %v", entity.ErrStorage, file, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", entity.ErrStorage, file, err)
	}
	return nil
}

// Save fully replaces the named collection. The document is written to a
// temp file in the same directory and renamed over the target, so a
// concurrent reader never observes a partial write.
func (s *Store) Save(file string, records any) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", entity.ErrStorage, file, err)
	}
	tmp := s.Path(file) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", entity.ErrStorage, file, err)
	}
	if err := os.Rename(tmp, s.Path(file)); err != nil {
		return fmt.Errorf("%w: replace %s: %v", entity.ErrStorage, file, err)
	}
	return nil
}
