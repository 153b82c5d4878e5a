package storage

import (
	"fmt"
	"os"

	"teahouse/internal/entity"
)

// Bootstrap creates the data directory if needed and seeds any missing
// collection file with an empty array, so the first requests after a
// fresh deploy never race to create them.
func (s *Store) Bootstrap() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("%w: create data dir: %v", entity.ErrStorage, err)
	}
	for _, file := range []string{OrdersFile, ProductsFile, RatingsFile} {
		_, err := os.Stat(s.Path(file))
		if err == nil {
			continue
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("%w: stat %s: %v", entity.ErrStorage, file, err)
		}
		if err := os.WriteFile(s.Path(file), []byte("[]\n"), 0644); err != nil {
			return fmt.Errorf("%w: seed %s: %v", entity.ErrStorage, file, err)
		}
	}
	return nil
}
