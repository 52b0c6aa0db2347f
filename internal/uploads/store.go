// Package uploads stores payment proof files on local disk and hands back
// the path they are served under.
package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Save writes the file under a collision-proof name and returns the public
// path it is served from.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	stored := uuid.NewString() + "_" + filepath.Base(name)
	f, err := os.Create(filepath.Join(s.Dir, stored))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return "/uploads/" + stored, nil
}
