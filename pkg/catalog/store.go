// Package catalog reads improv format records from a directory of JSON
// files (one file per record, filename = id) and selects the visible,
// ordered subset for a given set of filter and sort criteria.
package catalog

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/improv-tovarisch/backend/pkg/logger"
	"github.com/improv-tovarisch/backend/pkg/models"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// List reads every format record in the directory. A single corrupt
// file is skipped with a warning; the rest of the catalog still loads.
// Records come back in the storage default order: explored first, then
// by name under Russian collation.
func (s *Store) List() ([]models.Format, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	formats := make([]models.Format, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			logger.Log.Warn().Err(err).Str("file", entry.Name()).Msg("failed to read format file")
			continue
		}

		var f models.Format
		if err := json.Unmarshal(raw, &f); err != nil {
			logger.Log.Warn().Err(err).Str("file", entry.Name()).Msg("skipping malformed format file")
			continue
		}
		formats = append(formats, f)
	}

	col := collate.New(language.Russian)
	sortStable(formats, func(a, b *models.Format) int {
		if a.Explored != b.Explored {
			if a.Explored {
				return -1
			}
			return 1
		}
		return col.CompareString(a.Name, b.Name)
	})

	return formats, nil
}

// GetByID looks a record up by its slug. A missing or unsafe id is a
// not-found result, never an error.
func (s *Store) GetByID(id string) (*models.Format, error) {
	if !idRegex.MatchString(id) {
		return nil, nil
	}

	raw, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var f models.Format
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Save writes a record back as pretty-printed JSON, the shape the data
// import scripts produce.
func (s *Store) Save(f *models.Format) error {
	if !idRegex.MatchString(f.ID) {
		return errors.New("catalog: unsafe format id")
	}

	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, f.ID+".json"), raw, 0o644)
}
