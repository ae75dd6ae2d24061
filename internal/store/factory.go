package store

import (
	"errors"
	"strings"
)

const (
	EngineJSON   = "json"
	EngineSQLite = "sqlite"
)

// ProfileRepoFor returns the profile repository for engine. The SQLite
// engine shares this store's database; the JSON engine uses jsonPath.
func (s *Store) ProfileRepoFor(engine, jsonPath string) (ProfileRepo, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineSQLite:
		return s.ProfileRepo(), nil
	case EngineJSON:
		if jsonPath == "" {
			p, err := DefaultJSONPath()
			if err != nil {
				return nil, err
			}
			jsonPath = p
		}
		return NewJSONProfileRepo(jsonPath)
	default:
		return nil, errors.New("unsupported store engine: " + engine)
	}
}
