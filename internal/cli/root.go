// Package cli holds the kong command implementations for the cotask binary.
package cli

import (
	"strings"

	"github.com/julianstephens/cotask/internal/storage"
	"github.com/julianstephens/cotask/internal/storage/postgres"
	"github.com/julianstephens/cotask/internal/storage/sqlite"
)

// Context is the shared state passed into every command.
type Context struct {
	Store storage.Provider

	Addr          string
	JWTSecret     string
	RoadmapAPIKey string
	RoadmapURL    string
}

// OpenStore selects the storage backend from the database setting: a
// postgres:// (or postgresql://) string opens the postgres provider,
// anything else is treated as a SQLite file path.
func OpenStore(database string) storage.Provider {
	if strings.HasPrefix(database, "postgres://") || strings.HasPrefix(database, "postgresql://") {
		return postgres.New(database)
	}
	return sqlite.NewStore(database)
}
