// Package seed implements the two store seeding operations: registering a
// credential pair and importing a directory of audio files into the catalog.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/hetulpatel/catalogseed/internal/catalog"
	"github.com/hetulpatel/catalogseed/internal/logging"
	"github.com/hetulpatel/catalogseed/internal/models"
	"github.com/hetulpatel/catalogseed/internal/queue"
	"github.com/hetulpatel/catalogseed/internal/storage/sqlite"
)

// ErrUsage means a required positional argument is missing.
var ErrUsage = errors.New("missing required argument")

const (
	RegisterUsage = "register-user <username> <password>"
	ImportUsage   = "import-catalog <path-prefix>"
)

// Seeder runs one seeding operation against the store at StorePath.
type Seeder struct {
	StorePath string
	// Events receives a notification per committed row; nil disables it.
	Events queue.MessageWriter
}

// RegisterUser inserts args[0], args[1] as a username/password pair.
// Arguments are checked before the store is touched.
func (s *Seeder) RegisterUser(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: usage: %s", ErrUsage, RegisterUsage)
	}
	user := models.User{Username: args[0], Password: args[1]}

	store, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	logging.Warnf("password for %q is stored in plaintext", user.Username)
	if err := store.AddUser(ctx, user); err != nil {
		return err
	}
	logging.Infof("registered user %q in %s", user.Username, store.Path())

	if err := queue.PublishUser(ctx, s.Events, user); err != nil {
		logging.Errorf("publish user %q: %v", user.Username, err)
	}
	return nil
}

// ImportCatalog records every audio file matching args[0] and returns the
// number of rows inserted. All rows are committed together.
func (s *Seeder) ImportCatalog(ctx context.Context, args []string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("%w: usage: %s", ErrUsage, ImportUsage)
	}
	prefix := args[0]

	entries, err := catalog.Scan(prefix)
	if err != nil {
		return 0, err
	}
	logging.Debugf("pattern %q matched %d files", catalog.Pattern(prefix), len(entries))

	store, err := s.open(ctx)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	n, err := store.AddFiles(ctx, entries)
	if err != nil {
		return 0, err
	}
	logging.Infof("imported %d files from %q into %s", n, prefix, store.Path())

	if err := queue.PublishEntries(ctx, s.Events, entries); err != nil {
		logging.Errorf("publish %d catalog entries: %v", len(entries), err)
	}
	return n, nil
}

func (s *Seeder) open(ctx context.Context) (*sqlite.Store, error) {
	store, err := sqlite.Open(s.StorePath)
	if err != nil {
		return nil, err
	}
	if err := store.CreateTables(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return store, nil
}
