package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"cardbinder-backend/lib/scrapers/pricecharting"
)

// legacyInboxPath is where older deployments kept a profile's inbox as a
// flat json array of offers.
func (s Service) legacyInboxPath(profileID string) string {
	return filepath.Join(s.dataDir, "inbox-"+profileID+".json")
}

// migrateLegacyInbox moves a profile's flat-file inbox into the relational
// store and deletes the file. It only runs when the profile has no relational
// rows, so a retry after a crash (or a concurrent second attempt) either
// finds the rows already present or finds no file and does nothing. Inserts
// are insert-or-ignore, replaying them is harmless.
func (s Service) migrateLegacyInbox(ctx context.Context, profileID string) error {
	path := s.legacyInboxPath(profileID)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read legacy inbox: %w", err)
	}

	var offers []pricecharting.Offer
	if err := json.Unmarshal(raw, &offers); err != nil {
		return fmt.Errorf("failed to decode legacy inbox %q: %w", path, err)
	}
	offers = pricecharting.Dedup(offers)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	qry := s.qry.WithTx(tx)

	if err := ensureProfile(ctx, qry, profileID); err != nil {
		return err
	}
	if err := insertInbox(ctx, qry, profileID, offers); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove migrated legacy inbox: %w", err)
	}
	slog.InfoContext(ctx, "migrated legacy inbox file",
		"profile", profileID, "entries", len(offers))
	return nil
}
