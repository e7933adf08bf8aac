package collection

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"cardbinder-backend/lib/scrapers/pricecharting"
	"cardbinder-backend/lib/textutil"
	"cardbinder-backend/services/collection/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var tracer = otel.Tracer("services/collection")

const (
	// DefaultProfile is assumed when a caller does not name a profile.
	DefaultProfile = "default"
	// DefaultBinder is assumed when a caller does not name a binder.
	DefaultBinder = "main"
)

type Options struct {
	// directory legacy flat-file inboxes were written under,
	// "data" when empty
	DataDir string
}

type Service struct {
	db      *sql.DB
	qry     *db.Queries
	dataDir string
}

func NewService(database *sql.DB, opts Options) Service {
	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	return Service{
		db:      database,
		qry:     db.New(database),
		dataDir: dataDir,
	}
}

// BinderCard is one binder row joined back to the offer it was added from.
type BinderCard struct {
	pricecharting.Offer
	Count int64 `json:"count"`
}

// AddResult reports how a bulk binder add was absorbed.
type AddResult struct {
	Created  int `json:"created"`
	Existing int `json:"existing"`
}

func ensureProfile(ctx context.Context, qry *db.Queries, profileID string) error {
	return qry.CreateProfile(ctx, db.CreateProfileParams{
		ID:   profileID,
		Name: profileID,
	})
}

// ReplaceInbox swaps the profile's entire staging set for the given batch in
// one transaction. Offers without a key are dropped rather than stored.
func (s Service) ReplaceInbox(ctx context.Context, profileID string, offers []pricecharting.Offer) error {
	ctx, span := tracer.Start(ctx, "ReplaceInbox")
	defer span.End()
	span.SetAttributes(
		attribute.String("profile", profileID),
		attribute.Int("offers", len(offers)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	qry := s.qry.WithTx(tx)

	if err := ensureProfile(ctx, qry, profileID); err != nil {
		return err
	}
	if err := qry.DeleteInboxEntries(ctx, profileID); err != nil {
		return err
	}
	if err := insertInbox(ctx, qry, profileID, offers); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write inbox entries")
		return err
	}
	return tx.Commit()
}

func insertInbox(ctx context.Context, qry *db.Queries, profileID string, offers []pricecharting.Offer) error {
	order := int64(1)
	for _, offer := range offers {
		key := offer.Key()
		if key == "" {
			continue
		}
		payload, err := json.Marshal(offer)
		if err != nil {
			return fmt.Errorf("failed to encode offer %q: %w", key, err)
		}
		err = qry.CreateInboxEntry(ctx, db.CreateInboxEntryParams{
			ProfileID: profileID,
			CardKey:   key,
			Payload:   string(payload),
			SortOrder: order,
		})
		if err != nil {
			return err
		}
		order++
	}
	return nil
}

// ListInbox returns the profile's staging set in import order. A profile with
// no relational rows gets one attempt at migrating its legacy flat-file inbox
// first.
func (s Service) ListInbox(ctx context.Context, profileID string) ([]pricecharting.Offer, error) {
	ctx, span := tracer.Start(ctx, "ListInbox")
	defer span.End()

	entries, err := s.qry.GetInboxEntries(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		if err := s.migrateLegacyInbox(ctx, profileID); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "legacy inbox migration failed")
			return nil, err
		}
		entries, err = s.qry.GetInboxEntries(ctx, profileID)
		if err != nil {
			return nil, err
		}
	}

	offers := make([]pricecharting.Offer, 0, len(entries))
	for _, entry := range entries {
		var offer pricecharting.Offer
		if err := json.Unmarshal([]byte(entry.Payload), &offer); err != nil {
			slog.WarnContext(ctx, "skipping undecodable inbox entry",
				"profile", profileID, "key", entry.CardKey, "err", err)
			continue
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

// AddToBinder copies the named inbox entries into a binder. A key already in
// the binder gets its count bumped instead of a second row, and keys missing
// from the inbox are skipped silently since the inbox may have been replaced
// since the caller listed it.
func (s Service) AddToBinder(ctx context.Context, profileID, binderID string, keys []string) (AddResult, error) {
	ctx, span := tracer.Start(ctx, "AddToBinder")
	defer span.End()
	span.SetAttributes(
		attribute.String("profile", profileID),
		attribute.String("binder", binderID),
		attribute.Int("keys", len(keys)),
	)

	var result AddResult
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, err
	}
	defer tx.Rollback()
	qry := s.qry.WithTx(tx)

	if err := ensureProfile(ctx, qry, profileID); err != nil {
		return result, err
	}
	next, err := qry.GetMaxBinderSortOrder(ctx, db.GetMaxBinderSortOrderParams{
		ProfileID: profileID,
		BinderID:  binderID,
	})
	if err != nil {
		return result, err
	}
	next++

	for _, key := range keys {
		entry, err := qry.GetInboxEntry(ctx, db.GetInboxEntryParams{
			ProfileID: profileID,
			CardKey:   key,
		})
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return AddResult{}, err
		}

		_, err = qry.GetBinderEntry(ctx, db.GetBinderEntryParams{
			ProfileID: profileID,
			BinderID:  binderID,
			CardKey:   key,
		})
		if err == nil {
			err = qry.IncrementBinderCount(ctx, db.IncrementBinderCountParams{
				ProfileID: profileID,
				BinderID:  binderID,
				CardKey:   key,
			})
			if err != nil {
				return AddResult{}, err
			}
			result.Existing++
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return AddResult{}, err
		}

		err = qry.CreateBinderEntry(ctx, db.CreateBinderEntryParams{
			ProfileID: profileID,
			BinderID:  binderID,
			CardKey:   key,
			Payload:   entry.Payload,
			SortOrder: next,
			Count:     1,
		})
		if err != nil {
			return AddResult{}, err
		}
		next++
		result.Created++
	}

	if err := tx.Commit(); err != nil {
		return AddResult{}, err
	}
	return result, nil
}

// RemoveFromBinder deletes the named rows and closes the ordering gaps they
// leave behind.
func (s Service) RemoveFromBinder(ctx context.Context, profileID, binderID string, keys []string) error {
	ctx, span := tracer.Start(ctx, "RemoveFromBinder")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	qry := s.qry.WithTx(tx)

	for _, key := range keys {
		err := qry.DeleteBinderEntry(ctx, db.DeleteBinderEntryParams{
			ProfileID: profileID,
			BinderID:  binderID,
			CardKey:   key,
		})
		if err != nil {
			return err
		}
	}
	if err := compactBinder(ctx, qry, profileID, binderID); err != nil {
		return err
	}
	return tx.Commit()
}

// SetCount pins a binder row's quantity. A count of zero or less removes the
// row outright, a zero count is never stored.
func (s Service) SetCount(ctx context.Context, profileID, binderID, key string, count int64) error {
	if count <= 0 {
		return s.RemoveFromBinder(ctx, profileID, binderID, []string{key})
	}
	return s.qry.SetBinderCount(ctx, db.SetBinderCountParams{
		Count:     count,
		ProfileID: profileID,
		BinderID:  binderID,
		CardKey:   key,
	})
}

// Reorder applies a proposed key order to the binder. The proposal may be
// partial: keys it names come first in the given order, every other existing
// key follows in its previous relative order, and proposed keys not present
// in the binder are ignored. Membership never changes.
func (s Service) Reorder(ctx context.Context, profileID, binderID string, proposed []string) error {
	ctx, span := tracer.Start(ctx, "Reorder")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	qry := s.qry.WithTx(tx)

	entries, err := qry.GetBinderEntries(ctx, db.GetBinderEntriesParams{
		ProfileID: profileID,
		BinderID:  binderID,
	})
	if err != nil {
		return err
	}

	present := make(map[string]bool, len(entries))
	for _, entry := range entries {
		present[entry.CardKey] = true
	}

	ordered := make([]string, 0, len(entries))
	placed := make(map[string]bool, len(entries))
	for _, key := range proposed {
		if present[key] && !placed[key] {
			ordered = append(ordered, key)
			placed[key] = true
		}
	}
	for _, entry := range entries {
		if !placed[entry.CardKey] {
			ordered = append(ordered, entry.CardKey)
		}
	}

	if err := writeOrder(ctx, qry, profileID, binderID, ordered); err != nil {
		return err
	}
	return tx.Commit()
}

// AutoSort ranks the binder once by set name, numeric collector number, and
// card name using case-insensitive collation. It rewrites sort_order and
// nothing else, later adds still append at the end.
func (s Service) AutoSort(ctx context.Context, profileID, binderID string) error {
	ctx, span := tracer.Start(ctx, "AutoSort")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	qry := s.qry.WithTx(tx)

	entries, err := qry.GetBinderEntries(ctx, db.GetBinderEntriesParams{
		ProfileID: profileID,
		BinderID:  binderID,
	})
	if err != nil {
		return err
	}

	type ranked struct {
		key    string
		set    string
		number int
		name   string
	}
	cards := make([]ranked, 0, len(entries))
	for _, entry := range entries {
		var offer pricecharting.Offer
		if err := json.Unmarshal([]byte(entry.Payload), &offer); err != nil {
			slog.WarnContext(ctx, "sorting undecodable binder entry by key",
				"profile", profileID, "binder", binderID, "key", entry.CardKey, "err", err)
		}
		cards = append(cards, ranked{
			key:    entry.CardKey,
			set:    offer.SetName,
			number: textutil.CollectorNumberValue(offer.CollectorNumber),
			name:   offer.Name,
		})
	}

	coll := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(cards, func(i, j int) bool {
		if c := coll.CompareString(cards[i].set, cards[j].set); c != 0 {
			return c < 0
		}
		if cards[i].number != cards[j].number {
			return cards[i].number < cards[j].number
		}
		return coll.CompareString(cards[i].name, cards[j].name) < 0
	})

	ordered := make([]string, len(cards))
	for i, card := range cards {
		ordered[i] = card.key
	}
	if err := writeOrder(ctx, qry, profileID, binderID, ordered); err != nil {
		return err
	}
	return tx.Commit()
}

// ListBinder returns the binder's rows in sort order with their quantities.
func (s Service) ListBinder(ctx context.Context, profileID, binderID string) ([]BinderCard, error) {
	entries, err := s.qry.GetBinderEntries(ctx, db.GetBinderEntriesParams{
		ProfileID: profileID,
		BinderID:  binderID,
	})
	if err != nil {
		return nil, err
	}

	cards := make([]BinderCard, 0, len(entries))
	for _, entry := range entries {
		var offer pricecharting.Offer
		if err := json.Unmarshal([]byte(entry.Payload), &offer); err != nil {
			slog.WarnContext(ctx, "skipping undecodable binder entry",
				"profile", profileID, "binder", binderID, "key", entry.CardKey, "err", err)
			continue
		}
		cards = append(cards, BinderCard{Offer: offer, Count: entry.Count})
	}
	return cards, nil
}

// ListBinderIds returns every binder the profile has rows in.
func (s Service) ListBinderIds(ctx context.Context, profileID string) ([]string, error) {
	return s.qry.GetBinderIds(ctx, profileID)
}

// CreateProfile slugifies the chosen display name into a profile id,
// disambiguating collisions with a numeric suffix.
func (s Service) CreateProfile(ctx context.Context, name string) (db.Profile, error) {
	ctx, span := tracer.Start(ctx, "CreateProfile")
	defer span.End()

	slug := textutil.Slugify(name)
	if slug == "" {
		slug = "profile"
	}

	id := slug
	for n := 1; ; n++ {
		_, err := s.qry.GetProfile(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			break
		}
		if err != nil {
			return db.Profile{}, err
		}
		id = fmt.Sprintf("%s-%d", slug, n)
	}

	err := s.qry.CreateProfile(ctx, db.CreateProfileParams{ID: id, Name: name})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create profile")
		return db.Profile{}, err
	}
	return db.Profile{ID: id, Name: name}, nil
}

// ListProfiles returns every known profile. A fresh store reports the
// default profile so clients always have something to select.
func (s Service) ListProfiles(ctx context.Context) ([]db.Profile, error) {
	profiles, err := s.qry.GetProfiles(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return []db.Profile{{ID: DefaultProfile, Name: DefaultProfile}}, nil
	}
	return profiles, nil
}

// compactBinder renumbers sort_order into a dense 1-based sequence,
// preserving the current order.
func compactBinder(ctx context.Context, qry *db.Queries, profileID, binderID string) error {
	entries, err := qry.GetBinderEntries(ctx, db.GetBinderEntriesParams{
		ProfileID: profileID,
		BinderID:  binderID,
	})
	if err != nil {
		return err
	}
	ordered := make([]string, len(entries))
	for i, entry := range entries {
		ordered[i] = entry.CardKey
	}
	return writeOrder(ctx, qry, profileID, binderID, ordered)
}

func writeOrder(ctx context.Context, qry *db.Queries, profileID, binderID string, keys []string) error {
	for i, key := range keys {
		err := qry.SetBinderSortOrder(ctx, db.SetBinderSortOrderParams{
			SortOrder: int64(i + 1),
			ProfileID: profileID,
			BinderID:  binderID,
			CardKey:   key,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
