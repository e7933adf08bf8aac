package collection

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"
	"cardbinder-backend/lib/scrapers/pricecharting"
	"cardbinder-backend/lib/testutil"
	"cardbinder-backend/services/collection/db"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupCollection(t *testing.T) (Service, func()) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/collection",
		DbSchema: db.Schema,
	})
	return NewService(setup.DB, Options{DataDir: t.TempDir()}), cleanup
}

func price(v float64) *float64 { return &v }

func testOffers() []pricecharting.Offer {
	return []pricecharting.Offer{
		{
			SourceItemId:    "X1",
			SourceUrl:       "https://www.pricecharting.com/offer/X1",
			Name:            "Charizard",
			SetName:         "Base Set",
			CollectorNumber: "#4",
			PriceValue:      price(9.99),
			OrderIndex:      1,
		},
		{
			SourceItemId:    "X2",
			SourceUrl:       "https://www.pricecharting.com/offer/X2",
			Name:            "Blastoise",
			SetName:         "Base Set",
			CollectorNumber: "#2",
			PriceValue:      price(4.5),
			OrderIndex:      2,
		},
		{
			SourceItemId:    "X3",
			SourceUrl:       "https://www.pricecharting.com/offer/X3",
			Name:            "Pikachu",
			SetName:         "Jungle",
			CollectorNumber: "#60",
			PriceValue:      price(1.25),
			OrderIndex:      3,
		},
	}
}

func keysOf(offers []pricecharting.Offer) []string {
	keys := make([]string, len(offers))
	for i, o := range offers {
		keys[i] = o.Key()
	}
	return keys
}

func binderKeys(t *testing.T, service Service, ctx context.Context, profile, binder string) []string {
	t.Helper()
	cards, err := service.ListBinder(ctx, profile, binder)
	require.NoError(t, err)
	keys := make([]string, len(cards))
	for i, c := range cards {
		keys[i] = c.Key()
	}
	return keys
}

func TestReplaceInbox(t *testing.T) {
	service, cleanup := setupCollection(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	offers := testOffers()
	require.NoError(t, service.ReplaceInbox(ctx, DefaultProfile, offers))

	{
		got, err := service.ListInbox(ctx, DefaultProfile)
		require.NoError(t, err)
		require.Equal(t, offers, got)
	}
	{
		// a later import replaces the staging set wholesale
		require.NoError(t, service.ReplaceInbox(ctx, DefaultProfile, offers[:1]))
		got, err := service.ListInbox(ctx, DefaultProfile)
		require.NoError(t, err)
		require.Equal(t, offers[:1], got)
	}
	{
		// offers without a key never reach the store
		require.NoError(t, service.ReplaceInbox(ctx, DefaultProfile,
			[]pricecharting.Offer{{Name: "keyless"}}))
		got, err := service.ListInbox(ctx, DefaultProfile)
		require.NoError(t, err)
		require.Empty(t, got)
	}
}

func TestAddToBinder(t *testing.T) {
	service, cleanup := setupCollection(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	offers := testOffers()
	require.NoError(t, service.ReplaceInbox(ctx, DefaultProfile, offers))

	res, err := service.AddToBinder(ctx, DefaultProfile, DefaultBinder, keysOf(offers[:2]))
	require.NoError(t, err)
	require.Equal(t, AddResult{Created: 2, Existing: 0}, res)

	{
		// adding a present key bumps count instead of duplicating the row
		res, err := service.AddToBinder(ctx, DefaultProfile, DefaultBinder,
			[]string{offers[0].Key()})
		require.NoError(t, err)
		require.Equal(t, AddResult{Created: 0, Existing: 1}, res)

		cards, err := service.ListBinder(ctx, DefaultProfile, DefaultBinder)
		require.NoError(t, err)
		require.Len(t, cards, 2)
		require.Equal(t, int64(2), cards[0].Count)
		require.Equal(t, int64(1), cards[1].Count)
	}
	{
		// keys missing from the inbox are skipped, not errors
		res, err := service.AddToBinder(ctx, DefaultProfile, DefaultBinder,
			[]string{"nope|1"})
		require.NoError(t, err)
		require.Equal(t, AddResult{}, res)
	}
	{
		// later adds append after the existing rows
		res, err := service.AddToBinder(ctx, DefaultProfile, DefaultBinder,
			[]string{offers[2].Key()})
		require.NoError(t, err)
		require.Equal(t, AddResult{Created: 1, Existing: 0}, res)
		require.Equal(t,
			[]string{offers[0].Key(), offers[1].Key(), offers[2].Key()},
			binderKeys(t, service, ctx, DefaultProfile, DefaultBinder))
	}
}

func TestRemoveFromBinderCompacts(t *testing.T) {
	service, cleanup := setupCollection(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	offers := testOffers()
	require.NoError(t, service.ReplaceInbox(ctx, DefaultProfile, offers))
	_, err := service.AddToBinder(ctx, DefaultProfile, DefaultBinder, keysOf(offers))
	require.NoError(t, err)

	require.NoError(t, service.RemoveFromBinder(ctx, DefaultProfile, DefaultBinder,
		[]string{offers[1].Key()}))

	require.Equal(t,
		[]string{offers[0].Key(), offers[2].Key()},
		binderKeys(t, service, ctx, DefaultProfile, DefaultBinder))

	// sort_order stays dense after removal
	qry := db.New(service.db)
	entries, err := qry.GetBinderEntries(ctx, db.GetBinderEntriesParams{
		ProfileID: DefaultProfile,
		BinderID:  DefaultBinder,
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, int64(1), entries[0].SortOrder)
	require.Equal(t, int64(2), entries[1].SortOrder)
}

func TestSetCount(t *testing.T) {
	service, cleanup := setupCollection(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	offers := testOffers()
	require.NoError(t, service.ReplaceInbox(ctx, DefaultProfile, offers))
	_, err := service.AddToBinder(ctx, DefaultProfile, DefaultBinder, keysOf(offers[:2]))
	require.NoError(t, err)

	{
		require.NoError(t, service.SetCount(ctx, DefaultProfile, DefaultBinder,
			offers[0].Key(), 4))
		cards, err := service.ListBinder(ctx, DefaultProfile, DefaultBinder)
		require.NoError(t, err)
		require.Equal(t, int64(4), cards[0].Count)
	}
	{
		// zero deletes the row entirely
		require.NoError(t, service.SetCount(ctx, DefaultProfile, DefaultBinder,
			offers[0].Key(), 0))
		require.Equal(t,
			[]string{offers[1].Key()},
			binderKeys(t, service, ctx, DefaultProfile, DefaultBinder))
	}
}

func TestReorderPartial(t *testing.T) {
	service, cleanup := setupCollection(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	offers := testOffers()
	require.NoError(t, service.ReplaceInbox(ctx, DefaultProfile, offers))
	_, err := service.AddToBinder(ctx, DefaultProfile, DefaultBinder, keysOf(offers))
	require.NoError(t, err)

	k1, k2, k3 := offers[0].Key(), offers[1].Key(), offers[2].Key()

	// a partial proposal leads, unmentioned keys keep their relative order
	require.NoError(t, service.Reorder(ctx, DefaultProfile, DefaultBinder,
		[]string{k2, k1}))
	require.Equal(t, []string{k2, k1, k3},
		binderKeys(t, service, ctx, DefaultProfile, DefaultBinder))

	// unknown keys in the proposal are ignored
	require.NoError(t, service.Reorder(ctx, DefaultProfile, DefaultBinder,
		[]string{"nope|1", k3}))
	require.Equal(t, []string{k3, k2, k1},
		binderKeys(t, service, ctx, DefaultProfile, DefaultBinder))
}

func TestAutoSort(t *testing.T) {
	service, cleanup := setupCollection(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	offers := []pricecharting.Offer{
		{SourceItemId: "A", Name: "Pikachu", SetName: "jungle", CollectorNumber: "#60", PriceValue: price(1)},
		{SourceItemId: "B", Name: "Charizard", SetName: "Base Set", CollectorNumber: "#4", PriceValue: price(2)},
		{SourceItemId: "C", Name: "Blastoise", SetName: "BASE SET", CollectorNumber: "#2", PriceValue: price(3)},
		{SourceItemId: "D", Name: "Venusaur", SetName: "Base Set", CollectorNumber: "#15", PriceValue: price(4)},
	}
	require.NoError(t, service.ReplaceInbox(ctx, DefaultProfile, offers))
	_, err := service.AddToBinder(ctx, DefaultProfile, DefaultBinder, keysOf(offers))
	require.NoError(t, err)

	require.NoError(t, service.AutoSort(ctx, DefaultProfile, DefaultBinder))

	// set name compares case-insensitively, collector numbers numerically
	require.Equal(t,
		[]string{offers[2].Key(), offers[1].Key(), offers[3].Key(), offers[0].Key()},
		binderKeys(t, service, ctx, DefaultProfile, DefaultBinder))
}

func TestLegacyInboxMigration(t *testing.T) {
	service, cleanup := setupCollection(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	offers := testOffers()
	// duplicate observation that the migration must collapse
	legacy := append([]pricecharting.Offer{}, offers...)
	legacy = append(legacy, offers[0])

	raw, err := json.Marshal(legacy)
	require.NoError(t, err)
	path := service.legacyInboxPath(DefaultProfile)
	require.NoError(t, os.WriteFile(path, raw, 0644))

	got, err := service.ListInbox(ctx, DefaultProfile)
	require.NoError(t, err)
	require.Equal(t, offers, got)

	{
		// the flat file is consumed exactly once
		_, err := os.Stat(path)
		require.ErrorIs(t, err, os.ErrNotExist)
	}
	{
		// a second listing reads the relational rows
		got, err := service.ListInbox(ctx, DefaultProfile)
		require.NoError(t, err)
		require.Equal(t, offers, got)
	}
	{
		// profiles that never had a flat file list empty without error
		got, err := service.ListInbox(ctx, "fresh")
		require.NoError(t, err)
		require.Empty(t, got)
	}
}

func TestCreateProfile(t *testing.T) {
	service, cleanup := setupCollection(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		// a fresh store still reports a selectable default
		profiles, err := service.ListProfiles(ctx)
		require.NoError(t, err)
		require.Equal(t, []db.Profile{{ID: DefaultProfile, Name: DefaultProfile}}, profiles)
	}

	p1, err := service.CreateProfile(ctx, "Trade Binder")
	require.NoError(t, err)
	require.Equal(t, "trade-binder", p1.ID)
	require.Equal(t, "Trade Binder", p1.Name)

	{
		// colliding names get numeric suffixes
		p2, err := service.CreateProfile(ctx, "trade binder")
		require.NoError(t, err)
		require.Equal(t, "trade-binder-1", p2.ID)

		p3, err := service.CreateProfile(ctx, "Trade  Binder")
		require.NoError(t, err)
		require.Equal(t, "trade-binder-2", p3.ID)
	}
	{
		// a name that slugifies to nothing falls back to "profile"
		p, err := service.CreateProfile(ctx, "!!!")
		require.NoError(t, err)
		require.Equal(t, "profile", p.ID)
	}

	profiles, err := service.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 4)
}

func TestBindersAreIndependent(t *testing.T) {
	service, cleanup := setupCollection(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	offers := testOffers()
	require.NoError(t, service.ReplaceInbox(ctx, DefaultProfile, offers))

	_, err := service.AddToBinder(ctx, DefaultProfile, "trades", keysOf(offers[:1]))
	require.NoError(t, err)
	_, err = service.AddToBinder(ctx, DefaultProfile, "keepers", keysOf(offers[1:]))
	require.NoError(t, err)

	require.Equal(t, []string{offers[0].Key()},
		binderKeys(t, service, ctx, DefaultProfile, "trades"))
	require.Equal(t, []string{offers[1].Key(), offers[2].Key()},
		binderKeys(t, service, ctx, DefaultProfile, "keepers"))

	ids, err := service.ListBinderIds(ctx, DefaultProfile)
	require.NoError(t, err)
	require.Equal(t, []string{"keepers", "trades"}, ids)
}
