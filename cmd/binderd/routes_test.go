package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"cardbinder-backend/lib/scrapers/pricecharting"
	"cardbinder-backend/lib/testutil"
	"cardbinder-backend/services/catalog"
	catalogdb "cardbinder-backend/services/catalog/db"
	"cardbinder-backend/services/collection"
	collectiondb "cardbinder-backend/services/collection/db"
	"cardbinder-backend/services/importer"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type fakeRenderer struct {
	offers []pricecharting.Offer
}

func (f fakeRenderer) Fetch(ctx context.Context, listingUrl, cookie string) ([]pricecharting.Offer, error) {
	return f.offers, nil
}

func setupServer(t *testing.T) (*httptest.Server, func()) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "binderd",
		DbSchema: catalogdb.Schema + "\n" + collectiondb.Schema,
	})

	price := 9.99
	renderer := fakeRenderer{offers: []pricecharting.Offer{
		{
			SourceItemId:    "X123",
			Name:            "Charizard",
			SetName:         "Base Set",
			CollectorNumber: "#4",
			PriceValue:      &price,
			OrderIndex:      1,
		},
		{
			SourceItemId:    "Y456",
			Name:            "Blastoise",
			SetName:         "Base Set",
			CollectorNumber: "#2",
			OrderIndex:      2,
		},
	}}

	catalogService, err := catalog.NewService(setup.DB, catalog.Options{ImageDir: t.TempDir()})
	require.NoError(t, err)
	collectionService := collection.NewService(setup.DB, collection.Options{DataDir: t.TempDir()})

	server := Server{
		importer:   importer.NewService(renderer, catalogService, collectionService),
		catalog:    catalogService,
		collection: collectionService,
	}
	mux := http.NewServeMux()
	server.Register(mux)

	ts := httptest.NewServer(mux)
	return ts, func() {
		ts.Close()
		cleanup()
	}
}

func postJson(t *testing.T, url string, body any, out any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer res.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res
}

func getJson(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res
}

func TestRoutes(t *testing.T) {
	ts, cleanup := setupServer(t)
	defer cleanup()

	{
		var out map[string]bool
		res := getJson(t, ts.URL+"/api/health", &out)
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.True(t, out["ok"])
	}

	var keys []string
	{
		var out map[string]int
		res := postJson(t, ts.URL+"/api/import", map[string]string{
			"url": "https://www.pricecharting.com/offers?seller=abc",
		}, &out)
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Equal(t, 2, out["imported"])

		var inbox struct {
			Items []pricecharting.Offer `json:"items"`
		}
		res = getJson(t, ts.URL+"/api/inbox", &inbox)
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Len(t, inbox.Items, 2)
		for _, offer := range inbox.Items {
			require.NotZero(t, offer.MasterId)
			keys = append(keys, offer.Key())
		}
	}
	{
		var out map[string]int
		res := postJson(t, ts.URL+"/api/binder/add", map[string]any{
			"keys": keys,
		}, &out)
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Equal(t, 2, out["created"])

		var binder struct {
			Items []struct {
				pricecharting.Offer
				Count int64 `json:"count"`
			} `json:"items"`
		}
		res = getJson(t, ts.URL+"/api/binder", &binder)
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Len(t, binder.Items, 2)
		require.Equal(t, int64(1), binder.Items[0].Count)
	}
	{
		// setting a zero count removes the card
		res := postJson(t, ts.URL+"/api/binder/count", map[string]any{
			"key":   keys[0],
			"count": 0,
		}, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		var binder struct {
			Items []struct {
				pricecharting.Offer
				Count int64 `json:"count"`
			} `json:"items"`
		}
		getJson(t, ts.URL+"/api/binder", &binder)
		require.Len(t, binder.Items, 1)
		require.Equal(t, keys[1], binder.Items[0].Key())
	}
	{
		var out map[string][]string
		res := getJson(t, ts.URL+"/api/binders", &out)
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Equal(t, []string{"main"}, out["items"])
	}
	{
		res := postJson(t, ts.URL+"/api/import", map[string]string{}, nil)
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
	}
}

func TestRoutesProfiles(t *testing.T) {
	ts, cleanup := setupServer(t)
	defer cleanup()

	{
		// fresh stores still report the default profile
		var out struct {
			Items []profileJson `json:"items"`
		}
		res := getJson(t, ts.URL+"/api/profiles", &out)
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Equal(t, []profileJson{{Id: "default", Name: "default"}}, out.Items)
	}
	{
		var out profileJson
		res := postJson(t, ts.URL+"/api/profiles", map[string]string{
			"name": "Trade Binder",
		}, &out)
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Equal(t, profileJson{Id: "trade-binder", Name: "Trade Binder"}, out)
	}
}

func TestRoutesImage(t *testing.T) {
	ts, cleanup := setupServer(t)
	defer cleanup()

	{
		res := getJson(t, ts.URL+"/api/img", nil)
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
	}
	{
		res := getJson(t, fmt.Sprintf("%s/api/img?master_id=%d", ts.URL, 999), nil)
		require.Equal(t, http.StatusNotFound, res.StatusCode)
	}
}
