package importer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"cardbinder-backend/lib/scrapers/pricecharting"
	"cardbinder-backend/services/catalog"
	"cardbinder-backend/services/collection"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/importer")

// Renderer produces parsed offers for a listing url. The production
// implementation drives a headless browser, tests substitute a fake.
type Renderer interface {
	Fetch(ctx context.Context, listingUrl, cookie string) ([]pricecharting.Offer, error)
}

type Service struct {
	renderer   Renderer
	catalog    catalog.Service
	collection collection.Service
}

func NewService(renderer Renderer, cat catalog.Service, coll collection.Service) Service {
	return Service{
		renderer:   renderer,
		catalog:    cat,
		collection: coll,
	}
}

// Import runs one full pipeline pass: render and parse the listing, collapse
// duplicate observations, reconcile each offer against the catalog, fan out
// image acquisition, and replace the profile's inbox with the annotated
// batch. It returns the number of offers imported.
//
// Acquisition failure aborts the import before anything is written. After
// that point only the failing offer or image degrades: a reconciliation
// error leaves that offer without a master id, an image failure leaves the
// card without a cached image, and the import still succeeds.
func (s Service) Import(ctx context.Context, listingUrl, cookie, profileID string) (int, error) {
	ctx, span := tracer.Start(ctx, "Import")
	defer span.End()
	span.SetAttributes(
		attribute.String("url", listingUrl),
		attribute.String("profile", profileID),
	)

	offers, err := s.renderer.Fetch(ctx, listingUrl, cookie)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to acquire listing")
		return 0, fmt.Errorf("failed to acquire listing: %w", err)
	}
	offers = pricecharting.Dedup(offers)
	span.SetAttributes(attribute.Int("offers", len(offers)))

	var wg sync.WaitGroup
	for i := range offers {
		offer := &offers[i]
		masterID, err := s.catalog.Reconcile(ctx, catalog.Source, offer.SourceItemId, catalog.Card{
			Name:            offer.Name,
			SetName:         offer.SetName,
			CollectorNumber: offer.CollectorNumber,
		})
		if err != nil {
			slog.WarnContext(ctx, "offer failed reconciliation",
				"key", offer.Key(), "err", err)
			continue
		}
		offer.MasterId = masterID

		if offer.ImageUrl == "" {
			continue
		}
		wg.Add(1)
		go func(masterID int64, imageUrl string) {
			defer wg.Done()
			if _, err := s.catalog.EnsureImage(ctx, masterID, imageUrl); err != nil {
				slog.WarnContext(ctx, "image acquisition failed",
					"master_id", masterID, "url", imageUrl, "err", err)
			}
		}(masterID, offer.ImageUrl)
	}
	wg.Wait()

	if err := s.collection.ReplaceInbox(ctx, profileID, offers); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to replace inbox")
		return 0, err
	}

	slog.InfoContext(ctx, "import finished",
		"profile", profileID, "imported", len(offers))
	return len(offers), nil
}
