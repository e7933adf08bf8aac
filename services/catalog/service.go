package catalog

import (
	"context"
	"database/sql"
	"time"
	"cardbinder-backend/lib/textutil"
	"cardbinder-backend/services/catalog/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/catalog")

// Source is the identifier recorded on source mappings for offers scraped
// from the pricing site.
const Source = "pricecharting"

// Card carries the label fields a master identity is derived from.
type Card struct {
	Name            string
	SetName         string
	CollectorNumber string
}

type Options struct {
	// directory cached card images are written under,
	// "data/imgcache" when empty
	ImageDir string
}

type Service struct {
	db     *sql.DB
	qry    *db.Queries
	images *imageStore
}

func NewService(database *sql.DB, opts Options) (Service, error) {
	images, err := newImageStore(opts.ImageDir)
	if err != nil {
		return Service{}, err
	}
	return Service{
		db:     database,
		qry:    db.New(database),
		images: images,
	}, nil
}

// Reconcile maps an observed card onto its durable master identity, creating
// the master record on first sighting and refreshing its label fields on
// every later one. When sourceKey is non-empty the (source, sourceKey) pair
// is recorded once, a key that already maps somewhere keeps its mapping
// forever.
func (s Service) Reconcile(ctx context.Context, source, sourceKey string, card Card) (int64, error) {
	ctx, span := tracer.Start(ctx, "Reconcile")
	defer span.End()

	slug := textutil.MasterSlug(card.SetName, card.CollectorNumber, card.Name)
	span.SetAttributes(attribute.String("slug", slug))

	id, err := s.qry.UpsertMasterCard(ctx, db.UpsertMasterCardParams{
		Slug:            slug,
		Name:            card.Name,
		SetName:         card.SetName,
		CollectorNumber: card.CollectorNumber,
		CreatedAt:       time.Now().Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to upsert master card")
		return 0, err
	}

	if sourceKey != "" {
		err = s.qry.CreateSourceMapping(ctx, db.CreateSourceMappingParams{
			Source:    source,
			SourceKey: sourceKey,
			MasterID:  id,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to record source mapping")
			return 0, err
		}
	}

	return id, nil
}

func (s Service) GetMasterCard(ctx context.Context, id int64) (db.MasterCard, error) {
	return s.qry.GetMasterCard(ctx, id)
}

// GetBestImage returns the highest-ranked cached image for a master card,
// false when nothing is cached yet.
func (s Service) GetBestImage(ctx context.Context, masterID int64) (db.CardImage, bool, error) {
	images, err := s.qry.GetCardImages(ctx, masterID)
	if err != nil {
		return db.CardImage{}, false, err
	}
	if len(images) == 0 {
		return db.CardImage{}, false, nil
	}

	best := images[0]
	for _, img := range images[1:] {
		if betterTag(img.QualityTag, best.QualityTag) {
			best = img
		}
	}
	return best, true, nil
}
