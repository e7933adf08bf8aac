package catalog

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
	"cardbinder-backend/lib/telemetry"
	"cardbinder-backend/services/catalog/db"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	imageUserAgent = "Mozilla/5.0"
	imageReferrer  = "https://www.pricecharting.com/"
	imageAccept    = "image/avif,image/webp,*/*"

	imageFetchTimeout = 30 * time.Second
)

// ErrNoImageUrl means the offer never carried an image to begin with.
var ErrNoImageUrl = errors.New("offer carries no image url")

// imageStore is the content-addressed local image cache. Files are keyed by
// the md5 of their source url and sharded into two-hex-char subdirectories.
type imageStore struct {
	root    string
	primary *resty.Client
	bare    *resty.Client
}

func newImageStore(root string) (*imageStore, error) {
	if root == "" {
		root = filepath.Join("data", "imgcache")
	}
	err := os.MkdirAll(root, 0755)
	if err != nil {
		return nil, err
	}

	primary := resty.New()
	primary.SetTimeout(imageFetchTimeout)
	primary.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(primary.GetClient().Transport)
	primary.SetHeader("user-agent", imageUserAgent)
	primary.SetHeader("referer", imageReferrer)
	primary.SetHeader("accept", imageAccept)
	telemetry.InstrumentResty(primary, "services/catalog/images")

	// fallback client, some hosts reject the spoofed header set
	bare := resty.New()
	bare.SetTimeout(imageFetchTimeout)

	return &imageStore{
		root:    root,
		primary: primary,
		bare:    bare,
	}, nil
}

func (st *imageStore) localPath(url string) string {
	sum := md5.Sum([]byte(url))
	key := hex.EncodeToString(sum[:])
	return filepath.Join(st.root, key[:2], key+".jpg")
}

// fetch tries the spoofed-header client first and retries the same url bare.
func (st *imageStore) fetch(ctx context.Context, url string) ([]byte, error) {
	var errs []error
	for _, client := range []*resty.Client{st.primary, st.bare} {
		res, err := client.R().SetContext(ctx).Get(url)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !res.IsSuccess() {
			errs = append(errs, fmt.Errorf("img fetch %s: status %d", url, res.StatusCode()))
			continue
		}
		return res.Body(), nil
	}
	return nil, errors.Join(errs...)
}

// ensure makes the url's content present in the cache, fetching only when
// the content-addressed file does not exist yet.
func (st *imageStore) ensure(ctx context.Context, url string) (string, error) {
	fp := st.localPath(url)
	_, err := os.Stat(fp)
	if err == nil {
		return fp, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	body, err := st.fetch(ctx, url)
	if err != nil {
		return "", err
	}

	err = os.MkdirAll(filepath.Dir(fp), 0755)
	if err != nil {
		return "", err
	}
	err = os.WriteFile(fp, body, 0644)
	if err != nil {
		return "", err
	}
	return fp, nil
}

// EnsureImage walks the ranked candidate variants of baseUrl and caches the
// first one that fetches, recording which quality tag was stored. Exhausting
// every candidate is an error the caller is expected to tolerate, a master
// card without a cached image is a valid state and a later import retries.
func (s Service) EnsureImage(ctx context.Context, masterID int64, baseUrl string) (db.CardImage, error) {
	ctx, span := tracer.Start(ctx, "EnsureImage")
	defer span.End()
	span.SetAttributes(attribute.Int64("master_id", masterID))

	if baseUrl == "" {
		return db.CardImage{}, ErrNoImageUrl
	}

	candidates := imageCandidates(baseUrl)
	var errs []error
	for _, cand := range candidates {
		fp, err := s.images.ensure(ctx, cand.url)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		rec := db.CardImage{
			MasterID:   masterID,
			QualityTag: cand.tag,
			SourceUrl:  cand.url,
			LocalPath:  fp,
		}
		err = s.qry.CreateCardImage(ctx, db.CreateCardImageParams{
			MasterID:   rec.MasterID,
			QualityTag: rec.QualityTag,
			SourceUrl:  rec.SourceUrl,
			LocalPath:  rec.LocalPath,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to record cached image")
			return db.CardImage{}, err
		}

		slog.DebugContext(ctx, "cached card image",
			"master_id", masterID,
			"quality", rec.QualityTag,
			"url", rec.SourceUrl,
		)
		return rec, nil
	}

	err := fmt.Errorf("all %d image candidates failed: %w", len(candidates), errors.Join(errs...))
	span.RecordError(err)
	span.SetStatus(codes.Error, "image acquisition exhausted")
	return db.CardImage{}, err
}
