// Package service holds the venue catalog: it loads stored venue documents,
// normalizes them once and keeps the read-only result in memory.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/iliyamo/venue-seatmap/internal/logger"
	"github.com/iliyamo/venue-seatmap/internal/model"
	q "github.com/iliyamo/venue-seatmap/internal/queue"
	"github.com/iliyamo/venue-seatmap/internal/repository"
	"github.com/iliyamo/venue-seatmap/internal/seatmap"
)

// ErrVenueIDMismatch is returned by Save when the document names another venue.
var ErrVenueIDMismatch = errors.New("venue id does not match document")

// DefaultCatalogSize bounds the number of normalized venues held in memory.
const DefaultCatalogSize = 64

// DocumentStore persists raw venue documents.  Both the MySQL and the file
// repositories satisfy it.
type DocumentStore interface {
	Upsert(ctx context.Context, id, name string, seatCount int, doc []byte) error
	GetDocument(ctx context.Context, id string) ([]byte, error)
	List(ctx context.Context) ([]repository.VenueSummary, error)
	Delete(ctx context.Context, id string) error
}

// VenueCatalog serves normalized venues.  A venue is rebuilt from its
// document after every change; cached values are never patched.
type VenueCatalog struct {
	store     DocumentStore
	prices    seatmap.PriceTable
	cache     *lru.Cache[string, *seatmap.NormalizedVenue]
	publisher Publisher
	now       func() time.Time
}

// NewVenueCatalog panics on a nil store.  publisher may be nil, in which
// case changes are not announced.
func NewVenueCatalog(store DocumentStore, prices seatmap.PriceTable, size int, publisher Publisher) (*VenueCatalog, error) {
	if store == nil {
		panic("nil DocumentStore")
	}
	if size <= 0 {
		size = DefaultCatalogSize
	}
	cache, err := lru.New[string, *seatmap.NormalizedVenue](size)
	if err != nil {
		return nil, fmt.Errorf("create venue cache: %w", err)
	}
	return &VenueCatalog{
		store:     store,
		prices:    prices,
		cache:     cache,
		publisher: publisher,
		now:       time.Now,
	}, nil
}

// Parse decodes and normalizes a document with the catalog's price table.
// Decode and validation failures satisfy IsInvalidVenue.
func (c *VenueCatalog) Parse(doc []byte) (*seatmap.NormalizedVenue, error) {
	v, err := model.DecodeVenue(doc)
	if err != nil {
		return nil, err
	}
	return seatmap.Normalize(v, seatmap.Options{PriceByTier: c.prices, PrecomputeNeighbors: true})
}

// IsInvalidVenue reports whether err describes a document that cannot be
// normalized, as opposed to a storage failure.
func IsInvalidVenue(err error) bool {
	return errors.Is(err, model.ErrMalformedDocument) ||
		seatmap.IsValidationError(err) ||
		errors.Is(err, ErrVenueIDMismatch)
}

// Get returns the normalized venue, loading it on a cache miss.
func (c *VenueCatalog) Get(ctx context.Context, id string) (*seatmap.NormalizedVenue, error) {
	if nv, ok := c.cache.Get(id); ok {
		return nv, nil
	}
	doc, err := c.store.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	nv, err := c.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("venue %s: %w", id, err)
	}
	c.cache.Add(id, nv)
	logger.FromContext(ctx).Debug("venue loaded", "venue_id", id, "seats", nv.SeatCount())
	return nv, nil
}

// List returns the stored venues.
func (c *VenueCatalog) List(ctx context.Context) ([]repository.VenueSummary, error) {
	return c.store.List(ctx)
}

// Prices returns a copy of the configured tier prices.
func (c *VenueCatalog) Prices() seatmap.PriceTable {
	out := make(seatmap.PriceTable, len(c.prices))
	for k, v := range c.prices {
		out[k] = v
	}
	return out
}

// Save validates doc, stores it under id and announces the change.  Nothing
// is written when the document fails to normalize.
func (c *VenueCatalog) Save(ctx context.Context, id string, doc []byte) (*seatmap.NormalizedVenue, error) {
	nv, err := c.Parse(doc)
	if err != nil {
		return nil, err
	}
	if nv.VenueID != id {
		return nil, fmt.Errorf("%w: %q != %q", ErrVenueIDMismatch, nv.VenueID, id)
	}
	if err := c.store.Upsert(ctx, id, nv.Name, nv.SeatCount(), doc); err != nil {
		return nil, fmt.Errorf("store venue %s: %w", id, err)
	}
	c.cache.Add(id, nv)
	c.announce(ctx, q.VenueUpdatedEvent{VenueID: id, Name: nv.Name, SeatCount: nv.SeatCount()})
	return nv, nil
}

// Delete removes the stored venue and announces it.
func (c *VenueCatalog) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, id); err != nil {
		return err
	}
	c.cache.Remove(id)
	c.announce(ctx, q.VenueUpdatedEvent{VenueID: id, Deleted: true})
	return nil
}

// Invalidate drops the cached venue so the next Get rebuilds it.
func (c *VenueCatalog) Invalidate(_ context.Context, id string) {
	c.cache.Remove(id)
}

// Cached reports whether id is currently held in memory.
func (c *VenueCatalog) Cached(id string) bool {
	return c.cache.Contains(id)
}

func (c *VenueCatalog) announce(ctx context.Context, ev q.VenueUpdatedEvent) {
	if c.publisher == nil {
		return
	}
	ev.UpdatedAt = c.now().UTC().Format(time.RFC3339)
	if err := c.publisher.PublishVenueUpdated(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn("venue change not announced", "venue_id", ev.VenueID, "error", err)
	}
}
