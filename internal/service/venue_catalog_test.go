package service

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	q "github.com/iliyamo/venue-seatmap/internal/queue"
	"github.com/iliyamo/venue-seatmap/internal/repository"
	"github.com/iliyamo/venue-seatmap/internal/seatmap"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []q.VenueUpdatedEvent
	err    error
}

func (p *recordingPublisher) PublishVenueUpdated(_ context.Context, ev q.VenueUpdatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

// countingStore wraps a file repo and counts document reads.
type countingStore struct {
	*repository.VenueFileRepo
	reads int
}

func (s *countingStore) GetDocument(ctx context.Context, id string) ([]byte, error) {
	s.reads++
	return s.VenueFileRepo.GetDocument(ctx, id)
}

func arenaDoc(t *testing.T) []byte {
	t.Helper()
	doc, err := os.ReadFile("testdata/arena.json")
	require.NoError(t, err)
	return doc
}

func prices() seatmap.PriceTable {
	return seatmap.PriceTable{1: decimal.NewFromInt(150), 2: decimal.NewFromInt(100)}
}

func newCatalog(t *testing.T, pub Publisher) (*VenueCatalog, *countingStore) {
	t.Helper()
	store := &countingStore{VenueFileRepo: repository.NewVenueFileRepo(t.TempDir())}
	c, err := NewVenueCatalog(store, prices(), 4, pub)
	require.NoError(t, err)
	c.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return c, store
}

func TestVenueCatalog_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	c, store := newCatalog(t, pub)

	nv, err := c.Save(ctx, "arena-01", arenaDoc(t))
	require.NoError(t, err)
	assert.Equal(t, 6, nv.SeatCount())
	assert.True(t, nv.HasNeighbors())

	p, ok := nv.Price(2)
	require.True(t, ok)
	assert.True(t, p.Equal(decimal.NewFromInt(100)))
	_, ok = nv.Price(3)
	assert.False(t, ok)

	require.Len(t, pub.events, 1)
	assert.Equal(t, q.VenueUpdatedEvent{
		VenueID: "arena-01", Name: "Metropolis Arena", SeatCount: 6, UpdatedAt: "2026-03-01T12:00:00Z",
	}, pub.events[0])

	got, err := c.Get(ctx, "arena-01")
	require.NoError(t, err)
	assert.Same(t, nv, got)
	assert.Equal(t, 0, store.reads)
}

func TestVenueCatalog_GetLoadsOnce(t *testing.T) {
	ctx := context.Background()
	c, store := newCatalog(t, nil)
	require.NoError(t, store.Upsert(ctx, "arena-01", "Metropolis Arena", 6, arenaDoc(t)))

	first, err := c.Get(ctx, "arena-01")
	require.NoError(t, err)
	second, err := c.Get(ctx, "arena-01")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, store.reads)

	t.Run("Should rebuild after invalidation", func(t *testing.T) {
		c.Invalidate(ctx, "arena-01")
		assert.False(t, c.Cached("arena-01"))
		third, err := c.Get(ctx, "arena-01")
		require.NoError(t, err)
		assert.NotSame(t, first, third)
		assert.Equal(t, 2, store.reads)
	})
}

func TestVenueCatalog_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("Should report unknown venues", func(t *testing.T) {
		c, _ := newCatalog(t, nil)
		_, err := c.Get(ctx, "nope")
		assert.ErrorIs(t, err, repository.ErrVenueNotFound)
		assert.False(t, IsInvalidVenue(err))
	})

	t.Run("Should not store an invalid document", func(t *testing.T) {
		pub := &recordingPublisher{}
		c, store := newCatalog(t, pub)
		doc := []byte(`{"venueId":"x","name":"X","map":{"width":1,"height":1},"sections":[
			{"id":"A","label":"A","rows":[{"index":1,"seats":[
				{"id":"A-1","col":1,"x":0,"y":0,"priceTier":1,"status":"broken"}]}]}]}`)

		_, err := c.Save(ctx, "x", doc)
		require.Error(t, err)
		assert.True(t, IsInvalidVenue(err))
		assert.Contains(t, err.Error(), "invalid seat status: broken for seat A-1")

		_, err = store.GetDocument(ctx, "x")
		assert.ErrorIs(t, err, repository.ErrVenueNotFound)
		assert.Empty(t, pub.events)
	})

	t.Run("Should reject malformed JSON", func(t *testing.T) {
		c, _ := newCatalog(t, nil)
		_, err := c.Save(ctx, "x", []byte(`{"venueId":`))
		assert.True(t, IsInvalidVenue(err))
	})

	t.Run("Should reject a document stored under another id", func(t *testing.T) {
		c, _ := newCatalog(t, nil)
		_, err := c.Save(ctx, "other", arenaDoc(t))
		assert.ErrorIs(t, err, ErrVenueIDMismatch)
		assert.True(t, IsInvalidVenue(err))
	})

	t.Run("Should keep the venue when the announcement fails", func(t *testing.T) {
		pub := &recordingPublisher{err: errors.New("broker down")}
		c, _ := newCatalog(t, pub)
		_, err := c.Save(ctx, "arena-01", arenaDoc(t))
		require.NoError(t, err)
		assert.True(t, c.Cached("arena-01"))
	})
}

func TestVenueCatalog_Delete(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	c, _ := newCatalog(t, pub)
	_, err := c.Save(ctx, "arena-01", arenaDoc(t))
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, "arena-01"))
	assert.False(t, c.Cached("arena-01"))
	require.Len(t, pub.events, 2)
	assert.True(t, pub.events[1].Deleted)

	_, err = c.Get(ctx, "arena-01")
	assert.ErrorIs(t, err, repository.ErrVenueNotFound)
	assert.ErrorIs(t, c.Delete(ctx, "arena-01"), repository.ErrVenueNotFound)
}

func TestVenueCatalog_ListAndPrices(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog(t, nil)
	_, err := c.Save(ctx, "arena-01", arenaDoc(t))
	require.NoError(t, err)

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 6, list[0].SeatCount)

	p := c.Prices()
	p[1] = decimal.Zero
	again, _ := c.Get(ctx, "arena-01")
	price, _ := again.Price(1)
	assert.True(t, price.Equal(decimal.NewFromInt(150)))
	assert.True(t, c.Prices()[1].Equal(decimal.NewFromInt(150)))
}
