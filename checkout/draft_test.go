package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sixthsoul_bff/model"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestRedisDraftStore_RoundTrip(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	store := NewRedisDraftStore(rdb)
	ctx := context.Background()

	d := &Draft{ID: "d1", OwnerID: 7, Generation: 1, ShippingMethod: model.ShippingStandard}
	require.NoError(t, store.Create(ctx, d))
	assert.True(t, mr.Exists("checkout:draft:d1"))
	assert.Equal(t, 30*time.Minute, mr.TTL("checkout:draft:d1"))

	got, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.OwnerID)

	updated, err := store.Update(ctx, "d1", func(d *Draft) error {
		d.ShippingMethod = model.ShippingFast
		d.Generation++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Generation)

	require.NoError(t, store.Delete(ctx, "d1"))
	_, err = store.Get(ctx, "d1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestRedisDraftStore_UpdateErrorAbortsWrite(t *testing.T) {
	_, rdb := setupTestRedis(t)
	store := NewRedisDraftStore(rdb)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &Draft{ID: "d2", Generation: 3}))
	boom := errors.New("boom")
	_, err := store.Update(ctx, "d2", func(d *Draft) error {
		d.Generation = 99
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Get(ctx, "d2")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Generation)

	_, err = store.Update(ctx, "missing", func(*Draft) error { return nil })
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestRedisDraftStore_ConcurrentUpdates(t *testing.T) {
	_, rdb := setupTestRedis(t)
	store := NewRedisDraftStore(rdb)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &Draft{ID: "d3"}))

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Update(ctx, "d3", func(d *Draft) error {
				d.Generation++
				return nil
			}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "d3")
	require.NoError(t, err)
	assert.Equal(t, int64(succeeded), got.Generation)
}

func TestAggregatorWithRedisStore(t *testing.T) {
	_, rdb := setupTestRedis(t)
	agg := NewAggregator(NewRedisDraftStore(rdb), staticFees(DefaultFeeTable()), nil, nil)
	api := newFakeAPI(500000)
	ctx := context.Background()

	d, err := agg.Start(ctx, api, nil)
	require.NoError(t, err)
	d, err = agg.ChangeShippingMethod(ctx, api, 7, d.ID, model.ShippingExpress)
	require.NoError(t, err)
	assert.Equal(t, model.VND(50000), d.Quote().ShippingFee)
	assert.Equal(t, int64(2), d.Generation)
}
