package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sixthsoul_bff/model"
)

type staticProvider struct {
	provinces []model.GeoOption
	districts map[int][]model.GeoOption
	wards     map[int][]model.GeoOption
	calls     atomic.Int32
	delay     time.Duration
}

func (s *staticProvider) Provinces(context.Context) ([]model.GeoOption, error) {
	s.calls.Add(1)
	time.Sleep(s.delay)
	return s.provinces, nil
}

func (s *staticProvider) Districts(_ context.Context, code int) ([]model.GeoOption, error) {
	s.calls.Add(1)
	return s.districts[code], nil
}

func (s *staticProvider) Wards(_ context.Context, code int) ([]model.GeoOption, error) {
	s.calls.Add(1)
	return s.wards[code], nil
}

func sampleProvider() *staticProvider {
	return &staticProvider{
		provinces: []model.GeoOption{
			{Code: 1, Name: "Thành phố Hà Nội"},
			{Code: 79, Name: "Thành phố Hồ Chí Minh"},
		},
		districts: map[int][]model.GeoOption{
			1:  {{Code: 2, Name: "Quận Hoàn Kiếm"}, {Code: 5, Name: "Quận Cầu Giấy"}},
			79: {{Code: 760, Name: "Quận 1"}, {Code: 769, Name: "Thành phố Thủ Đức"}},
		},
		wards: map[int][]model.GeoOption{
			2:   {{Code: 37, Name: "Phường Tràng Tiền"}},
			760: {{Code: 26734, Name: "Phường Bến Nghé"}},
		},
	}
}

func ptr(v int) *int { return &v }

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"Thành phố Hồ Chí Minh": "ho-chi-minh",
		"Hồ Chí Minh":           "ho-chi-minh",
		"TP. Hồ Chí Minh":       "ho-chi-minh",
		"Tỉnh Hà Giang":         "ha-giang",
		"Quận 1":                "1",
		"Phường 01":             "1",
		"Q. Hoàn Kiếm":          "hoan-kiem",
		"Huyện Đông Anh":        "dong-anh",
		"Thị xã Sơn Tây":        "son-tay",
		"  Phường Tràng Tiền ":  "trang-tien",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeName(in), in)
	}
}

func TestFind_CodeFirstThenName(t *testing.T) {
	opts := sampleProvider().provinces

	got, ok := Find(opts, ptr(79), "Hà Nội")
	require.True(t, ok)
	assert.Equal(t, 79, got.Code)

	got, ok = Find(opts, ptr(999), "Hà Nội")
	require.True(t, ok)
	assert.Equal(t, 1, got.Code)

	_, ok = Find(opts, nil, "Đà Nẵng")
	assert.False(t, ok)
	_, ok = Find(opts, nil, "")
	assert.False(t, ok)
}

func TestCascade_SelectClearsLowerLevels(t *testing.T) {
	ctx := context.Background()
	c, err := NewCascade(ctx, sampleProvider())
	require.NoError(t, err)

	require.NoError(t, c.SelectProvince(ctx, 1))
	require.NoError(t, c.SelectDistrict(ctx, 2))
	require.NoError(t, c.SelectWard(37))
	assert.Equal(t, "Phường Tràng Tiền", c.Ward.Name)

	require.NoError(t, c.SelectProvince(ctx, 79))
	assert.Nil(t, c.District)
	assert.Nil(t, c.Ward)
	assert.Empty(t, c.Wards)
	assert.Len(t, c.Districts, 2)

	require.NoError(t, c.SelectDistrict(ctx, 760))
	require.NoError(t, c.SelectWard(26734))
	require.NoError(t, c.SelectDistrict(ctx, 769))
	assert.Nil(t, c.Ward)
	assert.Empty(t, c.Wards)

	assert.ErrorIs(t, c.SelectProvince(ctx, 48), ErrUnknownUnit)
	assert.ErrorIs(t, c.SelectWard(1), ErrUnknownUnit)
}

func TestCascade_PrefillByName(t *testing.T) {
	ctx := context.Background()
	c, err := NewCascade(ctx, sampleProvider())
	require.NoError(t, err)

	err = c.Prefill(ctx, model.Address{City: "Hà Nội", District: "Q. Hoàn Kiếm", Ward: "Tràng Tiền"})
	require.NoError(t, err)
	require.NotNil(t, c.Ward)
	assert.Equal(t, 1, c.Province.Code)
	assert.Equal(t, 2, c.District.Code)
	assert.Equal(t, 37, c.Ward.Code)

	var input model.AddressInput
	c.Fill(&input)
	assert.Equal(t, "Phường Tràng Tiền", input.Ward)
	assert.Equal(t, 37, *input.WardCode)
}

func TestCascade_PrefillByCode(t *testing.T) {
	ctx := context.Background()
	c, err := NewCascade(ctx, sampleProvider())
	require.NoError(t, err)

	err = c.Prefill(ctx, model.Address{
		City: "Sài Gòn", ProvinceCode: ptr(79),
		District: "Q1", DistrictCode: ptr(760),
		Ward: "Bến Nghé",
	})
	require.NoError(t, err)
	require.NotNil(t, c.Ward)
	assert.Equal(t, 26734, c.Ward.Code)
}

func TestCascade_PrefillMissLeavesLevelEmpty(t *testing.T) {
	ctx := context.Background()
	c, err := NewCascade(ctx, sampleProvider())
	require.NoError(t, err)

	require.NoError(t, c.Prefill(ctx, model.Address{City: "Hà Nội", District: "Quận Ba Đình", Ward: "Phường Điện Biên"}))
	require.NotNil(t, c.Province)
	assert.Nil(t, c.District)
	assert.Nil(t, c.Ward)
	assert.Len(t, c.Districts, 2)

	c2, err := NewCascade(ctx, sampleProvider())
	require.NoError(t, err)
	require.NoError(t, c2.Prefill(ctx, model.Address{City: "Đà Nẵng"}))
	assert.Nil(t, c2.Province)
	assert.Empty(t, c2.Districts)
}

func TestHTTPProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/p/":
			w.Write([]byte(`[{"code":1,"name":"Thành phố Hà Nội","division_type":"thành phố trung ương","districts":[]}]`))
		case "/p/1":
			assert.Equal(t, "2", r.URL.Query().Get("depth"))
			w.Write([]byte(`{"code":1,"name":"Thành phố Hà Nội","districts":[{"code":2,"name":"Quận Hoàn Kiếm","wards":[]}]}`))
		case "/d/2":
			w.Write([]byte(`{"code":2,"name":"Quận Hoàn Kiếm","wards":[{"code":37,"name":"Phường Tràng Tiền"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL+"/", srv.Client())
	ctx := context.Background()

	provinces, err := p.Provinces(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.GeoOption{{Code: 1, Name: "Thành phố Hà Nội"}}, provinces)

	districts, err := p.Districts(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Quận Hoàn Kiếm", districts[0].Name)

	wards, err := p.Wards(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 37, wards[0].Code)

	_, err = p.Wards(ctx, 3)
	assert.True(t, errors.Is(err, ErrUnknownUnit))
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestCachedProvider_HitsRedis(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	inner := sampleProvider()
	cached := NewCachedProvider(inner, rdb)
	ctx := context.Background()

	_, err := cached.Districts(ctx, 1)
	require.NoError(t, err)
	got, err := cached.Districts(ctx, 1)
	require.NoError(t, err)

	assert.Len(t, got, 2)
	assert.EqualValues(t, 1, inner.calls.Load())
	assert.True(t, mr.Exists("geo:province:1:districts"))
	assert.Equal(t, 24*time.Hour, mr.TTL("geo:province:1:districts"))

	mr.FastForward(25 * time.Hour)
	_, err = cached.Districts(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, inner.calls.Load())
}

func TestCachedProvider_CollapsesConcurrentMisses(t *testing.T) {
	_, rdb := setupTestRedis(t)
	inner := sampleProvider()
	inner.delay = 50 * time.Millisecond
	cached := NewCachedProvider(inner, rdb)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			list, err := cached.Provinces(context.Background())
			assert.NoError(t, err)
			assert.Len(t, list, 2)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, inner.calls.Load(), int32(2))
}

func TestCachedProvider_Refresh(t *testing.T) {
	_, rdb := setupTestRedis(t)
	inner := sampleProvider()
	cached := NewCachedProvider(inner, rdb)
	ctx := context.Background()

	n, err := cached.RefreshProvinces(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = cached.Provinces(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, inner.calls.Load())
}
