package helper

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sixthsoul_bff/model"
)

type stubFeeSource map[model.ShippingMethod]model.ShippingFeeConfig

var errFeeAPI = errors.New("upstream down")

func (s stubFeeSource) ShippingFeeConfigByMethod(_ context.Context, method model.ShippingMethod) (model.ShippingFeeConfig, bool, error) {
	if method == model.ShippingExpress {
		return model.ShippingFeeConfig{}, false, errFeeAPI
	}
	cfg, ok := s[method]
	return cfg, ok, nil
}

type memoryFeeWriter struct {
	rows map[model.ShippingMethod]model.ShippingFeeConfig
}

func (m *memoryFeeWriter) Upsert(_ context.Context, cfg model.ShippingFeeConfig) error {
	m.rows[cfg.Method] = cfg
	return nil
}

func TestSyncShippingFeeConfigs(t *testing.T) {
	src := stubFeeSource{
		model.ShippingStandard: {Fee: 25000, FreeShippingThreshold: 800000, Active: true},
	}
	dst := &memoryFeeWriter{rows: map[model.ShippingMethod]model.ShippingFeeConfig{
		model.ShippingFast: {Method: model.ShippingFast, Fee: 40000, Active: true},
	}}

	n, err := SyncShippingFeeConfigs(context.Background(), src, dst)
	assert.Equal(t, 1, n)
	require.Error(t, err)
	assert.ErrorIs(t, err, errFeeAPI)

	assert.Equal(t, model.VND(25000), dst.rows[model.ShippingStandard].Fee)
	assert.Equal(t, model.ShippingStandard, dst.rows[model.ShippingStandard].Method)
	assert.Equal(t, model.VND(40000), dst.rows[model.ShippingFast].Fee)
}

func TestGenerateUniqueSlug(t *testing.T) {
	taken := map[string]bool{"ao-thun-mua-he": true, "ao-thun-mua-he-1": true}
	s, err := GenerateUniqueSlug(context.Background(), "Áo thun mùa hè", func(_ context.Context, s string) (bool, error) {
		return taken[s], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ao-thun-mua-he-2", s)

	_, err = GenerateUniqueSlug(context.Background(), "!!!", func(context.Context, string) (bool, error) { return false, nil })
	assert.Error(t, err)

	_, err = GenerateUniqueSlug(context.Background(), "Bộ sưu tập", func(context.Context, string) (bool, error) { return true, nil })
	assert.Error(t, err)
}

func TestSignReviewUpload(t *testing.T) {
	_, err := SignReviewUpload(nil, 7, 3, time.Now())
	assert.Error(t, err)

	cld, err := cloudinary.NewFromParams("sixthsoul", "key", "secret")
	require.NoError(t, err)
	now := time.Unix(1760000000, 42)

	sig, err := SignReviewUpload(cld, 7, 3, now)
	require.NoError(t, err)
	assert.Equal(t, "sixthsoul", sig.CloudName)
	assert.Equal(t, "reviews", sig.Folder)
	assert.Equal(t, fmt.Sprintf("review_3_7_%d", now.UnixNano()), sig.PublicID)
	assert.Equal(t, int64(1760000000), sig.Timestamp)
	assert.NotEmpty(t, sig.Signature)

	again, err := SignReviewUpload(cld, 7, 3, now)
	require.NoError(t, err)
	assert.Equal(t, sig.Signature, again.Signature)
}
