package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"sixthsoul_bff/model"
)

const cacheTTL = 24 * time.Hour

// CachedProvider đặt Redis trước Provider; các lần miss đồng thời cùng khoá chỉ gọi API một lần
type CachedProvider struct {
	next  Provider
	rdb   *redis.Client
	ttl   time.Duration
	group singleflight.Group
}

func NewCachedProvider(next Provider, rdb *redis.Client) *CachedProvider {
	return &CachedProvider{next: next, rdb: rdb, ttl: cacheTTL}
}

func provincesKey() string        { return "geo:provinces" }
func districtsKey(code int) string { return fmt.Sprintf("geo:province:%d:districts", code) }
func wardsKey(code int) string     { return fmt.Sprintf("geo:district:%d:wards", code) }

func (c *CachedProvider) Provinces(ctx context.Context) ([]model.GeoOption, error) {
	return c.load(ctx, provincesKey(), c.next.Provinces)
}

func (c *CachedProvider) Districts(ctx context.Context, provinceCode int) ([]model.GeoOption, error) {
	return c.load(ctx, districtsKey(provinceCode), func(ctx context.Context) ([]model.GeoOption, error) {
		return c.next.Districts(ctx, provinceCode)
	})
}

func (c *CachedProvider) Wards(ctx context.Context, districtCode int) ([]model.GeoOption, error) {
	return c.load(ctx, wardsKey(districtCode), func(ctx context.Context) ([]model.GeoOption, error) {
		return c.next.Wards(ctx, districtCode)
	})
}

// RefreshProvinces nạp lại danh sách tỉnh từ API và ghi đè cache
func (c *CachedProvider) RefreshProvinces(ctx context.Context) (int, error) {
	list, err := c.next.Provinces(ctx)
	if err != nil {
		return 0, err
	}
	c.store(ctx, provincesKey(), list)
	return len(list), nil
}

func (c *CachedProvider) load(ctx context.Context, key string, fetch func(context.Context) ([]model.GeoOption, error)) ([]model.GeoOption, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var list []model.GeoOption
		if err := json.Unmarshal(data, &list); err == nil {
			return list, nil
		}
		log.Warnf("Cache địa giới %s hỏng, tải lại", key)
	} else if !errors.Is(err, redis.Nil) {
		log.Warnf("Không đọc được cache địa giới %s: %v", key, err)
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		list, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.GeoOption), nil
}

func (c *CachedProvider) store(ctx context.Context, key string, list []model.GeoOption) {
	data, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warnf("Không ghi được cache địa giới %s: %v", key, err)
	}
}
