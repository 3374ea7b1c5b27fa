package helper

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"sixthsoul_bff/model"
)

type FeeConfigSource interface {
	ShippingFeeConfigByMethod(ctx context.Context, method model.ShippingMethod) (model.ShippingFeeConfig, bool, error)
}

type FeeConfigWriter interface {
	Upsert(ctx context.Context, cfg model.ShippingFeeConfig) error
}

// SyncShippingFeeConfigs chép cấu hình phí của từng phương thức từ API về bảng dự phòng.
// Phương thức API không có cấu hình thì giữ nguyên dòng cũ.
func SyncShippingFeeConfigs(ctx context.Context, src FeeConfigSource, dst FeeConfigWriter) (int, error) {
	var errs []error
	synced := 0
	for _, method := range model.ShippingMethods {
		cfg, found, err := src.ShippingFeeConfigByMethod(ctx, method)
		if err != nil {
			errs = append(errs, fmt.Errorf("fetch %s: %w", method, err))
			continue
		}
		if !found {
			continue
		}
		cfg.Method = method
		if err := dst.Upsert(ctx, cfg); err != nil {
			errs = append(errs, err)
			continue
		}
		synced++
	}
	if synced > 0 {
		log.Infof("Đã đồng bộ %d cấu hình phí vận chuyển", synced)
	}
	return synced, errors.Join(errs...)
}
