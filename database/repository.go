package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sixthsoul_bff/checkout"
	"sixthsoul_bff/model"
)

var ErrOrderNotFound = errors.New("order record not found")

// FeeConfigRepo là bảng phí dự phòng lưu ở Postgres
type FeeConfigRepo struct {
	db *gorm.DB
}

func NewFeeConfigRepo(db *gorm.DB) *FeeConfigRepo {
	return &FeeConfigRepo{db: db}
}

func (r *FeeConfigRepo) List(ctx context.Context) (model.ShippingFeeConfigs, error) {
	var rows model.ShippingFeeConfigs
	if err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list shipping fee configs: %w", err)
	}
	return rows, nil
}

// FeeTable cài đặt checkout.FeeTables
func (r *FeeConfigRepo) FeeTable(ctx context.Context) (checkout.FeeTable, error) {
	rows, err := r.List(ctx)
	if err != nil {
		return checkout.FeeTable{}, err
	}
	return checkout.FeeTableFromConfigs(rows), nil
}

// Upsert ghi đè dòng cấu hình theo phương thức giao hàng
func (r *FeeConfigRepo) Upsert(ctx context.Context, cfg model.ShippingFeeConfig) error {
	now := time.Now()
	row := model.ShippingFeeConfig{
		Method:                cfg.Method,
		Fee:                   cfg.Fee,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		Active:                cfg.Active,
		SyncedAt:              &now,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "method"}},
		DoUpdates: clause.AssignmentColumns([]string{"fee", "free_shipping_threshold", "active", "synced_at", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert shipping fee config %s: %w", cfg.Method, err)
	}
	return nil
}

// OrderRepo lưu các đơn đã gửi lên API
type OrderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// Record cài đặt checkout.OrderRecorder
func (r *OrderRepo) Record(ctx context.Context, rec *model.OrderRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("record order %s: %w", rec.OrderNumber, err)
	}
	return nil
}

func (r *OrderRepo) ByNumber(ctx context.Context, orderNumber string) (model.OrderRecord, error) {
	var rec model.OrderRecord
	err := r.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, ErrOrderNotFound
	}
	if err != nil {
		return rec, fmt.Errorf("find order %s: %w", orderNumber, err)
	}
	return rec, nil
}

// MarkPaid chuyển đơn đang chờ sang đã thanh toán. changed=false khi đơn đã
// được xử lý trước đó (VNPay có thể gọi lại nhiều lần).
func (r *OrderRepo) MarkPaid(ctx context.Context, orderNumber string, paidAt time.Time) (model.OrderRecord, bool, error) {
	return r.transition(ctx, orderNumber, map[string]any{
		"status":  model.OrderStatusPaid,
		"paid_at": paidAt,
	})
}

func (r *OrderRepo) MarkFailed(ctx context.Context, orderNumber string) (model.OrderRecord, bool, error) {
	return r.transition(ctx, orderNumber, map[string]any{
		"status": model.OrderStatusFailed,
	})
}

func (r *OrderRepo) transition(ctx context.Context, orderNumber string, updates map[string]any) (model.OrderRecord, bool, error) {
	res := r.db.WithContext(ctx).Model(&model.OrderRecord{}).
		Where("order_number = ? AND status = ?", orderNumber, model.OrderStatusPending).
		Updates(updates)
	if res.Error != nil {
		return model.OrderRecord{}, false, fmt.Errorf("update order %s: %w", orderNumber, res.Error)
	}
	rec, err := r.ByNumber(ctx, orderNumber)
	if err != nil {
		return rec, false, err
	}
	return rec, res.RowsAffected > 0, nil
}
