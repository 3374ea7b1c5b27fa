package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"sixthsoul_bff/model"
)

const (
	FeeDynamic  = "dynamic"
	FeeFallback = "fallback"
	FeePending  = "pending"
)

// Draft là trạng thái một phiên thanh toán. Generation tăng mỗi khi địa chỉ
// hoặc phương thức giao hàng đổi; chỉ báo giá của generation mới nhất được ghi.
type Draft struct {
	ID                    string               `json:"id"`
	OwnerID               int64                `json:"ownerId"`
	Email                 string               `json:"email"`
	FullName              string               `json:"fullName"`
	Phone                 string               `json:"phone"`
	Generation            int64                `json:"generation"`
	Items                 []model.CartItem     `json:"items"`
	Addresses             []model.Address      `json:"addresses"`
	AddressID             *int64               `json:"addressId"`
	ShippingMethod        model.ShippingMethod `json:"shippingMethod"`
	ShippingFee           model.VND            `json:"shippingFee"`
	FeeSource             string               `json:"feeSource"`
	FreeShippingThreshold model.VND            `json:"freeShippingThreshold"`
	VoucherCode           string               `json:"voucherCode"`
	VoucherDiscount       model.VND            `json:"voucherDiscount"`
	UpdatedAt             time.Time            `json:"updatedAt"`
}

// Quote luôn tính lại từ dữ liệu hiện tại của draft
func (d *Draft) Quote() model.Quote {
	subtotal := Subtotal(d.Items)
	fee := d.ShippingFee
	free := d.FreeShippingThreshold > 0 && subtotal >= d.FreeShippingThreshold
	if free {
		fee = 0
	}
	discount := ClampDiscount(d.VoucherDiscount, subtotal)
	return model.Quote{
		Subtotal:     subtotal,
		ShippingFee:  fee,
		Discount:     discount,
		Total:        Total(subtotal, fee, discount),
		FreeShipping: free,
		FeeSource:    d.FeeSource,
	}
}

func (d *Draft) SelectedAddress() (model.Address, bool) {
	if d.AddressID == nil {
		return model.Address{}, false
	}
	for _, a := range d.Addresses {
		if a.ID == *d.AddressID {
			return a, true
		}
	}
	return model.Address{}, false
}

func (d *Draft) ItemIDs() []int64 {
	ids := make([]int64, len(d.Items))
	for i, item := range d.Items {
		ids[i] = item.ID
	}
	return ids
}

type DraftStore interface {
	Create(ctx context.Context, d *Draft) error
	Get(ctx context.Context, id string) (*Draft, error)
	// Update đọc-sửa-ghi nguyên tử; lỗi từ fn huỷ việc ghi và được trả về nguyên vẹn
	Update(ctx context.Context, id string, fn func(d *Draft) error) (*Draft, error)
	Delete(ctx context.Context, id string) error
}

type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftStore(client *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: 30 * time.Minute}
}

func draftKey(id string) string {
	return fmt.Sprintf("checkout:draft:%s", id)
}

func (r *RedisDraftStore) Create(ctx context.Context, d *Draft) error {
	d.UpdatedAt = time.Now()
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal draft failed: %w", err)
	}
	if err := r.client.Set(ctx, draftKey(d.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisDraftStore) Get(ctx context.Context, id string) (*Draft, error) {
	data, err := r.client.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal draft failed: %w", err)
	}
	return &d, nil
}

const maxUpdateRetries = 5

func (r *RedisDraftStore) Update(ctx context.Context, id string, fn func(d *Draft) error) (*Draft, error) {
	key := draftKey(id)
	var updated *Draft

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrDraftNotFound
		}
		if err != nil {
			return fmt.Errorf("redis get failed: %w", err)
		}
		var d Draft
		if err := json.Unmarshal(data, &d); err != nil {
			return fmt.Errorf("unmarshal draft failed: %w", err)
		}
		if err := fn(&d); err != nil {
			return err
		}
		d.UpdatedAt = time.Now()
		out, err := json.Marshal(&d)
		if err != nil {
			return fmt.Errorf("marshal draft failed: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, r.ttl)
			return nil
		})
		updated = &d
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("update draft %s: too many concurrent writers", id)
}

func (r *RedisDraftStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// MemoryDraftStore giữ draft trong bộ nhớ tiến trình
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string][]byte
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: map[string][]byte{}}
}

func (m *MemoryDraftStore) Create(_ context.Context, d *Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[d.ID] = data
	return nil
}

func (m *MemoryDraftStore) Get(_ context.Context, id string) (*Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(id)
}

func (m *MemoryDraftStore) load(id string) (*Draft, error) {
	data, ok := m.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (m *MemoryDraftStore) Update(_ context.Context, id string, fn func(d *Draft) error) (*Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, err := m.load(id)
	if err != nil {
		return nil, err
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	m.drafts[id] = data
	return d, nil
}

func (m *MemoryDraftStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
	return nil
}
