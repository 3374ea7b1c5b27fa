package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/sony/gobreaker/v2"

	"sixthsoul_bff/client"
	"sixthsoul_bff/constants"
	"sixthsoul_bff/model"
)

// API là phần của client REST mà luồng thanh toán cần, đã gắn phiên người dùng
type API interface {
	Me(ctx context.Context) (model.User, error)
	Addresses(ctx context.Context) ([]model.Address, error)
	Cart(ctx context.Context) (model.Cart, error)
	ShippingFee(ctx context.Context, addressID int64, method model.ShippingMethod) (model.ShippingFeeQuote, error)
	ValidateVoucher(ctx context.Context, code string, subtotal model.VND) (model.VoucherValidation, error)
	Checkout(ctx context.Context, payload model.CheckoutPayload) (model.CheckoutResponse, error)
}

type FeeTables interface {
	FeeTable(ctx context.Context) (FeeTable, error)
}

type OrderRecorder interface {
	Record(ctx context.Context, rec *model.OrderRecord) error
}

type Notifier interface {
	OrderPlaced(rec model.OrderRecord)
}

// Outcome: RedirectURL khác rỗng thì chuyển hẳn sang cổng thanh toán,
// ngược lại điều hướng tới trang xác nhận đơn.
type Outcome struct {
	RedirectURL      string `json:"redirectUrl,omitempty"`
	OrderNumber      string `json:"orderNumber"`
	ConfirmationPath string `json:"confirmationPath,omitempty"`
}

type Aggregator struct {
	store    DraftStore
	fees     FeeTables
	orders   OrderRecorder
	notifier Notifier
	breaker  *gobreaker.CircuitBreaker[model.ShippingFeeQuote]
}

func NewAggregator(store DraftStore, fees FeeTables, orders OrderRecorder, notifier Notifier) *Aggregator {
	return &Aggregator{
		store:    store,
		fees:     fees,
		orders:   orders,
		notifier: notifier,
		breaker:  newFeeBreaker(),
	}
}

func newFeeBreaker() *gobreaker.CircuitBreaker[model.ShippingFeeQuote] {
	return gobreaker.NewCircuitBreaker[model.ShippingFeeQuote](gobreaker.Settings{
		Name:        "shipping-fee",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// lỗi 4xx là câu trả lời hợp lệ của dịch vụ, không tính vào ngắt mạch
		IsSuccessful: func(err error) bool {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) {
				return apiErr.Status < 500
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("Ngắt mạch %s: %s → %s", name, from, to)
		},
	})
}

func (a *Aggregator) feeTable(ctx context.Context) FeeTable {
	if a.fees == nil {
		return DefaultFeeTable()
	}
	table, err := a.fees.FeeTable(ctx)
	if err != nil {
		log.Warnf("Không đọc được bảng phí vận chuyển, dùng bảng mặc định: %v", err)
		return DefaultFeeTable()
	}
	return table
}

// Start mở một phiên thanh toán cho các dòng itemIDs (rỗng = cả giỏ)
func (a *Aggregator) Start(ctx context.Context, api API, itemIDs []int64) (*Draft, error) {
	me, err := api.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	addresses, err := api.Addresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("load addresses: %w", err)
	}
	model.SortAddresses(addresses)

	cart, err := api.Cart(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	d := &Draft{
		ID:             uuid.NewString(),
		OwnerID:        me.ID,
		Email:          me.Email,
		FullName:       me.FullName,
		Phone:          me.Phone,
		Generation:     1,
		Items:          FilterItems(cart.Items, itemIDs),
		Addresses:      addresses,
		ShippingMethod: model.ShippingStandard,
		FeeSource:      FeePending,
	}
	if len(addresses) > 0 {
		id := addresses[0].ID
		d.AddressID = &id
	}
	if err := a.store.Create(ctx, d); err != nil {
		return nil, err
	}
	return a.refreshFee(ctx, api, d.ID, d.Generation)
}

func (a *Aggregator) Get(ctx context.Context, ownerID int64, id string) (*Draft, error) {
	d, err := a.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return d, nil
}

func (a *Aggregator) ChangeAddress(ctx context.Context, api API, ownerID int64, id string, addressID int64) (*Draft, error) {
	d, err := a.store.Update(ctx, id, func(d *Draft) error {
		if d.OwnerID != ownerID {
			return ErrNotOwner
		}
		found := false
		for _, addr := range d.Addresses {
			if addr.ID == addressID {
				found = true
				break
			}
		}
		if !found {
			return ErrUnknownAddress
		}
		d.AddressID = &addressID
		d.Generation++
		d.FeeSource = FeePending
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a.refreshFee(ctx, api, id, d.Generation)
}

func (a *Aggregator) ChangeShippingMethod(ctx context.Context, api API, ownerID int64, id string, method model.ShippingMethod) (*Draft, error) {
	d, err := a.store.Update(ctx, id, func(d *Draft) error {
		if d.OwnerID != ownerID {
			return ErrNotOwner
		}
		d.ShippingMethod = method
		d.Generation++
		d.FeeSource = FeePending
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a.refreshFee(ctx, api, id, d.Generation)
}

// refreshFee hỏi phí cho generation gen; nếu draft đã sang generation khác
// thì bỏ kết quả và trả về draft mới nhất.
func (a *Aggregator) refreshFee(ctx context.Context, api API, id string, gen int64) (*Draft, error) {
	d, err := a.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	table := a.feeTable(ctx)
	subtotal := Subtotal(d.Items)
	fee, source := FallbackFee(table, d.ShippingMethod, subtotal), FeeFallback
	if d.AddressID != nil {
		if dynamic, ok := a.dynamicFee(ctx, api, *d.AddressID, d.ShippingMethod); ok {
			fee, source = dynamic, FeeDynamic
		}
	}

	updated, err := a.store.Update(ctx, id, func(d *Draft) error {
		if d.Generation != gen {
			return errStale
		}
		d.ShippingFee = fee
		d.FeeSource = source
		d.FreeShippingThreshold = table.FreeShippingThreshold
		return nil
	})
	if errors.Is(err, errStale) {
		return a.store.Get(ctx, id)
	}
	return updated, err
}

func (a *Aggregator) dynamicFee(ctx context.Context, api API, addressID int64, method model.ShippingMethod) (model.VND, bool) {
	quote, err := a.breaker.Execute(func() (model.ShippingFeeQuote, error) {
		return api.ShippingFee(ctx, addressID, method)
	})
	if err != nil {
		log.Warnf("Không lấy được phí vận chuyển động (địa chỉ %d, %s): %v", addressID, method, err)
		return 0, false
	}
	if quote.Fee == nil || *quote.Fee < 0 {
		return 0, false
	}
	return *quote.Fee, true
}

// ApplyVoucher kiểm tra mã với tạm tính hiện tại. Thất bại thì giảm giá về 0
// và trả về UserError mang đúng thông báo của máy chủ.
func (a *Aggregator) ApplyVoucher(ctx context.Context, api API, ownerID int64, id, code string) (*Draft, error) {
	d, err := a.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	res, vErr := api.ValidateVoucher(ctx, code, Subtotal(d.Items))

	updated, err := a.store.Update(ctx, id, func(d *Draft) error {
		if vErr != nil || res.Discount == nil {
			d.VoucherCode = ""
			d.VoucherDiscount = 0
			return nil
		}
		d.VoucherCode = code
		d.VoucherDiscount = ClampDiscount(*res.Discount, Subtotal(d.Items))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if vErr != nil {
		return updated, &UserError{Message: client.ServerMessage(vErr, constants.VOUCHER_INVALID), Err: vErr}
	}
	if res.Discount == nil {
		msg := res.Message
		if msg == "" {
			msg = constants.VOUCHER_INVALID
		}
		return updated, &UserError{Message: msg}
	}
	return updated, nil
}

func (a *Aggregator) RemoveVoucher(ctx context.Context, ownerID int64, id string) (*Draft, error) {
	return a.store.Update(ctx, id, func(d *Draft) error {
		if d.OwnerID != ownerID {
			return ErrNotOwner
		}
		d.VoucherCode = ""
		d.VoucherDiscount = 0
		return nil
	})
}

// Submit kiểm tra form, gửi đơn và quyết định chuyển hướng. Lỗi không làm mất draft,
// người dùng có thể gửi lại; không tự động thử lại.
func (a *Aggregator) Submit(ctx context.Context, api API, ownerID int64, id string, form model.CheckoutForm) (Outcome, error) {
	form = NormalizeForm(form)
	if err := ValidateForm(form); err != nil {
		return Outcome{}, err
	}

	d, err := a.Get(ctx, ownerID, id)
	if err != nil {
		return Outcome{}, err
	}
	if form.AddressID != nil && (d.AddressID == nil || *form.AddressID != *d.AddressID) {
		if d, err = a.ChangeAddress(ctx, api, ownerID, id, *form.AddressID); err != nil {
			return Outcome{}, err
		}
	}
	if form.ShippingMethod != d.ShippingMethod {
		if d, err = a.ChangeShippingMethod(ctx, api, ownerID, id, form.ShippingMethod); err != nil {
			return Outcome{}, err
		}
	}
	if len(d.Addresses) > 0 && d.AddressID == nil {
		return Outcome{}, ErrAddressRequired
	}
	if len(d.Items) == 0 {
		return Outcome{}, ErrEmptyCart
	}

	quote := d.Quote()
	form.AddressID = d.AddressID
	payload := model.CheckoutPayload{
		CheckoutForm: form,
		CartItemIDs:  d.ItemIDs(),
		VoucherCode:  d.VoucherCode,
		Subtotal:     quote.Subtotal,
		ShippingFee:  quote.ShippingFee,
		Discount:     quote.Discount,
		Total:        quote.Total,
	}

	resp, err := api.Checkout(ctx, payload)
	if err != nil {
		return Outcome{}, &UserError{Message: client.ServerMessage(err, constants.CHECKOUT_FAILED), Err: err}
	}

	rec := model.OrderRecord{
		OrderNumber: resp.OrderNumber,
		OwnerID:     d.OwnerID,
		Email:       d.Email,
		Status:      model.OrderStatusPlaced,
		PaymentURL:  resp.PaymentURL,
	}
	if err := copier.Copy(&rec, &payload); err != nil {
		log.Errorf("Không sao chép được dữ liệu đơn %s: %v", rec.OrderNumber, err)
	}
	if resp.TotalAmount > 0 {
		rec.Total = resp.TotalAmount
	}
	if resp.PaymentURL != "" {
		rec.Status = model.OrderStatusPending
	}
	if a.orders != nil {
		if err := a.orders.Record(ctx, &rec); err != nil {
			log.Errorf("Không lưu được đơn %s: %v", rec.OrderNumber, err)
		}
	}
	if err := a.store.Delete(ctx, id); err != nil {
		log.Warnf("Không xoá được phiên thanh toán %s: %v", id, err)
	}

	if resp.PaymentURL != "" {
		return Outcome{RedirectURL: resp.PaymentURL, OrderNumber: resp.OrderNumber}, nil
	}
	if a.notifier != nil {
		a.notifier.OrderPlaced(rec)
	}
	return Outcome{
		OrderNumber:      resp.OrderNumber,
		ConfirmationPath: "/orders/" + resp.OrderNumber,
	}, nil
}
