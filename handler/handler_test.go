package handler_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sixthsoul_bff/checkout"
	"sixthsoul_bff/client"
	"sixthsoul_bff/config"
	"sixthsoul_bff/database"
	"sixthsoul_bff/handler"
	"sixthsoul_bff/model"
	"sixthsoul_bff/router"
	"sixthsoul_bff/session"
)

const vnpSecret = "vnp-secret"

type memoryOrders struct {
	mu   sync.Mutex
	recs map[string]model.OrderRecord
}

func newMemoryOrders() *memoryOrders {
	return &memoryOrders{recs: map[string]model.OrderRecord{}}
}

func (m *memoryOrders) Record(_ context.Context, rec *model.OrderRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.OrderNumber] = *rec
	return nil
}

func (m *memoryOrders) ByNumber(_ context.Context, n string) (model.OrderRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[n]
	if !ok {
		return rec, database.ErrOrderNotFound
	}
	return rec, nil
}

func (m *memoryOrders) move(n, status string, at *time.Time) (model.OrderRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[n]
	if !ok {
		return rec, false, database.ErrOrderNotFound
	}
	if rec.Status != model.OrderStatusPending {
		return rec, false, nil
	}
	rec.Status = status
	rec.PaidAt = at
	m.recs[n] = rec
	return rec, true, nil
}

func (m *memoryOrders) MarkPaid(_ context.Context, n string, at time.Time) (model.OrderRecord, bool, error) {
	return m.move(n, model.OrderStatusPaid, &at)
}

func (m *memoryOrders) MarkFailed(_ context.Context, n string) (model.OrderRecord, bool, error) {
	return m.move(n, model.OrderStatusFailed, nil)
}

type countingNotifier struct {
	mu     sync.Mutex
	orders []string
}

func (n *countingNotifier) OrderPlaced(rec model.OrderRecord) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, rec.OrderNumber)
}

func (n *countingNotifier) sent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.orders...)
}

type staticGeo struct{}

func (staticGeo) Provinces(context.Context) ([]model.GeoOption, error) {
	return []model.GeoOption{{Code: 1, Name: "Thành phố Hà Nội"}}, nil
}

func (staticGeo) Districts(context.Context, int) ([]model.GeoOption, error) {
	return []model.GeoOption{{Code: 2, Name: "Quận Hoàn Kiếm"}}, nil
}

func (staticGeo) Wards(context.Context, int) ([]model.GeoOption, error) {
	return []model.GeoOption{{Code: 37, Name: "Phường Tràng Tiền"}}, nil
}

type testEnv struct {
	app      *fiber.App
	store    *session.Store
	signer   *session.Signer
	orders   *memoryOrders
	notifier *countingNotifier
}

func newTestEnv(t *testing.T, upstream http.HandlerFunc) *testEnv {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	env := &testEnv{
		store:    session.NewStore(rdb),
		signer:   session.NewSigner("test-secret"),
		orders:   newMemoryOrders(),
		notifier: &countingNotifier{},
	}
	h := &handler.Handler{
		API:      client.New(srv.URL, srv.Client()),
		Sessions: env.store,
		Signer:   env.signer,
		Checkout: checkout.NewAggregator(checkout.NewMemoryDraftStore(), nil, env.orders, env.notifier),
		Geo:      staticGeo{},
		Orders:   env.orders,
		Notifier: env.notifier,
		VNPay:    handler.NewVNPay(config.Settings{VNPayHashSecret: vnpSecret}),
		Redis:    rdb,
		AppURL:   "http://shop.test",
	}
	env.app = fiber.New()
	router.SetupRoutes(env.app, h)
	return env
}

// login tạo sẵn phiên trong Redis và trả về cookie đã ký
func (e *testEnv) login(t *testing.T, scope client.Scope, user model.User) string {
	sess := e.store.New()
	sess.Set(scope, &session.Blob{AccessToken: string(scope) + "-token", User: user})
	require.NoError(t, e.store.Save(context.Background(), sess))
	raw, err := e.signer.Sign(sess.ID)
	require.NoError(t, err)
	return session.CookieName + "=" + raw
}

type envelope struct {
	Status   string            `json:"status"`
	Message  string            `json:"message"`
	Redirect string            `json:"redirect"`
	KeyError string            `json:"keyError"`
	Fields   map[string]string `json:"fields"`
	Data     json.RawMessage   `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, target, cookie string, body any) (*http.Response, envelope) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	_ = json.Unmarshal(raw, &env)
	return resp, env
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestRequireScope_RedirectsToLogin(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call %s", r.URL.Path)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Page-Path", "/checkout")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "/login?next=%2Fcheckout", body.Redirect)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.Header.Set("X-Page-Path", "/admin/users")
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "/admin/login?next=%2Fadmin%2Fusers", body.Redirect)
}

func TestCustomerSessionDoesNotOpenAdmin(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call %s", r.URL.Path)
	})
	cookie := env.login(t, client.ScopeCustomer, model.User{ID: 7})

	resp, body := env.do(t, http.MethodGet, "/api/v1/admin/users", cookie, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body.Redirect, "/admin/login"))
}

func TestLogin_StoresSessionAndSanitizesNext(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, model.LoginResponse{
			TokenData: model.TokenData{AccessToken: "c-token", RefreshToken: "r-token"},
			User:      model.User{ID: 7, Email: "lan@sixthsoul.vn"},
		})
	})

	resp, body := env.do(t, http.MethodPost, "/api/v1/auth/login", "", model.LoginInput{
		Email: "lan@sixthsoul.vn", Password: "secret", Next: "/orders/SS-1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var data struct {
		Next string     `json:"next"`
		User model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, "/orders/SS-1", data.Next)
	assert.Equal(t, int64(7), data.User.ID)

	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			cookie = c.Value
			assert.True(t, c.HttpOnly)
		}
	}
	require.NotEmpty(t, cookie)
	id, err := env.signer.Parse(cookie)
	require.NoError(t, err)
	sess, err := env.store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "c-token", sess.Auth.AccessToken)
	assert.Nil(t, sess.AdminAuth)

	_, body = env.do(t, http.MethodPost, "/api/v1/auth/login", "", model.LoginInput{
		Email: "lan@sixthsoul.vn", Password: "secret", Next: "https://evil.example",
	})
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, "/", data.Next)
}

func TestLogin_RotatesSessionID(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/auth/login", r.URL.Path)
		writeJSON(w, model.LoginResponse{
			TokenData: model.TokenData{AccessToken: "a-token"},
			User:      model.User{ID: 1, Email: "admin@sixthsoul.vn"},
		})
	})
	cookie := env.login(t, client.ScopeCustomer, model.User{ID: 7})
	oldID, err := env.signer.Parse(strings.TrimPrefix(cookie, session.CookieName+"="))
	require.NoError(t, err)

	resp, _ := env.do(t, http.MethodPost, "/api/v1/admin/auth/login", cookie, model.LoginInput{
		Email: "admin@sixthsoul.vn", Password: "secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw string
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			raw = c.Value
		}
	}
	require.NotEmpty(t, raw)
	newID, err := env.signer.Parse(raw)
	require.NoError(t, err)
	assert.NotEqual(t, oldID, newID)

	_, err = env.store.Get(context.Background(), oldID)
	assert.ErrorIs(t, err, session.ErrNotFound)

	sess, err := env.store.Get(context.Background(), newID)
	require.NoError(t, err)
	require.NotNil(t, sess.Auth)
	assert.Equal(t, "auth-token", sess.Auth.AccessToken)
	assert.Equal(t, int64(7), sess.Auth.User.ID)
	require.NotNil(t, sess.AdminAuth)
	assert.Equal(t, "a-token", sess.AdminAuth.AccessToken)
}

func TestLogin_MissingPassword(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call %s", r.URL.Path)
	})
	resp, body := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "a@b.vn"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "password", body.KeyError)
}

func TestUpstreamUnauthorizedClearsScope(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	cookie := env.login(t, client.ScopeCustomer, model.User{ID: 7})

	resp, body := env.do(t, http.MethodGet, "/api/v1/cart", cookie, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body.Redirect, "/login"))

	resp, _ = env.do(t, http.MethodGet, "/api/v1/cart", cookie, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func checkoutUpstream(t *testing.T, checkoutResp model.CheckoutResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer auth-token", r.Header.Get("Authorization"), r.URL.Path)
		switch r.URL.Path {
		case "/users/me":
			writeJSON(w, model.User{ID: 7, Email: "lan@sixthsoul.vn", FullName: "Lan", Phone: "0901234567"})
		case "/users/me/addresses":
			writeJSON(w, []model.Address{
				{ID: 4, City: "Hà Nội"},
				{ID: 3, City: "Hồ Chí Minh", IsDefault: true},
			})
		case "/cart":
			writeJSON(w, model.Cart{Items: []model.CartItem{
				{ID: 11, ProductID: 1, Quantity: 2, UnitPrice: 300000},
			}})
		case "/shipping/fee":
			fee := model.VND(25000)
			writeJSON(w, model.ShippingFeeQuote{Fee: &fee})
		case "/vouchers/validate":
			w.WriteHeader(http.StatusBadRequest)
			writeJSON(w, map[string]string{"message": "Mã đã hết hạn"})
		case "/orders/checkout":
			var p model.CheckoutPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
			assert.Equal(t, []int64{11}, p.CartItemIDs)
			assert.Equal(t, model.VND(625000), p.Total)
			writeJSON(w, checkoutResp)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

var validForm = map[string]any{
	"fullName":       "Nguyễn Thị Lan",
	"phone":          "0901234567",
	"address":        "12 Tràng Tiền",
	"ward":           "Tràng Tiền",
	"district":       "Hoàn Kiếm",
	"city":           "Hà Nội",
	"paymentMethod":  "BANK_TRANSFER",
	"shippingMethod": "STANDARD",
}

func startDraft(t *testing.T, env *testEnv, cookie string) (string, model.Quote) {
	resp, body := env.do(t, http.MethodPost, "/api/v1/checkout", cookie, map[string]any{})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body.Message)
	var draft struct {
		ID        string      `json:"id"`
		AddressID *int64      `json:"addressId"`
		Quote     model.Quote `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &draft))
	require.NotNil(t, draft.AddressID)
	assert.Equal(t, int64(3), *draft.AddressID)
	return draft.ID, draft.Quote
}

func TestCheckout_SubmitToConfirmation(t *testing.T) {
	env := newTestEnv(t, checkoutUpstream(t, model.CheckoutResponse{OrderNumber: "SS-100", TotalAmount: 625000}))
	cookie := env.login(t, client.ScopeCustomer, model.User{ID: 7})

	id, quote := startDraft(t, env, cookie)
	assert.Equal(t, model.VND(600000), quote.Subtotal)
	assert.Equal(t, model.VND(25000), quote.ShippingFee)
	assert.Equal(t, model.VND(625000), quote.Total)
	assert.Equal(t, checkout.FeeDynamic, quote.FeeSource)

	resp, body := env.do(t, http.MethodPost, "/api/v1/checkout/"+id+"/submit", cookie, validForm)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body.Message)
	var outcome checkout.Outcome
	require.NoError(t, json.Unmarshal(body.Data, &outcome))
	assert.Equal(t, "/orders/SS-100", outcome.ConfirmationPath)
	assert.Empty(t, outcome.RedirectURL)
	assert.Equal(t, []string{"SS-100"}, env.notifier.sent())

	resp, body = env.do(t, http.MethodGet, "/api/v1/orders/SS-100/confirmation", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view handler.OrderConfirmation
	require.NoError(t, json.Unmarshal(body.Data, &view))
	assert.Equal(t, model.VND(625000), view.Total)
	assert.Equal(t, model.PaymentBankTransfer, view.PaymentMethod)
	assert.True(t, strings.HasPrefix(view.TransferQR, "data:image/png;base64,"))

	other := env.login(t, client.ScopeCustomer, model.User{ID: 8})
	resp, _ = env.do(t, http.MethodGet, "/api/v1/orders/SS-100/confirmation", other, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCheckout_GatewayRedirect(t *testing.T) {
	env := newTestEnv(t, checkoutUpstream(t, model.CheckoutResponse{
		OrderNumber: "SS-200", PaymentURL: "https://sandbox.vnpayment.vn/pay?x=1", TotalAmount: 625000,
	}))
	cookie := env.login(t, client.ScopeCustomer, model.User{ID: 7})
	id, _ := startDraft(t, env, cookie)

	form := map[string]any{}
	for k, v := range validForm {
		form[k] = v
	}
	form["paymentMethod"] = "VNPAY"
	resp, body := env.do(t, http.MethodPost, "/api/v1/checkout/"+id+"/submit", cookie, form)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var outcome checkout.Outcome
	require.NoError(t, json.Unmarshal(body.Data, &outcome))
	assert.Equal(t, "https://sandbox.vnpayment.vn/pay?x=1", outcome.RedirectURL)
	assert.Empty(t, env.notifier.sent())

	rec, err := env.orders.ByNumber(context.Background(), "SS-200")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, rec.Status)
}

func TestCheckout_FormErrorsPerField(t *testing.T) {
	env := newTestEnv(t, checkoutUpstream(t, model.CheckoutResponse{}))
	cookie := env.login(t, client.ScopeCustomer, model.User{ID: 7})

	resp, body := env.do(t, http.MethodPost, "/api/v1/checkout/any/submit", cookie, map[string]any{
		"fullName": "   ", "phone": "0901", "paymentMethod": "COD", "shippingMethod": "STANDARD",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body.Fields, "fullName")
	assert.Contains(t, body.Fields, "phone")
	assert.Contains(t, body.Fields, "city")
}

func TestCheckout_RejectedVoucherKeepsDraft(t *testing.T) {
	env := newTestEnv(t, checkoutUpstream(t, model.CheckoutResponse{}))
	cookie := env.login(t, client.ScopeCustomer, model.User{ID: 7})
	id, _ := startDraft(t, env, cookie)

	resp, body := env.do(t, http.MethodPost, "/api/v1/checkout/"+id+"/voucher", cookie, map[string]string{"code": "TET2026"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view struct {
		VoucherError string      `json:"voucherError"`
		Quote        model.Quote `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &view))
	assert.Equal(t, "Mã đã hết hạn", view.VoucherError)
	assert.Zero(t, view.Quote.Discount)
	assert.Equal(t, model.VND(625000), view.Quote.Total)
}

func TestCheckout_DraftOfAnotherUser(t *testing.T) {
	env := newTestEnv(t, checkoutUpstream(t, model.CheckoutResponse{}))
	cookie := env.login(t, client.ScopeCustomer, model.User{ID: 7})
	id, _ := startDraft(t, env, cookie)

	other := env.login(t, client.ScopeCustomer, model.User{ID: 8})
	resp, _ := env.do(t, http.MethodGet, "/api/v1/checkout/"+id, other, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReturnForOrder_AbsentIsNotAnError(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/returns/order/SS-1":
			writeJSON(w, model.ReturnRequest{ID: 5, OrderNumber: "SS-1", Status: model.ReturnRequested})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	cookie := env.login(t, client.ScopeCustomer, model.User{ID: 7})

	resp, body := env.do(t, http.MethodGet, "/api/v1/returns/order/SS-404", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"found":false}`, string(body.Data))

	_, body = env.do(t, http.MethodGet, "/api/v1/returns/order/SS-1", cookie, nil)
	var data struct {
		Found   bool                `json:"found"`
		Request model.ReturnRequest `json:"request"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.True(t, data.Found)
	assert.Equal(t, int64(5), data.Request.ID)
}

func TestCreateAddress_CanonicalNamesFromCodes(t *testing.T) {
	var got model.AddressInput
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/me/addresses", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, model.Address{ID: 9})
	})
	cookie := env.login(t, client.ScopeCustomer, model.User{ID: 7})

	resp, _ := env.do(t, http.MethodPost, "/api/v1/profile/addresses", cookie, map[string]any{
		"fullName": "Lan", "phone": "0901234567", "address": "12 Tràng Tiền",
		"city": "HN", "district": "HK", "ward": "TT",
		"provinceCode": 1, "districtCode": 2, "wardCode": 37,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Thành phố Hà Nội", got.City)
	assert.Equal(t, "Quận Hoàn Kiếm", got.District)
	assert.Equal(t, "Phường Tràng Tiền", got.Ward)

	resp, body := env.do(t, http.MethodPost, "/api/v1/profile/addresses", cookie, map[string]any{
		"fullName": "Lan", "phone": "0901234567", "address": "12",
		"city": "HN", "district": "HK", "ward": "TT", "provinceCode": 48,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "provinceCode", body.KeyError)
}

func TestAdminList_EncodesTypedFilter(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/returns", r.URL.Path)
		assert.Equal(t, "Bearer adminAuth-token", r.Header.Get("Authorization"))
		assert.Equal(t, "APPROVED", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		writeJSON(w, model.Page[model.ReturnRequest]{Content: []model.ReturnRequest{{ID: 1}}, TotalElements: 41, TotalPages: 3, Number: 2})
	})
	cookie := env.login(t, client.ScopeAdmin, model.User{ID: 1, Role: model.RoleAdmin})

	resp, body := env.do(t, http.MethodGet, "/api/v1/admin/returns?status=APPROVED&page=2", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page model.Page[model.ReturnRequest]
	require.NoError(t, json.Unmarshal(body.Data, &page))
	assert.Equal(t, int64(41), page.TotalElements)

	resp, body = env.do(t, http.MethodGet, "/api/v1/admin/returns?status=LOST", cookie, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "status", body.KeyError)
}

func TestAdminAction_BulkNeedsConfirmation(t *testing.T) {
	var patches, lists atomic.Int32
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/status"):
			patches.Add(1)
			if r.URL.Path == "/admin/returns/3/status" {
				w.WriteHeader(http.StatusConflict)
				writeJSON(w, map[string]string{"message": "Đã hoàn tiền"})
				return
			}
			writeJSON(w, model.ReturnRequest{Status: model.ReturnApproved})
		case r.Method == http.MethodGet && r.URL.Path == "/admin/returns":
			lists.Add(1)
			writeJSON(w, model.Page[model.ReturnRequest]{})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	cookie := env.login(t, client.ScopeAdmin, model.User{ID: 1})

	empty := map[string]any{
		"name":    "bulkStatus",
		"confirm": true,
		"payload": map[string]string{"status": "APPROVED"},
	}
	resp, body := env.do(t, http.MethodPost, "/api/v1/admin/returns/actions", cookie, empty)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ids", body.KeyError)

	action := map[string]any{
		"name":    "bulkStatus",
		"ids":     []int64{1, 2, 3},
		"payload": map[string]string{"status": "APPROVED"},
	}
	resp, body = env.do(t, http.MethodPost, "/api/v1/admin/returns/actions", cookie, action)
	assert.Equal(t, http.StatusPreconditionRequired, resp.StatusCode)
	assert.Equal(t, "confirm", body.KeyError)
	assert.Zero(t, patches.Load())

	action["confirm"] = true
	resp, body = env.do(t, http.MethodPost, "/api/v1/admin/returns/actions", cookie, action)
	assert.Equal(t, http.StatusMultiStatus, resp.StatusCode)
	assert.Equal(t, "1/3 thao tác không thành công", body.Message)
	assert.EqualValues(t, 3, patches.Load())
	assert.Zero(t, lists.Load())

	resp, _ = env.do(t, http.MethodPost, "/api/v1/admin/orders/actions", cookie, action)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func signVNPay(q url.Values) string {
	h := hmac.New(sha512.New, []byte(vnpSecret))
	h.Write([]byte(q.Encode()))
	q.Set("vnp_SecureHash", hex.EncodeToString(h.Sum(nil)))
	return q.Encode()
}

func TestVNPayReturn_MarksOrderPaidOnce(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	require.NoError(t, env.orders.Record(context.Background(), &model.OrderRecord{
		OrderNumber: "SS-300", Total: 625000, Status: model.OrderStatusPending, Email: "lan@sixthsoul.vn",
	}))

	q := url.Values{}
	q.Set("vnp_TxnRef", "SS-300")
	q.Set("vnp_Amount", "62500000")
	q.Set("vnp_ResponseCode", "00")
	q.Set("vnp_TransactionStatus", "00")
	signed := signVNPay(q)

	resp, _ := env.do(t, http.MethodGet, "/api/v1/payment/vnpay/return?"+signed, "", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "http://shop.test/orders/SS-300?payment=success", resp.Header.Get("Location"))

	rec, err := env.orders.ByNumber(context.Background(), "SS-300")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, rec.Status)

	env.do(t, http.MethodGet, "/api/v1/payment/vnpay/return?"+signed, "", nil)
	assert.Equal(t, []string{"SS-300"}, env.notifier.sent())
}

func TestVNPayReturn_BadSignature(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	resp, _ := env.do(t, http.MethodGet, "/api/v1/payment/vnpay/return?vnp_TxnRef=SS-1&vnp_ResponseCode=00&vnp_SecureHash=abc", "", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "http://shop.test/payment-failed"))
}

func TestVNPayIPN_ResponseCodes(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	require.NoError(t, env.orders.Record(context.Background(), &model.OrderRecord{
		OrderNumber: "SS-400", Total: 100000, Status: model.OrderStatusPending,
	}))

	ipn := func(txn, amount string) string {
		q := url.Values{}
		q.Set("vnp_TxnRef", txn)
		q.Set("vnp_Amount", amount)
		q.Set("vnp_ResponseCode", "00")
		req := httptest.NewRequest(http.MethodGet, "/api/v1/payment/vnpay/ipn?"+signVNPay(q), nil)
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		var out struct{ RspCode string }
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return out.RspCode
	}

	assert.Equal(t, "01", ipn("SS-999", "10000000"))
	assert.Equal(t, "04", ipn("SS-400", "999"))
	assert.Equal(t, "00", ipn("SS-400", "10000000"))
	assert.Equal(t, "02", ipn("SS-400", "10000000"))
}
