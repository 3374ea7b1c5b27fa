package listing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sixthsoul_bff/client"
	"sixthsoul_bff/model"
)

func newUpstream(t *testing.T, handler http.HandlerFunc) *client.Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return client.New(srv.URL, srv.Client())
}

func TestCollections_ToggleVisibilityPatchesOneRow(t *testing.T) {
	var listCalls atomic.Int32
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/admin/collections":
			listCalls.Add(1)
			json.NewEncoder(w).Encode(model.Page[model.Collection]{
				Content: []model.Collection{
					{ID: 1, Name: "Hè 2026", Visible: true},
					{ID: 2, Name: "Thu Đông", Visible: false},
				},
				TotalElements: 12,
				TotalPages:    6,
			})
		case r.Method == http.MethodPatch && r.URL.Path == "/admin/collections/2/visibility":
			var in model.UpdateVisibilityInput
			json.NewDecoder(r.Body).Decode(&in)
			json.NewEncoder(w).Encode(model.Collection{ID: 2, Name: "Thu Đông", Visible: in.Visible})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	con := Collections.NewConsole(context.Background(), api).(*console[model.Collection])
	con.Load()
	con.Wait()
	before := con.Snapshot()

	out, err := con.Do(context.Background(), Action{Name: "setVisibility", ID: 2, Payload: json.RawMessage(`{"visible":true}`)})
	require.NoError(t, err)
	assert.True(t, out.(model.Collection).Visible)

	after := con.Snapshot()
	assert.Equal(t, before.Rows[0], after.Rows[0])
	assert.True(t, after.Rows[1].Visible)
	assert.Equal(t, before.TotalElements, after.TotalElements)
	assert.Equal(t, before.TotalPages, after.TotalPages)
	assert.EqualValues(t, 1, listCalls.Load())
}

func TestReturns_BulkApproveIssuesOneCallPerID(t *testing.T) {
	var (
		mu      sync.Mutex
		patched []string
		lists   atomic.Int32
	)
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			lists.Add(1)
			json.NewEncoder(w).Encode(model.Page[model.ReturnRequest]{
				Content: []model.ReturnRequest{
					{ID: 10, Status: model.ReturnRequested},
					{ID: 11, Status: model.ReturnRequested},
					{ID: 12, Status: model.ReturnRequested},
				},
				TotalPages: 1,
			})
			return
		}
		mu.Lock()
		patched = append(patched, r.URL.Path)
		mu.Unlock()
		json.NewEncoder(w).Encode(model.ReturnRequest{Status: model.ReturnApproved})
	})

	con := Returns.NewConsole(context.Background(), api).(*console[model.ReturnRequest])
	con.Load()
	con.Wait()
	con.SelectAll()

	_, err := con.Do(context.Background(), Action{Name: "bulkStatus", Payload: json.RawMessage(`{"status":"APPROVED"}`)})
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Empty(t, patched)

	out, err := con.Do(context.Background(), Action{Name: "bulkStatus", Confirm: true, Payload: json.RawMessage(`{"status":"APPROVED"}`)})
	require.NoError(t, err)
	con.Wait()

	report := out.(BulkReport)
	assert.True(t, report.OK())
	assert.Len(t, patched, 3)
	assert.Empty(t, con.Selected())
	assert.EqualValues(t, 2, lists.Load())
}

func TestReturns_BulkWithoutIDsIsRejected(t *testing.T) {
	var calls atomic.Int32
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(model.Page[model.ReturnRequest]{})
	})

	con := Returns.NewConsole(context.Background(), api)
	out, err := con.Do(context.Background(), Action{Name: "bulkStatus", Confirm: true, Payload: json.RawMessage(`{"status":"APPROVED"}`)})
	con.Wait()

	assert.Nil(t, out)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "ids", verrs[0].Field())
	assert.Zero(t, calls.Load())
}

func TestReturns_BulkBeforeLoadSkipsRefetch(t *testing.T) {
	var lists, patches atomic.Int32
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			lists.Add(1)
			json.NewEncoder(w).Encode(model.Page[model.ReturnRequest]{})
			return
		}
		patches.Add(1)
		json.NewEncoder(w).Encode(model.ReturnRequest{Status: model.ReturnRejected})
	})

	con := Returns.NewConsole(context.Background(), api)
	out, err := con.Do(context.Background(), Action{
		Name:    "bulkStatus",
		IDs:     []int64{7, 8},
		Confirm: true,
		Payload: json.RawMessage(`{"status":"REJECTED","note":"Quá hạn đổi trả"}`),
	})
	require.NoError(t, err)
	con.Wait()

	assert.Equal(t, []int64{7, 8}, out.(BulkReport).Succeeded)
	assert.EqualValues(t, 2, patches.Load())
	assert.Zero(t, lists.Load())
}

func TestReturns_RejectsInvalidTransition(t *testing.T) {
	var patches atomic.Int32
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			patches.Add(1)
		}
		json.NewEncoder(w).Encode(model.Page[model.ReturnRequest]{
			Content: []model.ReturnRequest{{ID: 5, Status: model.ReturnRefunded}},
		})
	})

	con := Returns.NewConsole(context.Background(), api).(*console[model.ReturnRequest])
	con.Load()
	con.Wait()

	_, err := con.Do(context.Background(), Action{Name: "setStatus", ID: 5, Payload: json.RawMessage(`{"status":"APPROVED"}`)})
	assert.ErrorIs(t, err, ErrTransition)
	assert.Zero(t, patches.Load())
}

func TestVouchers_DeleteNeedsConfirm(t *testing.T) {
	var deletes atomic.Int32
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletes.Add(1)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		json.NewEncoder(w).Encode(model.Page[model.Voucher]{
			Content:       []model.Voucher{{ID: 1, Code: "SALE"}, {ID: 2, Code: "TET"}},
			TotalElements: 2,
		})
	})

	con := Vouchers.NewConsole(context.Background(), api).(*console[model.Voucher])
	con.Load()
	con.Wait()

	_, err := con.Do(context.Background(), Action{Name: "delete", ID: 1})
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	_, err = con.Do(context.Background(), Action{Name: "delete", ID: 1, Confirm: true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, deletes.Load())
	snap := con.Snapshot()
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, "TET", snap.Rows[0].Code)
}

func TestCollections_CreateGeneratesSlug(t *testing.T) {
	var created model.CollectionInput
	api := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/collections/ao-dai-tet":
			w.Write([]byte(`{"id":3}`))
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/collections/"):
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPost:
			json.NewDecoder(r.Body).Decode(&created)
			w.Write([]byte(`{"id":4}`))
		default:
			w.Write([]byte(`{"content":[]}`))
		}
	})

	con := Collections.NewConsole(context.Background(), api)
	_, err := con.Do(context.Background(), Action{Name: "create", Payload: json.RawMessage(`{"name":"Áo dài Tết"}`)})
	require.NoError(t, err)
	con.Wait()
	assert.Equal(t, "ao-dai-tet-1", created.Slug)
}

func TestConsole_UnknownAction(t *testing.T) {
	con := LoginActivities.NewConsole(context.Background(), client.New("http://127.0.0.1:0", nil))
	_, err := con.Do(context.Background(), Action{Name: "delete"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestRegistryCoversResources(t *testing.T) {
	for _, name := range []string{"users", "vouchers", "collections", "returns", "login-activities", "loyalty-points", "shipping-fee-configs"} {
		def, ok := Registry[name]
		require.True(t, ok, name)
		assert.Equal(t, name, def.ResourceName())
		assert.NotEmpty(t, def.FilterFields())
	}
}
