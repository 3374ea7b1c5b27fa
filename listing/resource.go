package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"sixthsoul_bff/client"
	"sixthsoul_bff/model"
)

// Action là một thao tác gửi từ bàn điều khiển quản trị
type Action struct {
	Name    string          `json:"name"`
	ID      int64           `json:"id"`
	IDs     []int64         `json:"ids"`
	Confirm bool            `json:"confirm"`
	Payload json.RawMessage `json:"payload"`
}

type ActionFunc[T Row] func(ctx context.Context, api *client.Client, c *Controller[T], a Action) (any, error)

// Resource mô tả một bảng quản trị: đường dẫn API, các ô lọc và thao tác
type Resource[T Row] struct {
	Name    string
	Path    string
	Fields  []FieldSpec
	Actions map[string]ActionFunc[T]
}

// Console là Controller đã xoá kiểu, dùng cho kết nối websocket
type Console interface {
	Load()
	SetFilter(field, value string) error
	SetPage(page int) error
	Select(id int64, on bool)
	SelectAll()
	ClearSelection()
	Refetch()
	Do(ctx context.Context, a Action) (any, error)
	OnSnapshot(fn func(any))
	Wait()
	Close()
}

// Definition là Resource đã xoá kiểu
type Definition interface {
	ResourceName() string
	APIPath() string
	FilterFields() []FieldSpec
	NewConsole(ctx context.Context, api *client.Client, opts ...Option) Console
}

func (r *Resource[T]) ResourceName() string      { return r.Name }
func (r *Resource[T]) APIPath() string           { return r.Path }
func (r *Resource[T]) FilterFields() []FieldSpec { return r.Fields }

func (r *Resource[T]) Fetcher(api *client.Client) Fetcher[T] {
	return func(ctx context.Context, q url.Values) (model.Page[T], error) {
		return client.ListPage[T](ctx, api, r.Path, q)
	}
}

func (r *Resource[T]) NewConsole(ctx context.Context, api *client.Client, opts ...Option) Console {
	return &console[T]{
		Controller: New(ctx, r.Fields, r.Fetcher(api), opts...),
		resource:   r,
		api:        api,
	}
}

type console[T Row] struct {
	*Controller[T]
	resource *Resource[T]
	api      *client.Client
}

func (c *console[T]) Refetch() { c.Apply(Refetch[T]()) }

func (c *console[T]) OnSnapshot(fn func(any)) {
	c.OnChange(func(s Snapshot[T]) { fn(s) })
}

func (c *console[T]) Do(ctx context.Context, a Action) (any, error) {
	fn, ok := c.resource.Actions[a.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownAction, c.resource.Name, a.Name)
	}
	return fn(ctx, c.api, c.Controller, a)
}

// Find trả về dòng có id trên trang hiện tại
func (c *Controller[T]) Find(id int64) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.rows {
		if r.RowID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodePayload giải mã và kiểm tra payload của một thao tác
func DecodePayload[P any](raw json.RawMessage) (P, error) {
	var p P
	if err := unmarshalPayload(raw, &p); err != nil {
		return p, err
	}
	if err := payloadValidator.Struct(p); err != nil {
		return p, err
	}
	return p, nil
}

func unmarshalPayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// mutation tạo ActionFunc cho thao tác một dòng: giải mã payload, gọi API, áp delta
func mutation[T Row, P any](call func(ctx context.Context, api *client.Client, c *Controller[T], id int64, p P) (Delta[T], error)) ActionFunc[T] {
	return func(ctx context.Context, api *client.Client, c *Controller[T], a Action) (any, error) {
		p, err := DecodePayload[P](a.Payload)
		if err != nil {
			return nil, err
		}
		var applied Delta[T]
		err = c.Mutate(ctx, func(ctx context.Context) (Delta[T], error) {
			d, err := call(ctx, api, c, a.ID, p)
			applied = d
			return d, err
		})
		if err != nil {
			return nil, err
		}
		if applied.Kind == DeltaPatch {
			return applied.Row, nil
		}
		return applied.Kind.String(), nil
	}
}
