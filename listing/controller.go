package listing

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"sync"

	"github.com/jonboulle/clockwork"

	"sixthsoul_bff/client"
	"sixthsoul_bff/constants"
	"sixthsoul_bff/model"
)

var (
	ErrInvalidFilter        = errors.New("invalid filter value")
	ErrUnknownField         = errors.New("unknown filter field")
	ErrInvalidPage          = errors.New("invalid page index")
	ErrConfirmationRequired = errors.New("destructive action requires confirmation")
	ErrUnknownAction        = errors.New("unknown action")
	ErrTransition           = errors.New("status transition not allowed")
)

// Row là một dòng của bảng quản trị
type Row interface {
	RowID() int64
}

// Fetcher lấy một trang với query đã gộp bộ lọc, page và size
type Fetcher[T Row] func(ctx context.Context, q url.Values) (model.Page[T], error)

type Snapshot[T Row] struct {
	Rows          []T               `json:"rows"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalPages    int               `json:"totalPages"`
	TotalElements int64             `json:"totalElements"`
	Filter        map[string]string `json:"filter"`
	Selected      []int64           `json:"selected"`
	Loading       bool              `json:"loading"`
	Message       string            `json:"message,omitempty"`
	Error         string            `json:"error,omitempty"`
	Generation    int64             `json:"generation"`
}

type options struct {
	clock    clockwork.Clock
	pageSize int
}

type Option func(*options)

func WithClock(clock clockwork.Clock) Option {
	return func(o *options) { o.clock = clock }
}

func WithPageSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.pageSize = size
		}
	}
}

// Controller giữ trạng thái một bảng quản trị: bộ lọc, trang, lựa chọn và dữ liệu.
// Mỗi lần tải mang một generation; chỉ kết quả của generation mới nhất được áp dụng.
type Controller[T Row] struct {
	ctx    context.Context
	clock  clockwork.Clock
	fields map[string]FieldSpec
	fetch  Fetcher[T]

	mu            sync.Mutex
	filter        map[string]string
	pending       map[string]string
	timer         clockwork.Timer
	page          int
	size          int
	rows          []T
	totalPages    int
	totalElements int64
	selected      map[int64]struct{}
	generation    int64
	loading       bool
	loaded        bool
	errMsg        string
	onChange      func(Snapshot[T])

	notifyMu sync.Mutex
	inflight sync.WaitGroup
}

func New[T Row](ctx context.Context, fields []FieldSpec, fetch Fetcher[T], opts ...Option) *Controller[T] {
	o := options{clock: clockwork.NewRealClock(), pageSize: 20}
	for _, opt := range opts {
		opt(&o)
	}
	specs := make(map[string]FieldSpec, len(fields))
	for _, f := range fields {
		specs[f.Name] = f
	}
	return &Controller[T]{
		ctx:      ctx,
		clock:    o.clock,
		fields:   specs,
		fetch:    fetch,
		filter:   map[string]string{},
		pending:  map[string]string{},
		size:     o.pageSize,
		selected: map[int64]struct{}{},
	}
}

// OnChange đăng ký hàm nhận snapshot mỗi khi trạng thái đổi
func (c *Controller[T]) OnChange(fn func(Snapshot[T])) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *Controller[T]) Load() {
	c.mu.Lock()
	c.loaded = true
	c.startFetchLocked()
	c.mu.Unlock()
	c.notify()
}

// SetFilter ghi nhận một lần gõ phím; bộ lọc chỉ được gộp khi hết thời gian chờ
func (c *Controller[T]) SetFilter(field, value string) error {
	spec, ok := c.fields[field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if err := spec.Check(value); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[field] = value
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = c.clock.AfterFunc(spec.Kind.Debounce(), c.flushFilter)
	return nil
}

func (c *Controller[T]) flushFilter() {
	c.mu.Lock()
	if len(c.pending) == 0 {
		c.mu.Unlock()
		return
	}
	next := maps.Clone(c.filter)
	for k, v := range c.pending {
		if v == "" {
			delete(next, k)
		} else {
			next[k] = v
		}
	}
	clear(c.pending)
	if maps.Equal(next, c.filter) {
		c.mu.Unlock()
		return
	}
	c.filter = next
	c.page = 0
	clear(c.selected)
	c.loaded = true
	c.startFetchLocked()
	c.mu.Unlock()
	c.notify()
}

func (c *Controller[T]) SetPage(page int) error {
	if page < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	c.mu.Lock()
	c.page = page
	clear(c.selected)
	c.loaded = true
	c.startFetchLocked()
	c.mu.Unlock()
	c.notify()
	return nil
}

func (c *Controller[T]) Select(id int64, on bool) {
	c.mu.Lock()
	if on {
		c.selected[id] = struct{}{}
	} else {
		delete(c.selected, id)
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Controller[T]) SelectAll() {
	c.mu.Lock()
	for _, r := range c.rows {
		c.selected[r.RowID()] = struct{}{}
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Controller[T]) ClearSelection() {
	c.mu.Lock()
	clear(c.selected)
	c.mu.Unlock()
	c.notify()
}

func (c *Controller[T]) Selected() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedLocked()
}

func (c *Controller[T]) selectedLocked() []int64 {
	ids := make([]int64, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Apply áp một thay đổi đã được máy chủ xác nhận vào trang hiện tại
func (c *Controller[T]) Apply(d Delta[T]) {
	c.mu.Lock()
	switch d.Kind {
	case DeltaPatch:
		for i, r := range c.rows {
			if r.RowID() == d.ID {
				c.rows[i] = d.Row
				break
			}
		}
	case DeltaRemove:
		before := len(c.rows)
		c.rows = slices.DeleteFunc(c.rows, func(r T) bool { return r.RowID() == d.ID })
		if len(c.rows) < before && c.totalElements > 0 {
			c.totalElements--
		}
		delete(c.selected, d.ID)
	case DeltaRefetch:
		c.refetchLocked()
	}
	c.mu.Unlock()
	c.notify()
}

// Mutate chạy một thao tác đơn lẻ rồi áp delta trả về
func (c *Controller[T]) Mutate(ctx context.Context, fn func(ctx context.Context) (Delta[T], error)) error {
	d, err := fn(ctx)
	if err != nil {
		c.fail(client.Describe(err, constants.ERROR_UPDATE))
		return err
	}
	c.mu.Lock()
	c.errMsg = ""
	c.mu.Unlock()
	c.Apply(d)
	return nil
}

// Bulk gọi fn đúng một lần cho mỗi id, chờ tất cả xong rồi tải lại trang nếu trang đã được tải.
// Lựa chọn chỉ bị xoá khi mọi id đều thành công.
func (c *Controller[T]) Bulk(ctx context.Context, ids []int64, confirmed bool, fn func(ctx context.Context, id int64) error) (BulkReport, error) {
	if !confirmed {
		return BulkReport{}, ErrConfirmationRequired
	}
	report := RunBulk(ctx, ids, fn)

	c.mu.Lock()
	if report.OK() {
		clear(c.selected)
	}
	c.refetchLocked()
	c.mu.Unlock()
	c.notify()
	return report, nil
}

func (c *Controller[T]) fail(msg string) {
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
	c.notify()
}

// Wait chờ các lần tải đang chạy kết thúc
func (c *Controller[T]) Wait() {
	c.inflight.Wait()
}

// Close gỡ hàm nhận snapshot. Khi Close trả về, không còn lời gọi onChange nào đang chạy hoặc sẽ chạy.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.onChange = nil
	c.mu.Unlock()

	c.notifyMu.Lock()
	c.notifyMu.Unlock()
}

func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller[T]) snapshotLocked() Snapshot[T] {
	s := Snapshot[T]{
		Rows:          slices.Clone(c.rows),
		Page:          c.page,
		Size:          c.size,
		TotalPages:    c.totalPages,
		TotalElements: c.totalElements,
		Filter:        maps.Clone(c.filter),
		Selected:      c.selectedLocked(),
		Loading:       c.loading,
		Error:         c.errMsg,
		Generation:    c.generation,
	}
	switch {
	case c.loading:
		s.Message = constants.LOADING
	case len(c.rows) == 0 && c.errMsg == "":
		s.Message = constants.EMPTY_LIST
	}
	return s
}

func (c *Controller[T]) queryLocked() url.Values {
	q := url.Values{}
	for k, v := range c.filter {
		q.Set(k, v)
	}
	q.Set("page", strconv.Itoa(c.page))
	q.Set("size", strconv.Itoa(c.size))
	return q
}

// refetchLocked chỉ tải lại khi đã có trang để làm mới
func (c *Controller[T]) refetchLocked() {
	if c.loaded {
		c.startFetchLocked()
	}
}

func (c *Controller[T]) startFetchLocked() {
	c.generation++
	gen := c.generation
	q := c.queryLocked()
	c.loading = true

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		page, err := c.fetch(c.ctx, q)
		c.finish(gen, page, err)
	}()
}

func (c *Controller[T]) finish(gen int64, page model.Page[T], err error) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.loading = false
	if err != nil {
		c.errMsg = client.Describe(err, constants.ERROR_LOAD_LIST)
	} else {
		c.rows = page.Content
		c.totalPages = page.TotalPages
		c.totalElements = page.TotalElements
		c.errMsg = ""
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Controller[T]) notify() {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.mu.Lock()
	snap := c.snapshotLocked()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}
