package listing

import (
	"fmt"
	"slices"
	"strconv"
	"time"
)

type Kind int

const (
	KindText Kind = iota + 1
	KindEnum
	KindBool
	KindNumber
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindEnum:
		return "enum"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	}
	return "unknown"
}

// Debounce: ô tìm kiếm chờ lâu hơn các ô chọn
func (k Kind) Debounce() time.Duration {
	if k == KindText {
		return 400 * time.Millisecond
	}
	return 300 * time.Millisecond
}

// FieldSpec mô tả một ô lọc. Allowed chỉ dùng cho KindEnum.
type FieldSpec struct {
	Name    string   `json:"name"`
	Kind    Kind     `json:"kind"`
	Allowed []string `json:"allowed,omitempty"`
}

func Text(name string) FieldSpec { return FieldSpec{Name: name, Kind: KindText} }

func Enum(name string, allowed []string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindEnum, Allowed: allowed}
}

func Bool(name string) FieldSpec   { return FieldSpec{Name: name, Kind: KindBool} }
func Number(name string) FieldSpec { return FieldSpec{Name: name, Kind: KindNumber} }
func Date(name string) FieldSpec   { return FieldSpec{Name: name, Kind: KindDate} }

// Check kiểm tra giá trị trước khi đưa vào bộ lọc. Chuỗi rỗng nghĩa là bỏ lọc.
func (f FieldSpec) Check(value string) error {
	if value == "" {
		return nil
	}
	switch f.Kind {
	case KindText:
		return nil
	case KindEnum:
		if !slices.Contains(f.Allowed, value) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidFilter, f.Name, value)
		}
		return nil
	case KindBool:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidFilter, f.Name, value)
		}
		return nil
	case KindNumber:
		if n, err := strconv.ParseInt(value, 10, 64); err != nil || n < 0 {
			return fmt.Errorf("%w: %s=%q", ErrInvalidFilter, f.Name, value)
		}
		return nil
	case KindDate:
		if _, err := time.Parse(time.DateOnly, value); err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidFilter, f.Name, value)
		}
		return nil
	}
	return fmt.Errorf("%w: %s has unknown kind", ErrInvalidFilter, f.Name)
}
