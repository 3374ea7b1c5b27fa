package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// VND là số tiền nguyên theo đồng
type VND int64

// UnmarshalJSON chấp nhận cả số thực ("500000.0") vì API trả về BigDecimal
func (v *VND) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = 0
		return nil
	}
	data = bytes.Trim(data, `"`)
	f := json.Number(data)
	if i, err := f.Int64(); err == nil {
		*v = VND(i)
		return nil
	}
	x, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid money value: %s", string(data))
	}
	*v = VND(math.Round(x))
	return nil
}

func (v VND) String() string {
	s := strconv.FormatInt(int64(v), 10)
	neg := false
	if v < 0 {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out) + "₫"
	}
	return string(out) + "₫"
}

func MaxVND(a, b VND) VND {
	if a > b {
		return a
	}
	return b
}

func MinVND(a, b VND) VND {
	if a < b {
		return a
	}
	return b
}
