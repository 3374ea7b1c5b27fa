package geo

import (
	"strings"

	"github.com/gosimple/slug"

	"sixthsoul_bff/model"
)

// tiền tố hành chính, dài trước ngắn sau
var unitPrefixes = []string{
	"thanh-pho-", "thi-tran-", "thi-xa-", "tinh-", "quan-", "huyen-", "phuong-", "xa-", "tp-",
}

var abbreviations = strings.NewReplacer(
	"TP.", "Thành phố ",
	"Tp.", "Thành phố ",
	"Q.", "Quận ",
	"P.", "Phường ",
	"H.", "Huyện ",
	"TX.", "Thị xã ",
)

// NormalizeName đưa tên đơn vị hành chính về dạng so khớp: bỏ dấu, bỏ tiền tố, bỏ số 0 đầu
func NormalizeName(name string) string {
	s := slug.Make(abbreviations.Replace(strings.TrimSpace(name)))
	for _, p := range unitPrefixes {
		if strings.HasPrefix(s, p) && len(s) > len(p) {
			s = s[len(p):]
			break
		}
	}
	if isDigits(s) {
		s = strings.TrimLeft(s, "0")
		if s == "" {
			s = "0"
		}
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Find tìm theo mã nếu có, nếu không có mã hoặc mã không khớp thì so khớp theo tên
func Find(options []model.GeoOption, code *int, name string) (model.GeoOption, bool) {
	if code != nil {
		for _, o := range options {
			if o.Code == *code {
				return o, true
			}
		}
	}
	want := NormalizeName(name)
	if want == "" {
		return model.GeoOption{}, false
	}
	for _, o := range options {
		if NormalizeName(o.Name) == want {
			return o, true
		}
	}
	return model.GeoOption{}, false
}
