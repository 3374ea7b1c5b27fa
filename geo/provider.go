package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sixthsoul_bff/model"
)

var ErrUnknownUnit = errors.New("administrative unit not found")

// Provider cung cấp danh mục tỉnh, quận/huyện, phường/xã
type Provider interface {
	Provinces(ctx context.Context) ([]model.GeoOption, error)
	Districts(ctx context.Context, provinceCode int) ([]model.GeoOption, error)
	Wards(ctx context.Context, districtCode int) ([]model.GeoOption, error)
}

// HTTPProvider gọi API địa giới hành chính công khai (provinces.open-api.vn)
type HTTPProvider struct {
	baseURL string
	http    *http.Client
}

func NewHTTPProvider(baseURL string, httpClient *http.Client) *HTTPProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPProvider{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type unit struct {
	Code      int    `json:"code"`
	Name      string `json:"name"`
	Districts []unit `json:"districts"`
	Wards     []unit `json:"wards"`
}

func toOptions(units []unit) []model.GeoOption {
	out := make([]model.GeoOption, len(units))
	for i, u := range units {
		out[i] = model.GeoOption{Code: u.Code, Name: u.Name}
	}
	return out
}

func (p *HTTPProvider) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "SixthSoulBFF/1.0")

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call geo API %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrUnknownUnit, path)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geo API %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode geo response %s: %w", path, err)
	}
	return nil
}

func (p *HTTPProvider) Provinces(ctx context.Context) ([]model.GeoOption, error) {
	var units []unit
	if err := p.get(ctx, "/p/", &units); err != nil {
		return nil, err
	}
	return toOptions(units), nil
}

func (p *HTTPProvider) Districts(ctx context.Context, provinceCode int) ([]model.GeoOption, error) {
	var province unit
	if err := p.get(ctx, fmt.Sprintf("/p/%d?depth=2", provinceCode), &province); err != nil {
		return nil, err
	}
	return toOptions(province.Districts), nil
}

func (p *HTTPProvider) Wards(ctx context.Context, districtCode int) ([]model.GeoOption, error) {
	var district unit
	if err := p.get(ctx, fmt.Sprintf("/d/%d?depth=2", districtCode), &district); err != nil {
		return nil, err
	}
	return toOptions(district.Wards), nil
}
