package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ColorSummary is one entry of a product's denormalized available_colors column.
type ColorSummary struct {
	Color        string  `json:"color"`
	ColorCode    *string `json:"color_code"`
	PrimaryImage *string `json:"primary_image"`
	ImageCount   int     `json:"image_count"`
}

// ColorSummaries is stored as a jsonb array on the products table.
type ColorSummaries []ColorSummary

func (c *ColorSummaries) Scan(src any) error {
	return scanJSON(src, c, "ColorSummaries")
}

func (c ColorSummaries) Value() (driver.Value, error) {
	return marshalJSON(c)
}

// SizeSummary wraps a distinct variant size with its sizing system.
type SizeSummary struct {
	Size     string `json:"size"`
	SizeType string `json:"size_type"`
}

// SizeSummaries is stored as a jsonb array on the products table.
type SizeSummaries []SizeSummary

func (s *SizeSummaries) Scan(src any) error {
	return scanJSON(src, s, "SizeSummaries")
}

func (s SizeSummaries) Value() (driver.Value, error) {
	return marshalJSON(s)
}

func scanJSON(src, dst any, name string) error {
	if src == nil {
		return json.Unmarshal([]byte("[]"), dst)
	}
	switch v := src.(type) {
	case []byte:
		if len(v) == 0 {
			return json.Unmarshal([]byte("[]"), dst)
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return json.Unmarshal([]byte("[]"), dst)
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("%s: unsupported Scan type %T", name, src)
	}
}

func marshalJSON(v any) (driver.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}
