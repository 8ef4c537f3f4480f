package enums

import "fmt"

// VariantStatus is the sellable state of a single product variant.
type VariantStatus string

const (
	VariantStatusActive       VariantStatus = "active"
	VariantStatusInactive     VariantStatus = "inactive"
	VariantStatusOutOfStock   VariantStatus = "out_of_stock"
	VariantStatusDiscontinued VariantStatus = "discontinued"
)

var validVariantStatuses = []VariantStatus{
	VariantStatusActive,
	VariantStatusInactive,
	VariantStatusOutOfStock,
	VariantStatusDiscontinued,
}

// IsValid reports whether the value matches the canonical variant status enum.
func (v VariantStatus) IsValid() bool {
	for _, candidate := range validVariantStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVariantStatus converts the raw string to VariantStatus.
func ParseVariantStatus(value string) (VariantStatus, error) {
	for _, candidate := range validVariantStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid variant status %q", value)
}
