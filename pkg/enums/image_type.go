package enums

import "fmt"

// ImageType categorizes a gallery shot by its angle or purpose.
type ImageType string

const (
	ImageTypeMain      ImageType = "main"
	ImageTypeSide      ImageType = "side"
	ImageTypeBack      ImageType = "back"
	ImageTypeDetail    ImageType = "detail"
	ImageTypeLifestyle ImageType = "lifestyle"
	ImageTypeThumbnail ImageType = "thumbnail"
)

var validImageTypes = []ImageType{
	ImageTypeMain,
	ImageTypeSide,
	ImageTypeBack,
	ImageTypeDetail,
	ImageTypeLifestyle,
	ImageTypeThumbnail,
}

// IsValid reports whether the value matches the canonical image type enum.
func (i ImageType) IsValid() bool {
	for _, candidate := range validImageTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseImageType converts the raw string to ImageType.
func ParseImageType(value string) (ImageType, error) {
	for _, candidate := range validImageTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid image type %q", value)
}
