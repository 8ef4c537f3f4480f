package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/mercaline/mercaline-backend/pkg/db/models"
	"github.com/mercaline/mercaline-backend/pkg/enums"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
)

// BuildGallery validates the structured color image payloads and turns them
// into persistable gallery entries. Entries with no images and no color name
// are dropped; every surviving entry must carry a non-empty color name and
// every image a non-empty URL. The returned entries are already finalized.
func BuildGallery(inputs []ColorImageInput) ([]models.ColorImage, error) {
	entries := make([]models.ColorImage, 0, len(inputs))

	for i, in := range inputs {
		color := strings.TrimSpace(in.Color)
		if len(in.Images) == 0 && color == "" {
			continue
		}
		if color == "" {
			return nil, pkgerrors.New(
				pkgerrors.CodeValidation,
				fmt.Sprintf("color_images[%d]: color name is required", i),
			).WithDetails(map[string]any{"index": i})
		}

		images, err := buildImages(in.Images, i)
		if err != nil {
			return nil, err
		}

		entries = append(entries, models.ColorImage{
			Color:     color,
			ColorCode: in.ColorCode,
			Images:    images,
		})
	}

	for i := range entries {
		FinalizeGalleryEntry(&entries[i])
	}

	return entries, nil
}

func buildImages(inputs []ImageInput, colorIndex int) ([]models.ProductImage, error) {
	images := make([]models.ProductImage, 0, len(inputs))
	for j, in := range inputs {
		url := strings.TrimSpace(in.URL)
		if url == "" {
			return nil, pkgerrors.New(
				pkgerrors.CodeValidation,
				fmt.Sprintf("color_images[%d].images[%d]: url is required", colorIndex, j),
			).WithDetails(map[string]any{"color_index": colorIndex, "image_index": j})
		}

		imageType := enums.ImageTypeMain
		if in.ImageType != "" {
			parsed, err := enums.ParseImageType(in.ImageType)
			if err != nil {
				return nil, pkgerrors.New(
					pkgerrors.CodeValidation,
					fmt.Sprintf("color_images[%d].images[%d]: %s", colorIndex, j, err.Error()),
				).WithDetails(map[string]any{"color_index": colorIndex, "image_index": j})
			}
			imageType = parsed
		}

		sortOrder := 0
		if in.SortOrder != nil {
			sortOrder = *in.SortOrder
		}

		images = append(images, models.ProductImage{
			URL:       url,
			AltText:   in.AltText,
			ImageType: imageType,
			IsPrimary: in.IsPrimary,
			SortOrder: sortOrder,
			Width:     in.Width,
			Height:    in.Height,
			FileSize:  in.FileSize,
			Format:    in.Format,
		})
	}
	return images, nil
}

// FinalizeGalleryEntry sorts the entry's images ascending by sort_order and
// selects the primary image: the one flagged is_primary, falling back to the
// first image. Both primary_image and thumbnail point at that URL. An entry
// with zero images gets nil for both.
func FinalizeGalleryEntry(entry *models.ColorImage) {
	sortImagesByOrder(entry.Images)

	if len(entry.Images) == 0 {
		entry.PrimaryImage = nil
		entry.Thumbnail = nil
		return
	}

	primary := entry.Images[0].URL
	for _, img := range entry.Images {
		if img.IsPrimary {
			primary = img.URL
			break
		}
	}
	entry.PrimaryImage = &primary
	entry.Thumbnail = &primary
}

// AppendImages adds images to a persisted color entry. Images without an
// explicit sort_order continue from the current maximum, preserving their
// position in the submission. The primary pointer moves when an incoming
// image is flagged primary or when the entry had none.
func AppendImages(entry *models.ColorImage, inputs []ImageInput) error {
	images, err := buildImages(inputs, 0)
	if err != nil {
		return err
	}

	maxOrder := 0
	for _, img := range entry.Images {
		if img.SortOrder > maxOrder {
			maxOrder = img.SortOrder
		}
	}

	for i := range images {
		if inputs[i].SortOrder == nil {
			images[i].SortOrder = maxOrder + i + 1
		}
		images[i].ColorImageID = entry.ID
		entry.Images = append(entry.Images, images[i])

		if images[i].IsPrimary || entry.PrimaryImage == nil {
			url := images[i].URL
			entry.PrimaryImage = &url
		}
	}

	sortImagesByOrder(entry.Images)
	return nil
}

// ReorderImages reassigns sort_order = position+1 following the supplied id
// order. Ids that are not part of the entry are silently ignored.
func ReorderImages(entry *models.ColorImage, orderedIDs []uuid.UUID) {
	positions := make(map[uuid.UUID]int, len(orderedIDs))
	for pos, id := range orderedIDs {
		positions[id] = pos + 1
	}

	for i := range entry.Images {
		if pos, ok := positions[entry.Images[i].ID]; ok {
			entry.Images[i].SortOrder = pos
		}
	}

	sortImagesByOrder(entry.Images)
}

// DeleteImage removes the image from the entry and reassigns the primary
// pointer when the removed image was the primary: the new first image by
// sort_order takes over, or nil when the entry is now empty. The removed row
// is returned so the caller can delete its persistence and stored file.
func DeleteImage(entry *models.ColorImage, imageID uuid.UUID) (*models.ProductImage, error) {
	idx := -1
	for i := range entry.Images {
		if entry.Images[i].ID == imageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
	}

	removed := entry.Images[idx]
	entry.Images = append(entry.Images[:idx], entry.Images[idx+1:]...)
	sortImagesByOrder(entry.Images)

	if entry.PrimaryImage != nil && *entry.PrimaryImage == removed.URL {
		if len(entry.Images) == 0 {
			entry.PrimaryImage = nil
		} else {
			url := entry.Images[0].URL
			entry.PrimaryImage = &url
		}
	}

	return &removed, nil
}

func sortImagesByOrder(images []models.ProductImage) {
	sort.SliceStable(images, func(a, b int) bool {
		return images[a].SortOrder < images[b].SortOrder
	})
}
