package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mercaline/mercaline-backend/internal/catalog"
	"github.com/mercaline/mercaline-backend/pkg/config"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
	"github.com/mercaline/mercaline-backend/pkg/storage/imagestore"
)

var (
	colorFieldPattern = regexp.MustCompile(`^color_images\[(\d+)]\[color]$`)
	imageFilePattern  = regexp.MustCompile(`^color_images\[(\d+)]\[images]\[(\d+)]\[url]$`)
)

// ProductFormParser turns a multipart product submission into the structured
// create input. Uploaded image files are persisted through the image store and
// correlated to their color entry by the indexed field names
// (color_images[i][images][j][url]).
type ProductFormParser struct {
	store     *imagestore.Store
	maxMemory int64
}

func NewProductFormParser(store *imagestore.Store, cfg config.MediaConfig) *ProductFormParser {
	return &ProductFormParser{
		store:     store,
		maxMemory: cfg.MaxUploadBytes(),
	}
}

// Parse reads the multipart form and assembles the create input. Files whose
// field name does not match any declared color entry land on an auto-created
// placeholder entry with an empty color name.
func (p *ProductFormParser) Parse(r *http.Request) (catalog.CreateProductInput, error) {
	if err := r.ParseMultipartForm(p.maxMemory); err != nil {
		return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	form := r.MultipartForm
	if form == nil {
		return catalog.CreateProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "empty multipart form")
	}

	input := catalog.CreateProductInput{
		Name:             strings.TrimSpace(formValue(form, "name")),
		Description:      formValue(form, "description"),
		ShortDescription: formValuePtr(form, "short_description"),
		Category:         strings.TrimSpace(formValue(form, "category")),
		Subcategory:      formValuePtr(form, "subcategory"),
		Brand:            strings.TrimSpace(formValue(form, "brand")),
		MetaTitle:        formValuePtr(form, "meta_title"),
		MetaDescription:  formValuePtr(form, "meta_description"),
		Status:           formValuePtr(form, "status"),
	}

	if raw := formValue(form, "base_price"); raw != "" {
		price, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid base_price")
		}
		input.BasePrice = &price
	}

	if raw := formValue(form, "tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &input.Tags); err != nil {
			return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tags")
		}
	}

	if raw := formValue(form, "variants"); raw != "" {
		var variants []createVariantRequest
		if err := json.Unmarshal([]byte(raw), &variants); err != nil {
			return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variants")
		}
		for _, v := range variants {
			input.Variants = append(input.Variants, catalog.VariantInput{
				SKU:               strings.TrimSpace(v.SKU),
				Size:              strings.TrimSpace(v.Size),
				Color:             strings.TrimSpace(v.Color),
				Price:             v.Price,
				CompareAtPrice:    v.CompareAtPrice,
				StockQuantity:     v.StockQuantity,
				LowStockThreshold: v.LowStockThreshold,
				Status:            v.Status,
				WeightGrams:       v.WeightGrams,
				LengthCM:          v.LengthCM,
				WidthCM:           v.WidthCM,
				HeightCM:          v.HeightCM,
			})
		}
	}

	colorImages, err := p.buildColorImages(r, form)
	if err != nil {
		return catalog.CreateProductInput{}, err
	}
	input.ColorImages = colorImages

	return input, nil
}

func (p *ProductFormParser) buildColorImages(r *http.Request, form *multipart.Form) ([]catalog.ColorImageInput, error) {
	entries := map[int]*catalog.ColorImageInput{}

	// color_images can arrive as one JSON field instead of indexed text fields
	if raw := formValue(form, "color_images"); raw != "" {
		var declared []createColorImageRequest
		if err := json.Unmarshal([]byte(raw), &declared); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid color_images")
		}
		for i, entry := range declared {
			images := make([]catalog.ImageInput, 0, len(entry.Images))
			for _, img := range entry.Images {
				images = append(images, img.toImageInput())
			}
			entries[i] = &catalog.ColorImageInput{
				Color:     strings.TrimSpace(entry.Color),
				ColorCode: entry.ColorCode,
				Images:    images,
			}
		}
	} else {
		for key := range form.Value {
			match := colorFieldPattern.FindStringSubmatch(key)
			if match == nil {
				continue
			}
			index, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			entries[index] = &catalog.ColorImageInput{
				Color:     strings.TrimSpace(formValue(form, key)),
				ColorCode: formValuePtr(form, "color_images["+match[1]+"][color_code]"),
			}
		}
	}

	for fieldName, headers := range form.File {
		match := imageFilePattern.FindStringSubmatch(fieldName)
		if match == nil {
			continue
		}
		colorIndex, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		entry, ok := entries[colorIndex]
		if !ok {
			entry = &catalog.ColorImageInput{}
			entries[colorIndex] = entry
		}

		for _, header := range headers {
			image, err := p.saveUpload(r, header)
			if err != nil {
				return nil, err
			}

			prefix := "color_images[" + match[1] + "][images][" + match[2] + "]"
			image.IsPrimary = formValue(form, prefix+"[is_primary]") == "true"
			image.AltText = formValuePtr(form, prefix+"[alt_text]")
			if imageType := formValue(form, prefix+"[image_type]"); imageType != "" {
				image.ImageType = imageType
			}
			if raw := formValue(form, prefix+"[sort_order]"); raw != "" {
				if order, err := strconv.Atoi(raw); err == nil {
					image.SortOrder = &order
				}
			}

			entry.Images = append(entry.Images, image)
		}
	}

	indexes := make([]int, 0, len(entries))
	for index := range entries {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)

	result := make([]catalog.ColorImageInput, 0, len(entries))
	for _, index := range indexes {
		entry := entries[index]
		if len(entry.Images) == 0 && entry.Color == "" {
			continue
		}
		result = append(result, *entry)
	}
	return result, nil
}

func (p *ProductFormParser) saveUpload(r *http.Request, header *multipart.FileHeader) (catalog.ImageInput, error) {
	file, err := header.Open()
	if err != nil {
		return catalog.ImageInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return catalog.ImageInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading upload")
	}

	contentType := header.Header.Get("Content-Type")
	url, err := p.store.Save(r.Context(), data, contentType)
	if err != nil {
		if errors.Is(err, imagestore.ErrUnsupportedType) || errors.Is(err, imagestore.ErrTooLarge) {
			return catalog.ImageInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "rejected upload")
		}
		return catalog.ImageInput{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing upload")
	}

	size := header.Size
	image := catalog.ImageInput{
		URL:       url,
		ImageType: "main",
		FileSize:  &size,
	}
	if _, format, found := strings.Cut(contentType, "/"); found && format != "" {
		image.Format = &format
	}
	return image, nil
}

func formValue(form *multipart.Form, key string) string {
	values := form.Value[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func formValuePtr(form *multipart.Form, key string) *string {
	values := form.Value[key]
	if len(values) == 0 {
		return nil
	}
	value := values[0]
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
