package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercaline/mercaline-backend/api/middleware"
	"github.com/mercaline/mercaline-backend/api/responses"
	"github.com/mercaline/mercaline-backend/api/validators"
	"github.com/mercaline/mercaline-backend/internal/catalog"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
	"github.com/mercaline/mercaline-backend/pkg/logger"
)

// ListProducts serves the filtered, paginated summary listing.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		minPrice, err := validators.ParseQueryDecimal(r, "min_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		maxPrice, err := validators.ParseQueryDecimal(r, "max_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.ListInput{
			Filters: catalog.SummaryFilters{
				Category:    validators.ParseQueryString(r, "category"),
				Brand:       validators.ParseQueryString(r, "brand"),
				MinPrice:    minPrice,
				MaxPrice:    maxPrice,
				InStockOnly: validators.ParseQueryBool(r, "in_stock_only"),
			},
			Pagination: page,
		}
		if sortBy := validators.ParseQueryString(r, "sort_by"); sortBy != nil {
			input.SortBy = *sortBy
		}
		if sortOrder := validators.ParseQueryString(r, "sort_order"); sortOrder != nil {
			input.SortOrder = *sortOrder
		}

		result, err := svc.ListSummaries(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "products retrieved", result)
	}
}

// GetProduct serves one product aggregate and bumps its view counter.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productID, validators.ParseQueryBool(r, "include_all_images"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "product retrieved", product)
	}
}

// CreateProduct accepts either a JSON payload or a multipart form with image
// uploads, depending on the request content type.
func CreateProduct(svc catalog.Service, forms *ProductFormParser, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input catalog.CreateProductInput
		if isMultipart(r) {
			if forms == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "form parser unavailable"))
				return
			}
			input, err = forms.Parse(r)
		} else {
			var payload createProductRequest
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input = payload.toCreateInput()
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, "product created", product)
	}
}

type createProductRequest struct {
	Name             string                    `json:"name" validate:"required"`
	Description      string                    `json:"description"`
	ShortDescription *string                   `json:"short_description,omitempty"`
	Category         string                    `json:"category" validate:"required"`
	Subcategory      *string                   `json:"subcategory,omitempty"`
	Brand            string                    `json:"brand"`
	BasePrice        *decimal.Decimal          `json:"base_price" validate:"required"`
	MetaTitle        *string                   `json:"meta_title,omitempty"`
	MetaDescription  *string                   `json:"meta_description,omitempty"`
	Tags             []string                  `json:"tags,omitempty"`
	Status           *string                   `json:"status,omitempty"`
	Variants         []createVariantRequest    `json:"variants" validate:"required,min=1,dive"`
	ColorImages      []createColorImageRequest `json:"color_images,omitempty" validate:"omitempty,dive"`
}

type createVariantRequest struct {
	SKU               string           `json:"sku" validate:"required"`
	Size              string           `json:"size" validate:"required"`
	Color             string           `json:"color" validate:"required"`
	Price             *decimal.Decimal `json:"price" validate:"required"`
	CompareAtPrice    *decimal.Decimal `json:"compare_at_price,omitempty"`
	StockQuantity     *int             `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty" validate:"omitempty,min=0"`
	Status            *string          `json:"status,omitempty"`
	WeightGrams       *float64         `json:"weight_grams,omitempty"`
	LengthCM          *float64         `json:"length_cm,omitempty"`
	WidthCM           *float64         `json:"width_cm,omitempty"`
	HeightCM          *float64         `json:"height_cm,omitempty"`
}

type createColorImageRequest struct {
	Color     string               `json:"color" validate:"required"`
	ColorCode *string              `json:"color_code,omitempty"`
	Images    []createImageRequest `json:"images" validate:"omitempty,dive"`
}

type createImageRequest struct {
	URL       string  `json:"url" validate:"required"`
	AltText   *string `json:"alt_text,omitempty"`
	ImageType string  `json:"image_type,omitempty"`
	IsPrimary bool    `json:"is_primary,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
	Width     *int    `json:"width,omitempty"`
	Height    *int    `json:"height,omitempty"`
	FileSize  *int64  `json:"file_size,omitempty"`
	Format    *string `json:"format,omitempty"`
}

func (req createProductRequest) toCreateInput() catalog.CreateProductInput {
	variants := make([]catalog.VariantInput, 0, len(req.Variants))
	for _, v := range req.Variants {
		variants = append(variants, catalog.VariantInput{
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

	colorImages := make([]catalog.ColorImageInput, 0, len(req.ColorImages))
	for _, entry := range req.ColorImages {
		images := make([]catalog.ImageInput, 0, len(entry.Images))
		for _, img := range entry.Images {
			images = append(images, img.toImageInput())
		}
		colorImages = append(colorImages, catalog.ColorImageInput{
			Color:     strings.TrimSpace(entry.Color),
			ColorCode: entry.ColorCode,
			Images:    images,
		})
	}

	return catalog.CreateProductInput{
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Category:         strings.TrimSpace(req.Category),
		Subcategory:      req.Subcategory,
		Brand:            strings.TrimSpace(req.Brand),
		BasePrice:        req.BasePrice,
		MetaTitle:        req.MetaTitle,
		MetaDescription:  req.MetaDescription,
		Tags:             req.Tags,
		Status:           req.Status,
		Variants:         variants,
		ColorImages:      colorImages,
	}
}

func (img createImageRequest) toImageInput() catalog.ImageInput {
	return catalog.ImageInput{
		URL:       strings.TrimSpace(img.URL),
		AltText:   img.AltText,
		ImageType: img.ImageType,
		IsPrimary: img.IsPrimary,
		SortOrder: img.SortOrder,
		Width:     img.Width,
		Height:    img.Height,
		FileSize:  img.FileSize,
		Format:    img.Format,
	}
}

func isMultipart(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	return strings.HasPrefix(strings.ToLower(contentType), "multipart/form-data")
}

func parseProductID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "productId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	return id, nil
}

func requireUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}
