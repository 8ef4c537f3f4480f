package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mercaline/mercaline-backend/api/responses"
	"github.com/mercaline/mercaline-backend/api/validators"
	"github.com/mercaline/mercaline-backend/internal/catalog"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
	"github.com/mercaline/mercaline-backend/pkg/logger"
)

// GetColorImages serves one paginated page of a color's gallery.
func GetColorImages(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
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

		color, err := parseColorParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.GetImagesForColor(r.Context(), productID, color, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "images retrieved", result)
	}
}

type addColorImagesRequest struct {
	ColorCode *string              `json:"color_code,omitempty"`
	Images    []createImageRequest `json:"images" validate:"required,min=1,dive"`
}

// AddColorImages appends image rows to a color entry, creating the entry when
// the color is new to the product.
func AddColorImages(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
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

		color, err := parseColorParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addColorImagesRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		images := make([]catalog.ImageInput, 0, len(body.Images))
		for _, img := range body.Images {
			images = append(images, img.toImageInput())
		}

		product, err := svc.AddImagesToColor(r.Context(), productID, color, body.ColorCode, images)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "images added successfully", product)
	}
}

type imageOrderRequest struct {
	ImageOrder []string `json:"image_order" validate:"required,min=1,dive,required"`
}

// ReorderColorImages rewrites the sort order of a color's images from the
// submitted id list. Unknown ids are ignored.
func ReorderColorImages(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
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

		color, err := parseColorParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body imageOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderedIDs := make([]uuid.UUID, 0, len(body.ImageOrder))
		for _, raw := range body.ImageOrder {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid image id"))
				return
			}
			orderedIDs = append(orderedIDs, id)
		}

		product, err := svc.ReorderImages(r.Context(), productID, color, orderedIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "image order updated successfully", product)
	}
}

// DeleteColorImage removes one image from a color's gallery.
func DeleteColorImage(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
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

		color, err := parseColorParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		imageID, err := uuid.Parse(chi.URLParam(r, "imageId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid image id"))
			return
		}

		product, err := svc.DeleteImage(r.Context(), productID, color, imageID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "image deleted successfully", product)
	}
}

func parseColorParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "color")
	color, err := url.PathUnescape(raw)
	if err != nil {
		color = raw
	}
	color = strings.TrimSpace(color)
	if color == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "color is required")
	}
	return color, nil
}
