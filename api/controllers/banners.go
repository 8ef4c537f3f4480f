package controllers

import (
	"net/http"
	"strings"

	"github.com/mercaline/mercaline-backend/api/responses"
	"github.com/mercaline/mercaline-backend/api/validators"
	"github.com/mercaline/mercaline-backend/internal/banners"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
	"github.com/mercaline/mercaline-backend/pkg/logger"
)

type createBannerRequest struct {
	Title    string  `json:"title" validate:"required"`
	ImageURL string  `json:"image_url" validate:"required"`
	LinkURL  *string `json:"link_url,omitempty"`
	Position *int    `json:"position,omitempty" validate:"omitempty,min=0"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type updateBannerRequest struct {
	Title    *string `json:"title,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
	LinkURL  *string `json:"link_url,omitempty"`
	Position *int    `json:"position,omitempty" validate:"omitempty,min=0"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ListBanners serves active banners by default; all=true includes hidden ones.
func ListBanners(svc banners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "banner service unavailable"))
			return
		}

		var (
			list []banners.BannerDTO
			err  error
		)
		if validators.ParseQueryBool(r, "all") {
			list, err = svc.ListAll(r.Context())
		} else {
			list, err = svc.ListActive(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "banners retrieved", list)
	}
}

func GetBanner(svc banners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "banner service unavailable"))
			return
		}

		id, err := parseIDParam(r, "bannerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		banner, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "banner retrieved", banner)
	}
}

func CreateBanner(svc banners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "banner service unavailable"))
			return
		}

		var body createBannerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		banner, err := svc.Create(r.Context(), banners.CreateBannerInput{
			Title:    strings.TrimSpace(body.Title),
			ImageURL: strings.TrimSpace(body.ImageURL),
			LinkURL:  body.LinkURL,
			Position: body.Position,
			IsActive: body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, "banner created", banner)
	}
}

func UpdateBanner(svc banners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "banner service unavailable"))
			return
		}

		id, err := parseIDParam(r, "bannerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateBannerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		banner, err := svc.Update(r.Context(), id, banners.UpdateBannerInput{
			Title:    body.Title,
			ImageURL: body.ImageURL,
			LinkURL:  body.LinkURL,
			Position: body.Position,
			IsActive: body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "banner updated", banner)
	}
}

func DeleteBanner(svc banners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "banner service unavailable"))
			return
		}

		id, err := parseIDParam(r, "bannerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "banner deleted", nil)
	}
}
