package banners

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mercaline/mercaline-backend/pkg/db/models"
	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
)

func TestCreateRequiresTitleAndImage(t *testing.T) {
	svc := &service{}

	cases := []struct {
		name  string
		input CreateBannerInput
	}{
		{name: "missing title", input: CreateBannerInput{ImageURL: "/public/images/banner.png"}},
		{name: "missing image", input: CreateBannerInput{Title: "Summer Sale"}},
		{name: "whitespace only", input: CreateBannerInput{Title: "   ", ImageURL: "  "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation code got %v", err)
			}
		})
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for nil repo")
	}
}

func TestNewBannerDTOMapsFields(t *testing.T) {
	link := "https://mercaline.example/sale"
	banner := &models.Banner{
		ID:        uuid.New(),
		Title:     "Summer Sale",
		ImageURL:  "/public/images/banner.png",
		LinkURL:   &link,
		Position:  3,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	dto := NewBannerDTO(banner)
	if dto.ID != banner.ID || dto.Title != banner.Title {
		t.Fatalf("unexpected dto %+v", dto)
	}
	if dto.LinkURL == nil || *dto.LinkURL != link {
		t.Fatalf("expected link url got %+v", dto.LinkURL)
	}
	if dto.Position != 3 || !dto.IsActive {
		t.Fatalf("unexpected dto %+v", dto)
	}
}
