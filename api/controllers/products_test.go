package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercaline/mercaline-backend/internal/catalog"
	"github.com/mercaline/mercaline-backend/pkg/pagination"
)

type stubCatalogService struct {
	product   *catalog.ProductDTO
	summaries *catalog.SummaryListResult
	colorPage *catalog.ColorImagesPage
	err       error

	lastListInput   catalog.ListInput
	lastIncludeAll  bool
	lastDeleteColor string
}

func (s *stubCatalogService) CreateProduct(ctx context.Context, userID uuid.UUID, input catalog.CreateProductInput) (*catalog.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) GetProduct(ctx context.Context, productID uuid.UUID, includeAllImages bool) (*catalog.ProductDTO, error) {
	s.lastIncludeAll = includeAllImages
	return s.product, s.err
}

func (s *stubCatalogService) ListSummaries(ctx context.Context, input catalog.ListInput) (*catalog.SummaryListResult, error) {
	s.lastListInput = input
	return s.summaries, s.err
}

func (s *stubCatalogService) GetImagesForColor(ctx context.Context, productID uuid.UUID, color string, page pagination.Params) (*catalog.ColorImagesPage, error) {
	return s.colorPage, s.err
}

func (s *stubCatalogService) AddImagesToColor(ctx context.Context, productID uuid.UUID, color string, colorCode *string, images []catalog.ImageInput) (*catalog.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) ReorderImages(ctx context.Context, productID uuid.UUID, color string, orderedIDs []uuid.UUID) (*catalog.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) DeleteImage(ctx context.Context, productID uuid.UUID, color string, imageID uuid.UUID) (*catalog.ProductDTO, error) {
	s.lastDeleteColor = color
	return s.product, s.err
}

func withRouteParams(req *http.Request, params map[string]string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestGetProductInvalidID(t *testing.T) {
	handler := GetProduct(&stubCatalogService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-uuid", nil)
	req = withRouteParams(req, map[string]string{"productId": "not-a-uuid"})
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetProductIncludeAllImages(t *testing.T) {
	svc := &stubCatalogService{product: &catalog.ProductDTO{ID: uuid.New(), Name: "Linen Shirt"}}
	handler := GetProduct(svc, nil)

	productID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+productID.String()+"?include_all_images=true", nil)
	req = withRouteParams(req, map[string]string{"productId": productID.String()})
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !svc.lastIncludeAll {
		t.Fatal("expected include_all_images to reach the service")
	}

	var envelope struct {
		Data catalog.ProductDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Name != "Linen Shirt" {
		t.Fatalf("expected product payload got %+v", envelope.Data)
	}
}

func TestDeleteColorImagePassesColor(t *testing.T) {
	svc := &stubCatalogService{product: &catalog.ProductDTO{ID: uuid.New()}}
	handler := DeleteColorImage(svc, nil)

	productID := uuid.New()
	imageID := uuid.New()
	req := httptest.NewRequest(http.MethodDelete,
		"/api/v1/products/"+productID.String()+"/colors/Royal%20Blue/images/"+imageID.String(), nil)
	req = withRouteParams(req, map[string]string{
		"productId": productID.String(),
		"color":     "Royal%20Blue",
		"imageId":   imageID.String(),
	})
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastDeleteColor != "Royal Blue" {
		t.Fatalf("expected unescaped color to reach the service, got %q", svc.lastDeleteColor)
	}
}

func TestListProductsBuildsFilters(t *testing.T) {
	svc := &stubCatalogService{summaries: &catalog.SummaryListResult{Items: []catalog.SummaryDTO{}}}
	handler := ListProducts(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=shirts&brand=mercal&min_price=10&max_price=50&in_stock_only=true&page=2&limit=5&sort_by=base_price&sort_order=asc", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	input := svc.lastListInput
	if input.Filters.Category == nil || *input.Filters.Category != "shirts" {
		t.Fatalf("expected category filter got %+v", input.Filters.Category)
	}
	if input.Filters.Brand == nil || *input.Filters.Brand != "mercal" {
		t.Fatalf("expected brand filter got %+v", input.Filters.Brand)
	}
	if input.Filters.MinPrice == nil || !input.Filters.MinPrice.Equal(decimalFromInt(10)) {
		t.Fatalf("expected min price 10 got %+v", input.Filters.MinPrice)
	}
	if input.Filters.MaxPrice == nil || !input.Filters.MaxPrice.Equal(decimalFromInt(50)) {
		t.Fatalf("expected max price 50 got %+v", input.Filters.MaxPrice)
	}
	if !input.Filters.InStockOnly {
		t.Fatal("expected in-stock filter set")
	}
	if input.Pagination.Page != 2 || input.Pagination.Limit != 5 {
		t.Fatalf("unexpected pagination %+v", input.Pagination)
	}
	if input.SortBy != "base_price" || input.SortOrder != "asc" {
		t.Fatalf("unexpected sort %q %q", input.SortBy, input.SortOrder)
	}
}

func decimalFromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestListProductsRejectsBadPrice(t *testing.T) {
	handler := ListProducts(&stubCatalogService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?min_price=abc", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCreateProductRequiresUser(t *testing.T) {
	handler := CreateProduct(&stubCatalogService{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
