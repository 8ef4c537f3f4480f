package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercaline/mercaline-backend/api/middleware"
	"github.com/mercaline/mercaline-backend/internal/cart"
)

type stubCartService struct {
	cart *cart.CartDTO
	err  error

	lastInput cart.AddItemInput
}

func (s *stubCartService) GetCart(ctx context.Context, userID uuid.UUID) (*cart.CartDTO, error) {
	return s.cart, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, userID uuid.UUID, input cart.AddItemInput) (*cart.CartDTO, error) {
	s.lastInput = input
	return s.cart, s.err
}

func (s *stubCartService) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*cart.CartDTO, error) {
	return s.cart, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*cart.CartDTO, error) {
	return s.cart, s.err
}

func (s *stubCartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.err
}

func withUser(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func TestAddCartItemSuccess(t *testing.T) {
	productID := uuid.New()
	svc := &stubCartService{cart: &cart.CartDTO{ID: uuid.New(), Total: decimal.NewFromInt(40)}}
	handler := AddCartItem(svc, nil)

	body := []byte(`{"product_id":"` + productID.String() + `","variant_sku":"SHIRT-M-BLK","quantity":2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withUser(req, uuid.New())
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastInput.ProductID != productID {
		t.Fatalf("expected product id %s got %s", productID, svc.lastInput.ProductID)
	}
	if svc.lastInput.VariantSKU != "SHIRT-M-BLK" || svc.lastInput.Quantity != 2 {
		t.Fatalf("unexpected input %+v", svc.lastInput)
	}

	var envelope struct {
		Success bool         `json:"success"`
		Data    cart.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success {
		t.Fatal("expected success envelope")
	}
}

func TestAddCartItemRequiresUser(t *testing.T) {
	handler := AddCartItem(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAddCartItemInvalidPayload(t *testing.T) {
	handler := AddCartItem(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader([]byte(`{"variant_sku":"SHIRT-M-BLK"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = withUser(req, uuid.New())
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
