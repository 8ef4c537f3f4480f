package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/mercaline/mercaline-backend/pkg/config"
	"github.com/mercaline/mercaline-backend/pkg/storage/imagestore"
)

func newTestFormParser(t *testing.T) *ProductFormParser {
	t.Helper()
	cfg := config.MediaConfig{
		UploadDir:     t.TempDir(),
		PublicBaseURL: "/public/images",
		MaxUploadMB:   1,
	}
	store, err := imagestore.New(cfg, nil)
	if err != nil {
		t.Fatalf("imagestore.New: %v", err)
	}
	return NewProductFormParser(store, cfg)
}

func buildProductForm(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	for key, data := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="`+key+`"; filename="upload.png"`)
		header.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part %s: %v", key, err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write part %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestProductFormParseCorrelatesIndexedFields(t *testing.T) {
	parser := newTestFormParser(t)

	fields := map[string]string{
		"name":       "Linen Shirt",
		"category":   "shirts",
		"brand":      "Mercaline",
		"base_price": "39.99",
		"tags":       `["summer","linen"]`,
		"variants":   `[{"sku":"SHIRT-M-BLK","size":"M","color":"Black","price":"39.99","stock_quantity":4}]`,
	}
	fields["color_images[0][color]"] = "Black"
	fields["color_images[0][color_code]"] = "#000000"
	fields["color_images[0][images][0][is_primary]"] = "true"
	fields["color_images[0][images][0][sort_order]"] = "2"
	fields["color_images[0][images][0][alt_text]"] = "front view"
	files := map[string][]byte{
		"color_images[0][images][0][url]": []byte("png-bytes"),
	}

	body, contentType := buildProductForm(t, fields, files)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set("Content-Type", contentType)

	input, err := parser.Parse(req)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if input.Name != "Linen Shirt" || input.Category != "shirts" {
		t.Fatalf("unexpected scalars %+v", input)
	}
	if input.BasePrice == nil || input.BasePrice.String() != "39.99" {
		t.Fatalf("expected base price 39.99 got %+v", input.BasePrice)
	}
	if len(input.Tags) != 2 || input.Tags[0] != "summer" {
		t.Fatalf("unexpected tags %v", input.Tags)
	}
	if len(input.Variants) != 1 || input.Variants[0].SKU != "SHIRT-M-BLK" {
		t.Fatalf("unexpected variants %+v", input.Variants)
	}

	if len(input.ColorImages) != 1 {
		t.Fatalf("expected one color entry got %d", len(input.ColorImages))
	}
	entry := input.ColorImages[0]
	if entry.Color != "Black" || entry.ColorCode == nil || *entry.ColorCode != "#000000" {
		t.Fatalf("unexpected color entry %+v", entry)
	}
	if len(entry.Images) != 1 {
		t.Fatalf("expected one image got %d", len(entry.Images))
	}
	image := entry.Images[0]
	if !strings.HasPrefix(image.URL, "/public/images/") || !strings.HasSuffix(image.URL, ".png") {
		t.Fatalf("unexpected image url %q", image.URL)
	}
	if !image.IsPrimary {
		t.Fatal("expected primary flag carried over")
	}
	if image.SortOrder == nil || *image.SortOrder != 2 {
		t.Fatalf("expected sort order 2 got %+v", image.SortOrder)
	}
	if image.AltText == nil || *image.AltText != "front view" {
		t.Fatalf("expected alt text got %+v", image.AltText)
	}
}

func TestProductFormParseOrphanFileGetsPlaceholder(t *testing.T) {
	parser := newTestFormParser(t)

	fields := map[string]string{
		"name":       "Linen Shirt",
		"category":   "shirts",
		"base_price": "39.99",
	}
	files := map[string][]byte{
		"color_images[3][images][0][url]": []byte("png-bytes"),
	}

	body, contentType := buildProductForm(t, fields, files)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set("Content-Type", contentType)

	input, err := parser.Parse(req)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(input.ColorImages) != 1 {
		t.Fatalf("expected placeholder entry got %d", len(input.ColorImages))
	}
	if input.ColorImages[0].Color != "" {
		t.Fatalf("expected empty color name got %q", input.ColorImages[0].Color)
	}
	if len(input.ColorImages[0].Images) != 1 {
		t.Fatalf("expected the orphan image attached got %d", len(input.ColorImages[0].Images))
	}
}

func TestProductFormParseRejectsUnsupportedUpload(t *testing.T) {
	parser := newTestFormParser(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="color_images[0][images][0][url]"; filename="upload.gif"`)
	header.Set("Content-Type", "image/gif")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte("gif-bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.WriteField("name", "Linen Shirt"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	if _, err := parser.Parse(req); err == nil {
		t.Fatal("expected unsupported content type error")
	}
}
