package dbtypes

import "testing"

func TestColorSummariesScanNil(t *testing.T) {
	var c ColorSummaries
	if err := c.Scan(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c) != 0 {
		t.Fatalf("expected empty slice, got %v", c)
	}
}

func TestColorSummariesRoundTrip(t *testing.T) {
	url := "https://cdn.mercaline.test/red.jpg"
	code := "#ff0000"
	in := ColorSummaries{{Color: "Red", ColorCode: &code, PrimaryImage: &url, ImageCount: 3}}

	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var out ColorSummaries
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(out) != 1 || out[0].Color != "Red" || out[0].ImageCount != 3 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if out[0].PrimaryImage == nil || *out[0].PrimaryImage != url {
		t.Fatalf("primary image mismatch: %+v", out[0].PrimaryImage)
	}
	if out[0].ColorCode == nil || *out[0].ColorCode != code {
		t.Fatalf("color code mismatch: %+v", out[0].ColorCode)
	}
}

func TestSizeSummariesScanBytes(t *testing.T) {
	var s SizeSummaries
	if err := s.Scan([]byte(`[{"size":"S","size_type":"US"},{"size":"XL","size_type":"US"}]`)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(s) != 2 || s[1].Size != "XL" || s[1].SizeType != "US" {
		t.Fatalf("unexpected result: %v", s)
	}
}

func TestSizeSummariesScanUnsupportedType(t *testing.T) {
	var s SizeSummaries
	if err := s.Scan(42); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}
