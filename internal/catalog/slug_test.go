package catalog

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Classic Tee", "classic-tee"},
		{"trims and collapses", "  Heavy   Duty  Jacket ", "heavy-duty-jacket"},
		{"punctuation dropped", "Kid's Shoes (2-pack)!", "kids-shoes-2-pack"},
		{"accents folded", "Café Crème Hoodie", "cafe-creme-hoodie"},
		{"underscores become hyphens", "summer_sale_tee", "summer-sale-tee"},
		{"numbers kept", "Polo 365 v2", "polo-365-v2"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.in); got != tc.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
