package catalog

import "testing"

func TestParsePriceRange(t *testing.T) {
	cases := []struct {
		in       string
		min, max int64
		wantErr  bool
	}{
		{in: "all", min: 0, max: PriceNoLimit},
		{in: "0-2500", min: 0, max: 2500},
		{in: "2500-4000", min: 2500, max: 4000},
		{in: "4000-6000", min: 4000, max: 6000},
		{in: "6000-0", min: 6000, max: PriceNoLimit},
		{in: "", wantErr: true},
		{in: "2500", wantErr: true},
		{in: "a-b", wantErr: true},
		{in: "10--5", wantErr: true},
	}
	for _, tc := range cases {
		minPrice, maxPrice, err := ParsePriceRange(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParsePriceRange(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePriceRange(%q): %v", tc.in, err)
			continue
		}
		if minPrice != tc.min || maxPrice != tc.max {
			t.Errorf("ParsePriceRange(%q) = %d..%d, want %d..%d", tc.in, minPrice, maxPrice, tc.min, tc.max)
		}
	}
}

func TestParseCategory(t *testing.T) {
	if c, ok := ParseCategory("bouquet"); !ok || c != CategoryBouquet {
		t.Fatalf("ParseCategory(bouquet) = %q, %v", c, ok)
	}
	if c, ok := ParseCategory("composition"); !ok || c != CategoryComposition {
		t.Fatalf("ParseCategory(composition) = %q, %v", c, ok)
	}
	if _, ok := ParseCategory("garden"); ok {
		t.Fatal("ParseCategory(garden) must fail")
	}
}
