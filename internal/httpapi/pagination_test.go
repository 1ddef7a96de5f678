package httpapi

import "testing"

func TestPaginate(t *testing.T) {
	cases := []struct {
		name       string
		totalItems int
		page       int
		perPage    int
		wantPage   int
		wantTotal  int
		wantOffset int
		wantNext   bool
		wantPrev   bool
	}{
		{"first of three", 20, 1, 8, 1, 3, 0, true, false},
		{"middle", 20, 2, 8, 2, 3, 8, true, true},
		{"last partial", 20, 3, 8, 3, 3, 16, false, true},
		{"page past end clamps", 20, 9, 8, 3, 3, 16, false, true},
		{"page below one clamps", 20, 0, 8, 1, 3, 0, true, false},
		{"empty listing", 0, 1, 8, 1, 1, 0, false, false},
		{"zero per page uses default", 9, 2, 0, 2, 2, 8, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := paginate(tc.totalItems, tc.page, tc.perPage)
			if got.Page != tc.wantPage {
				t.Fatalf("Page = %d, want %d", got.Page, tc.wantPage)
			}
			if got.TotalPages != tc.wantTotal {
				t.Fatalf("TotalPages = %d, want %d", got.TotalPages, tc.wantTotal)
			}
			if got.Offset != tc.wantOffset {
				t.Fatalf("Offset = %d, want %d", got.Offset, tc.wantOffset)
			}
			if got.HasNext != tc.wantNext || got.HasPrev != tc.wantPrev {
				t.Fatalf("HasNext/HasPrev = %v/%v, want %v/%v", got.HasNext, got.HasPrev, tc.wantNext, tc.wantPrev)
			}
		})
	}
}
