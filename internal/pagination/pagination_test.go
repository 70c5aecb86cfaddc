package pagination

import "testing"

func TestPageRequest_Defaults(t *testing.T) {
	req := PageRequest{}
	req.Defaults()
	if req.Page != 1 || req.PageSize != DefaultPageSize {
		t.Errorf("expected 1/%d, got %d/%d", DefaultPageSize, req.Page, req.PageSize)
	}
	if req.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", req.Offset())
	}
}

func TestNewPage_Navigation(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		total   int64
		pages   int
		hasPrev bool
		hasNext bool
	}{
		{"empty", 1, 0, 0, false, false},
		{"first of three", 1, 25, 3, false, true},
		{"middle", 2, 25, 3, true, true},
		{"last", 3, 25, 3, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage[int](nil, PageRequest{Page: tt.page, PageSize: 10}, tt.total)
			if p.TotalPages != tt.pages {
				t.Errorf("expected %d pages, got %d", tt.pages, p.TotalPages)
			}
			if p.HasPrev() != tt.hasPrev || p.HasNext() != tt.hasNext {
				t.Errorf("expected prev=%v next=%v, got prev=%v next=%v", tt.hasPrev, tt.hasNext, p.HasPrev(), p.HasNext())
			}
			if p.Items == nil {
				t.Error("expected non-nil items")
			}
		})
	}
}
