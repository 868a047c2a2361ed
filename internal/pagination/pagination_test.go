package pagination

import "testing"

func TestDefaults(t *testing.T) {
	p := PageRequest{}
	p.Defaults()
	if p.Page != 1 || p.PageSize != DefaultPageSize {
		t.Errorf("expected 1/%d, got %d/%d", DefaultPageSize, p.Page, p.PageSize)
	}

	p = PageRequest{Page: 3, PageSize: 500}
	p.Defaults()
	if p.PageSize != MaxPageSize {
		t.Errorf("expected page size capped at %d, got %d", MaxPageSize, p.PageSize)
	}
	if p.Offset() != 200 {
		t.Errorf("expected offset 200, got %d", p.Offset())
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[int](nil, 1, 2, 5)
	if resp.Data == nil {
		t.Error("expected empty slice, got nil")
	}
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.TotalPages)
	}

	resp = NewPageResponse([]int{}, 1, 0, 5)
	if resp.TotalPages != 0 {
		t.Errorf("expected 0 pages for zero page size, got %d", resp.TotalPages)
	}
}
