package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-3); got != DefaultLimit {
		t.Fatalf("expected default limit for negative input, got %d", got)
	}
	if got := NormalizeLimit(1000); got != MaxLimit {
		t.Fatalf("expected max limit cap, got %d", got)
	}
	if got := NormalizeLimit(25); got != 25 {
		t.Fatalf("expected passthrough, got %d", got)
	}
}

func TestNormalizePageClampsToFirstPage(t *testing.T) {
	if got := NormalizePage(0); got != 1 {
		t.Fatalf("page 0 should clamp to 1, got %d", got)
	}
	if got := NormalizePage(-5); got != 1 {
		t.Fatalf("negative page should clamp to 1, got %d", got)
	}
	if got := NormalizePage(4); got != 4 {
		t.Fatalf("expected passthrough, got %d", got)
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, Limit: 10}
	if got := p.Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}

	// page 0 behaves like page 1 rather than skipping a page's worth of rows
	p = Params{Page: 0, Limit: 10}
	if got := p.Offset(); got != 0 {
		t.Fatalf("expected offset 0 for clamped page, got %d", got)
	}
}

func TestMetaFor(t *testing.T) {
	meta := MetaFor(Params{Page: 1, Limit: 6}, 6)
	if meta.TotalPages != 1 {
		t.Fatalf("expected 1 total page, got %d", meta.TotalPages)
	}

	meta = MetaFor(Params{Page: 2, Limit: 6}, 7)
	if meta.TotalPages != 2 {
		t.Fatalf("expected 2 total pages, got %d", meta.TotalPages)
	}
	if meta.Count != 7 || meta.Limit != 6 || meta.Page != 2 {
		t.Fatalf("unexpected meta %+v", meta)
	}

	meta = MetaFor(Params{Page: 1, Limit: 10}, 0)
	if meta.TotalPages != 0 {
		t.Fatalf("expected 0 total pages for empty set, got %d", meta.TotalPages)
	}
}
