package paginate

import "testing"

func TestNewDefaults(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{"zero values", 0, 0, 1, 10},
		{"negative values", -3, -1, 1, 10},
		{"explicit values", 3, 25, 3, 25},
		{"per-page above max", 1, 500, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.page, tt.perPage)
			if p.Page() != tt.wantPage {
				t.Errorf("Page() = %d, want %d", p.Page(), tt.wantPage)
			}
			if p.PerPage() != tt.wantPerPage {
				t.Errorf("PerPage() = %d, want %d", p.PerPage(), tt.wantPerPage)
			}
		})
	}
}

func TestTotalPagesNeverZero(t *testing.T) {
	p := New(1, 10)
	if got := p.TotalPages(); got != 1 {
		t.Fatalf("TotalPages() with no total = %d, want 1", got)
	}

	p.SetTotal(95)
	if got := p.TotalPages(); got != 10 {
		t.Fatalf("TotalPages() = %d, want 10", got)
	}
}

func TestWindowBounds(t *testing.T) {
	p := New(3, 10)
	p.SetTotal(25)

	if p.From() != 21 {
		t.Errorf("From() = %d, want 21", p.From())
	}
	if p.To() != 25 {
		t.Errorf("To() = %d, want 25 (clamped to total)", p.To())
	}
	if p.HasNext() {
		t.Error("last page should not have next")
	}
	if !p.HasPrev() {
		t.Error("page 3 should have prev")
	}
}

func TestSetPageRejectsOutOfBounds(t *testing.T) {
	p := New(1, 10)
	p.SetTotal(30)

	p.SetPage(2)
	if p.Page() != 2 {
		t.Fatalf("Page() = %d, want 2", p.Page())
	}

	p.SetPage(99)
	if p.Page() != 2 {
		t.Fatalf("out-of-bounds SetPage moved the page to %d", p.Page())
	}
	p.SetPage(0)
	if p.Page() != 2 {
		t.Fatalf("SetPage(0) moved the page to %d", p.Page())
	}
}

func TestSetPerPageResetsToFirstPage(t *testing.T) {
	p := New(1, 10)
	p.SetTotal(100)
	p.SetPage(5)

	p.SetPerPage(50)
	if p.Page() != 1 {
		t.Errorf("Page() after SetPerPage = %d, want 1", p.Page())
	}
	if p.PerPage() != 50 {
		t.Errorf("PerPage() = %d, want 50", p.PerPage())
	}

	p.SetPerPage(1000)
	if p.PerPage() != MaxPerPage {
		t.Errorf("PerPage() = %d, want clamped to %d", p.PerPage(), MaxPerPage)
	}
}

func TestSetTotalPullsPageBackIntoBounds(t *testing.T) {
	p := New(1, 10)
	p.SetTotal(100)
	p.Last()
	if p.Page() != 10 {
		t.Fatalf("Last() landed on %d", p.Page())
	}

	// Collection shrank underneath us
	p.SetTotal(15)
	if p.Page() != 2 {
		t.Fatalf("Page() after shrink = %d, want 2", p.Page())
	}
}

func TestNavigationStopsAtEdges(t *testing.T) {
	p := New(1, 10)
	p.SetTotal(20)

	p.Prev()
	if p.Page() != 1 {
		t.Fatalf("Prev() on first page moved to %d", p.Page())
	}

	p.Next()
	p.Next()
	p.Next() // already on last page
	if p.Page() != 2 {
		t.Fatalf("Next() past last page moved to %d", p.Page())
	}
}

func TestReset(t *testing.T) {
	p := New(2, 20)
	p.SetTotal(200)
	p.SetPerPage(50)
	p.Next()

	p.Reset()
	if p.Page() != 2 || p.PerPage() != 20 || p.Total() != 0 {
		t.Fatalf("Reset() left page=%d perPage=%d total=%d", p.Page(), p.PerPage(), p.Total())
	}
}
