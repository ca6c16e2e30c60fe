package pagination_test

import (
	"net/url"
	"testing"

	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/pagination"
)

func testConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"valid values untouched", 2, 50, 2, 50},
		{"zero page clamped", 0, 20, 1, 20},
		{"negative page clamped", -3, 20, 1, 20},
		{"zero size gets default", 1, 0, 1, 20},
		{"oversized clamped to max", 1, 500, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pagination.PageRequest{Page: tt.page, PageSize: tt.pageSize}
			req.Normalize(testConfig())

			if req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", req.Page, tt.wantPage)
			}
			if req.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 10}
	if req.Offset() != 20 {
		t.Errorf("Offset() = %d, want 20", req.Offset())
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "2")
	values.Set("page_size", "10")
	values.Set("search", "calc")
	values.Set("sort", "name,-created_at")

	req := pagination.PageRequestFromQuery(values, testConfig())

	if req.Page != 2 || req.PageSize != 10 {
		t.Errorf("page/page_size = %d/%d, want 2/10", req.Page, req.PageSize)
	}
	if req.Search == nil || *req.Search != "calc" {
		t.Errorf("Search = %v, want calc", req.Search)
	}
	if len(req.Sort) != 2 {
		t.Fatalf("len(Sort) = %d, want 2", len(req.Sort))
	}
	if req.Sort[1].Field != "created_at" || !req.Sort[1].Descending {
		t.Errorf("Sort[1] = %+v, want descending created_at", req.Sort[1])
	}
}

func TestPageRequestFromQuery_EmptyNormalized(t *testing.T) {
	req := pagination.PageRequestFromQuery(url.Values{}, testConfig())

	if req.Page != 1 || req.PageSize != 20 {
		t.Errorf("page/page_size = %d/%d, want 1/20", req.Page, req.PageSize)
	}
	if req.Search != nil {
		t.Errorf("Search = %v, want nil", req.Search)
	}
	if req.Sort != nil {
		t.Errorf("Sort = %v, want nil", req.Sort)
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		pageSize  int
		wantPages int
	}{
		{"exact pages", 40, 20, 2},
		{"partial last page", 45, 20, 3},
		{"empty never below one", 0, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{}, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantPages)
			}
		})
	}
}

func TestNewPageResult_NilDataBecomesEmptySlice(t *testing.T) {
	result := pagination.NewPageResult[string](nil, 0, 1, 20)
	if result.Data == nil {
		t.Error("Data = nil, want empty slice")
	}
}

func TestConfigFinalize(t *testing.T) {
	var cfg pagination.Config
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.DefaultPageSize != 20 {
		t.Errorf("DefaultPageSize = %d, want 20", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100", cfg.MaxPageSize)
	}
}

func TestConfigFinalize_EnvOverride(t *testing.T) {
	t.Setenv(pagination.EnvPaginationDefaultPageSize, "5")
	t.Setenv(pagination.EnvPaginationMaxPageSize, "50")

	var cfg pagination.Config
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.DefaultPageSize != 5 || cfg.MaxPageSize != 50 {
		t.Errorf("sizes = %d/%d, want 5/50", cfg.DefaultPageSize, cfg.MaxPageSize)
	}
}

func TestConfigValidate_DefaultExceedsMax(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	if err := cfg.Finalize(); err == nil {
		t.Error("Finalize() error = nil, want validation failure")
	}
}

func TestConfigMerge(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	cfg.Merge(&pagination.Config{DefaultPageSize: 10})

	if cfg.DefaultPageSize != 10 {
		t.Errorf("DefaultPageSize = %d, want 10", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100 (zero overlay ignored)", cfg.MaxPageSize)
	}
}
