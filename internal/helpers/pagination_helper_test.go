package helpers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestGetPagination(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "http://api.example.com/v1/rides", 1, DefaultPageSize},
		{"explicit values", "http://api.example.com/v1/rides?page=3&page_size=25", 3, 25},
		{"page size clamped to max", "http://api.example.com/v1/rides?page_size=500", 1, MaxPageSize},
		{"garbage falls back", "http://api.example.com/v1/rides?page=x&page_size=y", 1, DefaultPageSize},
		{"zero and negative fall back", "http://api.example.com/v1/rides?page=0&page_size=-5", 1, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := GetPagination(testContext(t, tt.target))
			if p.Page != tt.wantPage || p.PageSize != tt.wantPageSize {
				t.Errorf("GetPagination() = %+v, want page %d size %d", p, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	p := Pagination{Page: 3, PageSize: 10}
	if p.Offset() != 20 {
		t.Errorf("Offset() = %d, want 20", p.Offset())
	}
}

func TestNewPaginatedResponse(t *testing.T) {
	c := testContext(t, "http://api.example.com/v1/rides?status=completed&page=2&page_size=10")
	p := Pagination{Page: 2, PageSize: 10}

	resp := NewPaginatedResponse(c, p, 35, []string{"a", "b"})

	if resp.Count != 35 {
		t.Errorf("Count = %d, want 35", resp.Count)
	}
	if resp.TotalPages != 4 {
		t.Errorf("TotalPages = %d, want 4", resp.TotalPages)
	}
	if resp.CurrentPage != 2 || resp.PageSize != 10 {
		t.Errorf("page metadata wrong: %+v", resp)
	}

	if resp.Next == nil {
		t.Fatal("expected next link on a middle page")
	}
	if !strings.Contains(*resp.Next, "page=3") || !strings.Contains(*resp.Next, "status=completed") {
		t.Errorf("next link = %q, want page=3 with filters preserved", *resp.Next)
	}
	if !strings.Contains(*resp.Next, "api.example.com") {
		t.Errorf("next link = %q, want absolute URL", *resp.Next)
	}

	if resp.Previous == nil {
		t.Fatal("expected previous link on a middle page")
	}
	if !strings.Contains(*resp.Previous, "page=1") {
		t.Errorf("previous link = %q, want page=1", *resp.Previous)
	}
}

func TestNewPaginatedResponseEdges(t *testing.T) {
	t.Run("first page has no previous", func(t *testing.T) {
		c := testContext(t, "http://api.example.com/v1/rides")
		resp := NewPaginatedResponse(c, Pagination{Page: 1, PageSize: 10}, 15, nil)
		if resp.Previous != nil {
			t.Errorf("Previous = %v, want nil", *resp.Previous)
		}
		if resp.Next == nil {
			t.Error("expected next link")
		}
	})

	t.Run("last page has no next", func(t *testing.T) {
		c := testContext(t, "http://api.example.com/v1/rides?page=2")
		resp := NewPaginatedResponse(c, Pagination{Page: 2, PageSize: 10}, 15, nil)
		if resp.Next != nil {
			t.Errorf("Next = %v, want nil", *resp.Next)
		}
	})

	t.Run("empty result set has one page", func(t *testing.T) {
		c := testContext(t, "http://api.example.com/v1/rides")
		resp := NewPaginatedResponse(c, Pagination{Page: 1, PageSize: 10}, 0, nil)
		if resp.TotalPages != 1 {
			t.Errorf("TotalPages = %d, want 1", resp.TotalPages)
		}
		if resp.Next != nil || resp.Previous != nil {
			t.Error("expected no links for an empty set")
		}
	})
}

func TestParseFiniteFloat(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"37.7749", 37.7749, true},
		{"-122.4194", -122.4194, true},
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-Inf", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseFiniteFloat(tt.in)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ParseFiniteFloat(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
