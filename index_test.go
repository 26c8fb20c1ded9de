package flatfreeze

import (
	"testing"
	"time"

	"github.com/flatfreeze/flatfreeze/pages"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func post(path string, meta pages.Meta) *pages.Page {
	if meta == nil {
		meta = pages.Meta{}
	}
	return &pages.Page{Path: path, Meta: meta}
}

func published(path string, t time.Time) *pages.Page {
	return post(path, pages.Meta{"published": pages.DateValue(t)})
}

func paths(ps []*pages.Page) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Path
	}
	return out
}

func equalPaths(t *testing.T, got []*pages.Page, want ...string) {
	t.Helper()
	g := paths(got)
	if len(g) != len(want) {
		t.Fatalf("paths = %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("paths = %v, want %v", g, want)
		}
	}
}

func testPages() []*pages.Page {
	return []*pages.Page{
		published("old", day(2013, 1, 1)),
		post("about", nil),
		published("newest", day(2014, 6, 1)),
		post("bad-date", pages.Meta{"published": pages.StringValue("someday")}),
		published("middle", day(2014, 2, 13)),
	}
}

func TestBuildIndexFiltersAndSorts(t *testing.T) {
	got := BuildIndex(testPages())
	equalPaths(t, got, "newest", "middle", "old")

	for i := 1; i < len(got); i++ {
		prev, _ := got[i-1].Meta.Date("published")
		cur, _ := got[i].Meta.Date("published")
		if cur.After(prev) {
			t.Errorf("index not sorted: %s after %s", got[i].Path, got[i-1].Path)
		}
	}
}

func TestBuildIndexEmpty(t *testing.T) {
	if got := BuildIndex(nil); len(got) != 0 {
		t.Errorf("BuildIndex(nil) = %v, want empty", paths(got))
	}
	if got := BuildIndex([]*pages.Page{post("a", nil)}, WithLimit(3)); len(got) != 0 {
		t.Errorf("BuildIndex without published pages = %v, want empty", paths(got))
	}
}

func TestBuildIndexLimit(t *testing.T) {
	tests := []struct {
		name string
		opts []IndexOption
		want []string
	}{
		{"unlimited", nil, []string{"newest", "middle", "old"}},
		{"limit one", []IndexOption{WithLimit(1)}, []string{"newest"}},
		{"limit two", []IndexOption{WithLimit(2)}, []string{"newest", "middle"}},
		{"limit equals count", []IndexOption{WithLimit(3)}, []string{"newest", "middle", "old"}},
		{"limit exceeds count", []IndexOption{WithLimit(10)}, []string{"newest", "middle", "old"}},
		{"limit zero", []IndexOption{WithLimit(0)}, nil},
		{"negative limit", []IndexOption{WithLimit(-4)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			equalPaths(t, BuildIndex(testPages(), tt.opts...), tt.want...)
		})
	}
}

func TestBuildIndexTiesKeepSourceOrder(t *testing.T) {
	same := day(2014, 1, 1)
	got := BuildIndex([]*pages.Page{
		published("b", same),
		published("a", same),
		published("c", day(2015, 1, 1)),
	})
	equalPaths(t, got, "c", "b", "a")
}

func TestBuildIndexDoesNotModifyInput(t *testing.T) {
	in := testPages()
	BuildIndex(in, WithLimit(1))
	equalPaths(t, in, "old", "about", "newest", "bad-date", "middle")
}
