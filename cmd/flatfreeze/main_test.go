package main

import "testing"

func TestToTitle(t *testing.T) {
	tests := map[string]string{
		"my-blog": "My Blog",
		"myblog":  "Myblog",
		"a--b":    "A  B",
		"":        "",
	}
	for in, want := range tests {
		if got := toTitle(in); got != want {
			t.Errorf("toTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLastSegment(t *testing.T) {
	tests := map[string]string{
		"site":          "site",
		"sites/my-blog": "my-blog",
		"sites/blog/":   "blog",
	}
	for in, want := range tests {
		if got := lastSegment(in); got != want {
			t.Errorf("lastSegment(%q) = %q, want %q", in, got, want)
		}
	}
}
