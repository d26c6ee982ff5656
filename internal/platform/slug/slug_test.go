package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Golden Hour!", "golden-hour"},
		{"Golden   Hour", "golden-hour"},
		{"  Trailing  ", "trailing"},
		{"Already-Slugged", "already-slugged"},
		{"Città di Roma", "citt-di-roma"},
		{"UPPER case 123", "upper-case-123"},
		{"!!!", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Make(c.in); got != c.want {
			t.Errorf("Make(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPhotoFallback(t *testing.T) {
	if got := Photo("Sunset at Pier"); got != "sunset-at-pier" {
		t.Fatalf("Photo: got %q", got)
	}
	got := Photo("🌅")
	if !strings.HasPrefix(got, "photo-") {
		t.Fatalf("Photo fallback: got %q", got)
	}
	if other := Photo("🌅"); other == got {
		t.Fatalf("Photo fallback should not collide: %q", got)
	}
}

func TestTagFallback(t *testing.T) {
	if got := Tag("Street Photography"); got != "street-photography" {
		t.Fatalf("Tag: got %q", got)
	}
	if got := Tag("☆"); !strings.HasPrefix(got, "tag-") {
		t.Fatalf("Tag fallback: got %q", got)
	}
}
