package listing

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Lost red wallet", "lost-red-wallet"},
		{"Lost  red   wallet", "lost-red-wallet"},
		{"  Lost red wallet!  ", "lost-red-wallet"},
		{"iPhone 13 (black)", "iphone-13-black"},
		{"ALL CAPS", "all-caps"},
		{"---", ""},
		{"café au lait", "café-au-lait"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.title); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestSlugWithSuffix(t *testing.T) {
	if got := SlugWithSuffix("lost-red-wallet", 0); got != "lost-red-wallet" {
		t.Errorf("suffix 0: got %q", got)
	}
	if got := SlugWithSuffix("lost-red-wallet", 1); got != "lost-red-wallet-1" {
		t.Errorf("suffix 1: got %q", got)
	}
}
