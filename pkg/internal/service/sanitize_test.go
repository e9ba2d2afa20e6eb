package service_test

import (
	"testing"

	"github.com/yeisme/novahub/pkg/internal/service"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"app.exe", "app.exe"},
		{"my app.apk", "my_app.apk"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\evil\trojan.exe`, "trojan.exe"},
		{"..hidden..", "hidden"},
		{"weird$@!name.zip", "weirdname.zip"},
		{"应用.zip", "zip"},
	}

	for _, tc := range cases {
		if got := service.SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeFilenameIdempotent(t *testing.T) {
	inputs := []string{"app.exe", "my app.apk", "../x/y.zip", "a b c.7z"}
	for _, in := range inputs {
		once := service.SanitizeFilename(in)
		if twice := service.SanitizeFilename(once); twice != once {
			t.Errorf("sanitize not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"app.exe", "app"},
		{"app.v2.exe", "app.v2"},
		{"README", "README"},
		{".bashrc", ".bashrc"},
	}

	for _, tc := range cases {
		if got := service.DisplayName(tc.in); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
