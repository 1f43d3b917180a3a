package pkg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPrefix(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/bin/fieldvar", "fieldvar"},
		{"C:/tools/fieldvar.exe", "fieldvar"},
		{"/tmp/.fieldvar", "fieldvar"},
		{"/tmp/__debug_bin3141", Name},
		{"/tmp/__debug_bin", Name},
		{"./probe", "probe"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := prefix(tt.path); got != tt.want {
				t.Errorf("prefix(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestUserDir(t *testing.T) {
	base := t.TempDir()

	got := userDir(func() (string, error) { return base, nil }, ".cache")
	if want := filepath.Join(base, Prefix()); got != want {
		t.Errorf("userDir() = %q, want %q", got, want)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got = userDir(func() (string, error) { return "", errors.New("unset") }, ".cache")
	if want := filepath.Join(home, ".cache", Prefix()); got != want {
		t.Errorf("userDir() fallback = %q, want %q", got, want)
	}
}
