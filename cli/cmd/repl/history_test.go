package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistoryLoadMissing(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistoryWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	h := NewHistory(path)

	for _, e := range []HistoryEntry{
		{"Ex + 1", modeEval},
		{"list", modeCtrl},
		{"list", modeCtrl},    // repeat of the last entry
		{"  ", modeEval},     // blank
		{"Ex + 1", modeCtrl}, // same line, other mode
		{"Ex + 1", modeEval}, // moved to the end
	} {
		if _, err := h.Write(e.Line, e.Mode); err != nil {
			t.Fatalf("Write(%q) error = %v", e.Line, err)
		}
	}

	want := []HistoryEntry{
		{"list", modeCtrl},
		{"Ex + 1", modeCtrl},
		{"Ex + 1", modeEval},
	}

	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "C:list\nC:Ex + 1\nE:Ex + 1\n"; got != want {
		t.Errorf("history file = %q, want %q", got, want)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %v, want %v", got, want)
	}
}

func TestHistoryLoadUnprefixed(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	if err := os.WriteFile(path, []byte("x*y\n\nC:quit\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	want := []HistoryEntry{{"x*y", modeEval}, {"quit", modeCtrl}}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestHistoryFind(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	for _, e := range []HistoryEntry{
		{"a", modeEval},
		{"help", modeCtrl},
		{"b", modeEval},
		{"list", modeCtrl},
	} {
		if _, err := h.Write(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name   string
		from   int
		step   int
		mode   inputMode
		want   int
		wantOK bool
	}{
		{"older_eval_from_end", h.Len(), -1, modeEval, 2, true},
		{"older_ctrl_from_end", h.Len(), -1, modeCtrl, 3, true},
		{"older_eval_from_middle", 2, -1, modeEval, 0, true},
		{"newer_ctrl", 0, 1, modeCtrl, 1, true},
		{"none_older", 0, -1, modeEval, -1, false},
		{"none_newer", 3, 1, modeEval, -1, false},
		{"zero_step", 1, 0, modeEval, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := h.Find(tt.from, tt.step, tt.mode)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Find(%d, %d, %d) = (%d, %v), want (%d, %v)",
					tt.from, tt.step, tt.mode, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestHistoryEntryOutOfBounds(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	if _, err := h.Entry(0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Entry(0) error = %v, want %v", err, ErrOutOfBounds)
	}
}
