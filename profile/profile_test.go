package profile

import (
	"slices"
	"testing"
)

func TestStartDisabled(t *testing.T) {
	for _, p := range []Profiler{
		{},
		{Mode: "", Path: t.TempDir()},
		{Mode: "no-such-mode", Quiet: true},
	} {
		s := p.Start()
		if s == nil {
			t.Fatalf("Start(%+v) = nil", p)
		}

		s.Stop()
	}
}

func TestModesSorted(t *testing.T) {
	modes := Modes()
	if !slices.IsSorted(modes) {
		t.Errorf("Modes() = %v, want sorted", modes)
	}
}
