package detectors

import (
	"testing"
)

func TestBaseDetector_Name(t *testing.T) {
	detector := NewBaseDetector("test_detector", "Finds things")

	if got := detector.Name(); got != "test_detector" {
		t.Errorf("Name() = %v, want %v", got, "test_detector")
	}

	if got := detector.Description(); got != "Finds things" {
		t.Errorf("Description() = %v, want %v", got, "Finds things")
	}
}

func TestBaseDetector_IsEnabled(t *testing.T) {
	detector := NewBaseDetector("test_detector", "")

	// Should be enabled by default
	if !detector.IsEnabled() {
		t.Error("IsEnabled() = false, want true (default)")
	}
}

func TestBaseDetector_SetEnabled(t *testing.T) {
	detector := NewBaseDetector("test_detector", "")

	detector.SetEnabled(false)
	if detector.IsEnabled() {
		t.Error("After SetEnabled(false), IsEnabled() = true, want false")
	}

	detector.SetEnabled(true)
	if !detector.IsEnabled() {
		t.Error("After SetEnabled(true), IsEnabled() = false, want true")
	}
}

func TestEnabled(t *testing.T) {
	a := NewBaseDetector("a", "")
	b := NewBaseDetector("b", "")
	c := NewBaseDetector("c", "")
	b.SetEnabled(false)

	got := Enabled(a, b, c)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("Enabled() = %v, want [a c]", got)
	}
}
