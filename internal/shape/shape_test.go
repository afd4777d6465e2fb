package shape

import "testing"

func TestApplyPreservesLengthAndSeparators(t *testing.T) {
	got := Apply("555-123-4567", "9876543210")
	if len(got) != len("555-123-4567") {
		t.Fatalf("length changed: got %q", got)
	}
	if got[3] != '-' || got[7] != '-' {
		t.Fatalf("separators not preserved: got %q", got)
	}
}

func TestApplyPreservesCase(t *testing.T) {
	got := Apply("John", "maria")
	if got != "Mari" {
		t.Fatalf("got %q, want Mari", got)
	}
}

func TestApplyAllUpper(t *testing.T) {
	got := Apply("ABC", "xyz")
	if got != "XYZ" {
		t.Fatalf("got %q, want XYZ", got)
	}
}

func TestApplyCyclesShortCandidate(t *testing.T) {
	got := Apply("AAAAAA", "xy")
	if got != "XYXYXY" {
		t.Fatalf("got %q, want XYXYXY", got)
	}
}

func TestApplyEmptyCandidateReturnsOriginal(t *testing.T) {
	got := Apply("555-1234", "!!!")
	if got != "555-1234" {
		t.Fatalf("expected original unchanged, got %q", got)
	}
}

func TestApplyDigitsFromNonDigitCandidate(t *testing.T) {
	got := Apply("1234", "abcd")
	if len(got) != 4 {
		t.Fatalf("expected length 4, got %q", got)
	}
	for _, r := range got {
		if r < '0' || r > '9' {
			t.Fatalf("expected all digits, got %q", got)
		}
	}
}

func TestPreserveTLD(t *testing.T) {
	got := PreserveTLD("corp.co.uk", "xyzzy")
	if got != "xyzzy.co.uk" {
		t.Fatalf("got %q, want xyzzy.co.uk", got)
	}
}

func TestSplitEmail(t *testing.T) {
	local, domain, ok := SplitEmail("alice@example.com")
	if !ok || local != "alice" || domain != "example.com" {
		t.Fatalf("got local=%q domain=%q ok=%v", local, domain, ok)
	}

	_, _, ok = SplitEmail("not-an-email")
	if ok {
		t.Fatalf("expected ok=false for no @")
	}
}
