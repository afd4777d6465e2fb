package profiles

import (
	"testing"

	"github.com/fpvault/fpanon/internal/model"
)

func TestPresetsHaveExpectedModes(t *testing.T) {
	cases := []struct {
		name string
		mode model.AnonymizationMode
	}{
		{"default", Default("s").Mode},
		{"gdpr", GDPRCompliant("s").Mode},
		{"test_data", TestData().Mode},
		{"fast_hash", FastHash("s").Mode},
		{"referential_integrity", ReferentialIntegrity("s").Mode},
	}

	if cases[0].mode != model.Hybrid {
		t.Fatalf("expected default to be HYBRID, got %s", cases[0].mode)
	}
	if cases[1].mode != model.FPE {
		t.Fatalf("expected gdpr_compliant to be FPE, got %s", cases[1].mode)
	}
	if cases[2].mode != model.Fake {
		t.Fatalf("expected test_data to be FAKE, got %s", cases[2].mode)
	}
	if cases[3].mode != model.HMAC {
		t.Fatalf("expected fast_hash to be HMAC, got %s", cases[3].mode)
	}
	if cases[4].mode != model.Hybrid {
		t.Fatalf("expected referential_integrity to be HYBRID, got %s", cases[4].mode)
	}
}

func TestTestDataUsesFixedSeed(t *testing.T) {
	a := TestData()
	b := TestData()
	if a.Seed != b.Seed {
		t.Fatalf("expected fixed seed, got %q and %q", a.Seed, b.Seed)
	}
}
