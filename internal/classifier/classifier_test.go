package classifier

import (
	"testing"

	"github.com/fpvault/fpanon/internal/model"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		column  string
		samples []string
		want    model.DataType
	}{
		{
			name:    "email by header and shape",
			column:  "customer_email",
			samples: []string{"a@example.com", "b@example.org", "c@example.net"},
			want:    model.Email,
		},
		{
			name:    "email by shape alone",
			column:  "contact",
			samples: []string{"a@example.com", "b@example.org"},
			want:    model.Email,
		},
		{
			name:    "uuid",
			column:  "id",
			samples: []string{"550e8400-e29b-41d4-a716-446655440000", "6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
			want:    model.UUID,
		},
		{
			name:    "credit card",
			column:  "pan",
			samples: []string{"4111111111111111", "4012888888881881"},
			want:    model.CreditCard,
		},
		{
			name:    "phone",
			column:  "mobile",
			samples: []string{"+14155552671", "+442071838750"},
			want:    model.Phone,
		},
		{
			name:    "date",
			column:  "created_date",
			samples: []string{"2023-01-15", "2023-05-09"},
			want:    model.Date,
		},
		{
			name:    "free text fallback",
			column:  "notes",
			samples: []string{"the quick brown fox", "lorem ipsum dolor"},
			want:    model.FreeText,
		},
		{
			name:    "empty samples",
			column:  "anything",
			samples: nil,
			want:    model.FreeText,
		},
		{
			name:    "mixed shape below confidence falls back",
			column:  "mixed",
			samples: []string{"a@example.com", "not an email", "still not", "nope"},
			want:    model.FreeText,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			got := c.Classify(tc.column, tc.samples)
			if got != tc.want {
				t.Errorf("Classify(%q, %v) = %s, want %s", tc.column, tc.samples, got, tc.want)
			}
		})
	}
}

func TestClassifyCaches(t *testing.T) {
	c := New()
	first := c.Classify("email", []string{"a@example.com"})
	second := c.Classify("email", []string{"a@example.com"})
	if first != second {
		t.Fatalf("expected cached result to be stable, got %s then %s", first, second)
	}
	if len(c.cache) != 1 {
		t.Fatalf("expected one cache entry, got %d", len(c.cache))
	}
}

func TestMatchesIBANNormalizesWhitespace(t *testing.T) {
	if !matchesIBAN("DE89 3704 0044 0532 0130 00") {
		t.Fatal("expected spaced IBAN to match after normalization")
	}
}
