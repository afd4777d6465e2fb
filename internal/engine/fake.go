package engine

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/fpvault/fpanon/internal/model"
	"github.com/fpvault/fpanon/internal/prng"
	"github.com/fpvault/fpanon/internal/shape"
)

// FakeEngine replaces values with wholly synthetic look-alikes drawn
// from fixed word pools, one generator per data type (email, name,
// address, ...), seeded through internal/prng so the same input always
// yields the same synthetic value.
type FakeEngine struct{}

func (e *FakeEngine) Mode() model.AnonymizationMode { return model.Fake }
func (e *FakeEngine) Reversible() bool              { return true }

func (e *FakeEngine) Transform(p TransformParams) string {
	dataType, value, seed, attempt := p.DataType, p.Value, p.Seed, p.Attempt
	r := prng.Seeded(seed, value, attempt)

	switch dataType {
	case model.Email:
		local, domain, hasDomain := shape.SplitEmail(value)
		candidate := strings.ToLower(pick(firstNames, r.Int63n(int64(len(firstNames))))) +
			strings.ToLower(pick(lastNames, r.Int63n(int64(len(lastNames)))))
		localOut := shape.Apply(local, candidate)
		if !hasDomain {
			return localOut
		}

		var domainOut string
		switch {
		case p.PreserveDomain && p.ResolvedDomain != "":
			domainOut = p.ResolvedDomain
		case p.PreserveDomain:
			domainOut = domain
		default:
			domainOut = fakeDomain(domain, r)
		}
		return localOut + "@" + domainOut

	case model.Phone:
		n := countDigits(value)
		if n == 0 {
			n = 10
		}
		return shape.Apply(value, randomDigits(r, n))

	case model.Name:
		return fakeName(value, r)

	case model.UUID:
		return randomUUID(r)

	case model.IBAN:
		return shape.Apply(value, randomDigitsAndLetters(r, len(value)))

	case model.CreditCard:
		digitCount := countDigits(value)
		if digitCount == 0 {
			digitCount = 16
		}
		raw := randomDigits(r, digitCount)
		withCheck := withLuhnCheckDigit(raw)
		return shape.Apply(value, withCheck)

	case model.ABN:
		return shape.Apply(value, randomDigits(r, 11))

	case model.Address:
		num := r.Int63n(9000) + 100
		street := pick(streetNames, r.Int63n(int64(len(streetNames))))
		city := pick(cityNames, r.Int63n(int64(len(cityNames))))
		return fmt.Sprintf("%d %s, %s", num, street, city)

	case model.Date:
		return syntheticDate(value, r)

	case model.NumericID:
		digitCount := countDigits(value)
		if digitCount == 0 {
			digitCount = 8
		}
		return shape.Apply(value, randomDigits(r, digitCount))

	case model.Domain:
		if p.PreserveDomain && p.ResolvedDomain != "" {
			return p.ResolvedDomain
		}
		return fakeDomain(value, r)

	default: // FreeText and anything unrecognized
		wordCount := len(strings.Fields(value))
		if wordCount == 0 {
			wordCount = 1
		}
		words := make([]string, wordCount)
		for i := range words {
			words[i] = pick(freeTextWords, r.Int63n(int64(len(freeTextWords))))
		}
		return strings.Join(words, " ")
	}
}

// fakeDomain draws a label from emailDomains and reattaches original's
// TLD. The result equals the input when the input is itself one of the
// pooled domains and that label is drawn (e.g. "example.com").
func fakeDomain(original string, r interface{ Int63n(int64) int64 }) string {
	label := pick(emailDomains, r.Int63n(int64(len(emailDomains))))
	if i := strings.IndexByte(label, '.'); i >= 0 {
		label = label[:i]
	}
	if !strings.Contains(original, ".") {
		return label + ".com"
	}
	return shape.PreserveTLD(original, label)
}

// fakeName tokenizes value on whitespace, preserving single-character
// tokens (initials) verbatim and drawing the rest from the first/last
// name pools, each re-shaped to its own token's length so word count
// and per-word length survive the transformation.
func fakeName(value string, r interface{ Int63n(int64) int64 }) string {
	tokens := strings.Fields(value)
	if len(tokens) == 0 {
		return value
	}

	out := make([]string, len(tokens))
	for i, tok := range tokens {
		if len([]rune(tok)) == 1 {
			out[i] = tok
			continue
		}

		pool := firstNames
		if i == len(tokens)-1 {
			pool = lastNames
		}
		candidate := pick(pool, r.Int63n(int64(len(pool))))
		out[i] = shape.Apply(tok, candidate)
	}
	return strings.Join(out, " ")
}

func randomDigits(r interface{ Int63n(int64) int64 }, n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte('0' + r.Int63n(10))
	}
	return string(out)
}

func randomDigitsAndLetters(r interface{ Int63n(int64) int64 }, n int) string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[r.Int63n(int64(len(alphabet)))]
	}
	return string(out)
}

func countDigits(s string) int {
	n := 0
	for _, c := range s {
		if c >= '0' && c <= '9' {
			n++
		}
	}
	return n
}

// randomUUID draws a version-4 UUID from the per-value deterministic
// stream so the same (seed, value, attempt) triple always yields the
// same identifier.
func randomUUID(r *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return uuid.Nil.String()
	}
	return id.String()
}

func syntheticDate(value string, r interface{ Int63n(int64) int64 }) string {
	year := 1970 + r.Int63n(55)
	month := 1 + r.Int63n(12)
	day := 1 + r.Int63n(28)

	switch {
	case strings.Contains(value, "/"):
		if strings.Index(value, "/") == 2 {
			return fmt.Sprintf("%02d/%02d/%04d", month, day, year)
		}
		return fmt.Sprintf("%04d/%02d/%02d", year, month, day)
	case strings.Contains(value, "-") && len(value) > 4 && value[4] == '-':
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	case strings.Contains(value, "-"):
		return fmt.Sprintf("%02d-%02d-%04d", day, month, year)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}
}
