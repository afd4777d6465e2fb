// Package classifier assigns a semantic DataType to a table column using
// a header-hint pass followed by a regex-ratio scoring pass over sampled
// values, mirroring the scoring/threshold style of a deidentifying
// column inferrer rather than a single regex match per cell.
package classifier

import (
	"strings"

	"github.com/fpvault/fpanon/internal/model"
)

// minConfidence is the ratio of matching samples required before a
// regex-based type is accepted over FREE_TEXT.
const minConfidence = 0.6

// headerHints maps lowercased header substrings to the type they imply.
// Checked before sampling; a hint only short-circuits sampling when the
// samples corroborate it (at least one sample must match the type's
// regex, or the column is empty).
var headerHints = []struct {
	substr string
	typ    model.DataType
}{
	{"email", model.Email},
	{"e_mail", model.Email},
	{"phone", model.Phone},
	{"mobile", model.Phone},
	{"telephone", model.Phone},
	{"uuid", model.UUID},
	{"guid", model.UUID},
	{"iban", model.IBAN},
	{"card_number", model.CreditCard},
	{"card_num", model.CreditCard},
	{"creditcard", model.CreditCard},
	{"abn", model.ABN},
	{"address", model.Address},
	{"street", model.Address},
	{"_date", model.Date},
	{"date_", model.Date},
	{"birthdate", model.Date},
	{"dob", model.Date},
	{"domain", model.Domain},
	{"website", model.Domain},
	{"name", model.Name},
	{"full_name", model.Name},
	{"first_name", model.Name},
	{"last_name", model.Name},
}

// Classifier assigns DataTypes to columns and caches the result per
// (column, sample count) pair for the lifetime of a session, so that a
// processor revisiting the same column across row batches does not
// re-run the scoring pass.
type Classifier struct {
	cache map[cacheKey]model.DataType
}

type cacheKey struct {
	column      string
	sampleCount int
}

// New creates an empty Classifier.
func New() *Classifier {
	return &Classifier{cache: make(map[cacheKey]model.DataType)}
}

// Classify assigns a DataType to a column given its header name and a
// sample of non-null string values observed in it. An empty sample
// yields FREE_TEXT.
func (c *Classifier) Classify(column string, samples []string) model.DataType {
	key := cacheKey{column: column, sampleCount: len(samples)}
	if t, ok := c.cache[key]; ok {
		return t
	}

	t := classify(column, samples)
	c.cache[key] = t
	return t
}

func classify(column string, samples []string) model.DataType {
	if len(samples) == 0 {
		return model.FreeText
	}

	lowerCol := strings.ToLower(column)
	if hint, ok := headerHint(lowerCol); ok {
		if ratio(samples, hint) > 0 || ratio(samples, hint) == 0 && allBlank(samples) {
			return hint
		}
	}

	best := model.FreeText
	bestRatio := 0.0
	for _, t := range scoreOrder {
		r := ratio(samples, t)
		if r >= minConfidence && r > bestRatio {
			best = t
			bestRatio = r
		}
	}
	return best
}

// scoreOrder is the tie-break precedence: earlier entries win ties,
// narrower types before broader ones (CreditCard before NumericID-style
// catch-alls, Email before Domain).
var scoreOrder = []model.DataType{
	model.Email,
	model.UUID,
	model.IBAN,
	model.CreditCard,
	model.ABN,
	model.Phone,
	model.Date,
	model.Domain,
}

func headerHint(lowerCol string) (model.DataType, bool) {
	for _, h := range headerHints {
		if strings.Contains(lowerCol, h.substr) {
			return h.typ, true
		}
	}
	return model.Unknown, false
}

func allBlank(samples []string) bool {
	for _, s := range samples {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

// ratio returns the fraction of non-blank samples matching t's regex.
func ratio(samples []string, t model.DataType) float64 {
	matchFn := matcherFor(t)
	if matchFn == nil {
		return 0
	}

	total := 0
	matched := 0
	for _, s := range samples {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		total++
		if matchFn(s) {
			matched++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}

func matcherFor(t model.DataType) func(string) bool {
	switch t {
	case model.Email:
		return matchesEmail
	case model.UUID:
		return matchesUUID
	case model.IBAN:
		return matchesIBAN
	case model.CreditCard:
		return matchesCreditCard
	case model.ABN:
		return matchesABN
	case model.Phone:
		return matchesPhone
	case model.Date:
		return matchesDate
	case model.Domain:
		return matchesDomain
	default:
		return nil
	}
}

// matchesDomain reports whether v looks like a bare domain name (no
// local part), distinguishing it from Email in the scoring pass.
func matchesDomain(v string) bool {
	if strings.Contains(v, "@") {
		return false
	}
	if !strings.Contains(v, ".") {
		return false
	}
	stripped := strings.NewReplacer(".", "", "-", "").Replace(v)
	return !nonAlnum.MatchString(stripped)
}
