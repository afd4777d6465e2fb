package classifier

import "regexp"

// Compiled once at package init rather than per call.
var (
	emailPattern      = regexp.MustCompile(`(?i)^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	uuidPattern       = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	ibanPattern       = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{4,30}$`)
	creditCardPattern = regexp.MustCompile(`^\d{13,19}$`)
	abnPattern        = regexp.MustCompile(`^\d{11}$`)

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\+?[1-9]\d{1,14}$`),
		regexp.MustCompile(`^\+?\d{1,4}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,9}[-.\s]?\d{1,9}$`),
	}

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`),
		regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`),
		regexp.MustCompile(`^\d{2}-\d{2}-\d{4}`),
		regexp.MustCompile(`^\d{4}/\d{2}/\d{2}`),
	}

	nonDigit = regexp.MustCompile(`[^0-9]`)
	nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// matchesEmail reports whether v looks like an email address.
func matchesEmail(v string) bool { return emailPattern.MatchString(v) }

// matchesUUID reports whether v looks like a UUID.
func matchesUUID(v string) bool { return uuidPattern.MatchString(v) }

// matchesIBAN reports whether v looks like an IBAN after normalization.
func matchesIBAN(v string) bool {
	norm := nonAlnumStrip(v)
	return ibanPattern.MatchString(norm)
}

// matchesCreditCard reports whether v's digits look like a card number.
func matchesCreditCard(v string) bool {
	return creditCardPattern.MatchString(nonDigit.ReplaceAllString(v, ""))
}

// matchesABN reports whether v's digits look like an ABN.
func matchesABN(v string) bool {
	return abnPattern.MatchString(nonDigit.ReplaceAllString(v, ""))
}

// matchesPhone reports whether v matches any of the phone variants.
func matchesPhone(v string) bool {
	for _, p := range phonePatterns {
		if p.MatchString(v) {
			return true
		}
	}
	return false
}

// matchesDate reports whether v matches any of the date variants.
func matchesDate(v string) bool {
	for _, p := range datePatterns {
		if p.MatchString(v) {
			return true
		}
	}
	return false
}

// nonAlnumStrip removes whitespace and uppercases, matching how IBANs
// are normalized before pattern matching.
func nonAlnumStrip(v string) string {
	stripped := make([]byte, 0, len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == ' ' || c == '\t' {
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		stripped = append(stripped, c)
	}
	return string(stripped)
}
