// Package shape implements the format-preservation primitives shared by
// every transformation engine: walking an original value's character
// classes and re-projecting a candidate's characters onto the same
// positions, so punctuation, casing, and length survive the
// transformation untouched. It is a pure function independent of any
// single generator, the way a format-preserving redaction strategy
// walks a string class by class.
package shape

import "unicode"

// class identifies the character category at a position in the
// original value.
type class int

const (
	classOther class = iota
	classDigit
	classUpper
	classLower
)

func classify(r rune) class {
	switch {
	case unicode.IsDigit(r):
		return classDigit
	case unicode.IsUpper(r):
		return classUpper
	case unicode.IsLower(r):
		return classLower
	default:
		return classOther
	}
}

// Apply re-projects candidate onto original's character-class skeleton:
// every separator/punctuation rune in original is copied verbatim into
// the result at its original position, and every alphanumeric position
// is filled from candidate's own alphanumeric runes in order, cycling
// candidate if it runs short and re-casing each filled rune to match
// the class at that position in original. If candidate has no
// alphanumeric runes at all, original is returned unchanged.
func Apply(original, candidate string) string {
	origRunes := []rune(original)
	candRunes := alnumRunes(candidate)
	if len(candRunes) == 0 {
		return original
	}

	out := make([]rune, len(origRunes))
	ci := 0
	for i, r := range origRunes {
		cls := classify(r)
		if cls == classOther {
			out[i] = r
			continue
		}
		c := candRunes[ci%len(candRunes)]
		ci++
		out[i] = recase(c, cls)
	}
	return string(out)
}

// recase converts c to match the target class: digits stay digits
// (mapped onto the 0-9 range via their ordinal value if c is not
// itself a digit), letters adopt target's case.
func recase(c rune, target class) rune {
	switch target {
	case classDigit:
		if unicode.IsDigit(c) {
			return c
		}
		return rune('0' + (int(c) % 10))
	case classUpper:
		return unicode.ToUpper(c)
	case classLower:
		return unicode.ToLower(c)
	default:
		return c
	}
}

func alnumRunes(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) || unicode.IsLetter(r) {
			out = append(out, r)
		}
	}
	return out
}

// PreserveTLD splits originalDomain on its first "." and returns
// candidateLabel followed by everything from that dot on, so suffixes
// with several labels survive: PreserveTLD("corp.co.uk", "xyzzy") ->
// "xyzzy.co.uk". candidateLabel is used verbatim as the leftmost label;
// with no "." in originalDomain, candidateLabel is returned alone.
func PreserveTLD(originalDomain, candidateLabel string) string {
	for i := 0; i < len(originalDomain); i++ {
		if originalDomain[i] == '.' {
			return candidateLabel + originalDomain[i:]
		}
	}
	return candidateLabel
}

// SplitEmail separates local and domain parts of an email address. ok
// is false if addr has no "@".
func SplitEmail(addr string) (local, domain string, ok bool) {
	for i := 0; i < len(addr); i++ {
		if addr[i] == '@' {
			return addr[:i], addr[i+1:], true
		}
	}
	return addr, "", false
}
