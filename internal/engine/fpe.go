package engine

import (
	"github.com/fpvault/fpanon/internal/model"
	"github.com/fpvault/fpanon/internal/prng"
	"github.com/fpvault/fpanon/internal/shape"
)

// FPEEngine implements a deterministic, bijective character
// substitution rather than a standards-track format-preserving cipher:
// digits are scrambled with a per-value affine permutation of Z10 and
// letters with a per-value rotation, both keyed off the same
// (seed, value, attempt) triple as the FAKE engine. Reversal does not
// rely on inverting this substitution: the vault stores each
// (original, anonymized) pair and Reverse decrypts the stored original.
//
// This is deliberately a toy substitution, not a cryptographically
// strong FPE cipher; swapping in a real scheme (e.g. FF3-1) means
// replacing affineDigit and rotateLetter.
type FPEEngine struct{}

func (e *FPEEngine) Mode() model.AnonymizationMode { return model.FPE }
func (e *FPEEngine) Reversible() bool              { return true }

func (e *FPEEngine) Transform(p TransformParams) string {
	r := prng.Seeded(p.Seed, p.Value, p.Attempt)
	shift := int(r.Int63n(9)) + 1 // 1..9, never identity
	a, b := affineParams(r)

	switch p.DataType {
	case model.Email:
		local, domain, hasDomain := shape.SplitEmail(p.Value)
		localOut := fpeScramble(local, a, b, shift)
		if !hasDomain {
			return localOut
		}

		domainOut := domain
		switch {
		case p.PreserveDomain && p.ResolvedDomain != "":
			domainOut = p.ResolvedDomain
		case !p.PreserveDomain:
			domainOut = fpeScramble(domain, a, b, shift)
		}
		return localOut + "@" + domainOut

	case model.Domain:
		if p.PreserveDomain && p.ResolvedDomain != "" {
			return p.ResolvedDomain
		}
		return fpeScramble(p.Value, a, b, shift)

	case model.CreditCard:
		result := fpeScramble(p.Value, a, b, shift)
		digits := withLuhnCheckDigit(digitsOnly(result))
		return shape.Apply(p.Value, digits)

	default:
		return shape.Apply(p.Value, fpeScramble(p.Value, a, b, shift))
	}
}

// fpeScramble applies the affine digit permutation and letter rotation
// to value, copying every other rune through unchanged.
func fpeScramble(value string, a, b, shift int) string {
	out := make([]rune, 0, len(value))
	for _, c := range value {
		switch {
		case c >= '0' && c <= '9':
			d := int(c - '0')
			out = append(out, rune('0'+affineDigit(d, a, b)))
		case c >= 'a' && c <= 'z':
			out = append(out, rotateLetter(c, 'a', shift))
		case c >= 'A' && c <= 'Z':
			out = append(out, rotateLetter(c, 'A', shift))
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

// affineParams picks a in {1,3,7,9} (coprime with 10, so x -> a*x+b is
// a bijection on Z10) and b in [0,10).
func affineParams(r interface {
	Int63n(int64) int64
}) (a, b int) {
	coprimes := []int{1, 3, 7, 9}
	a = coprimes[r.Int63n(int64(len(coprimes)))]
	b = int(r.Int63n(10))
	return a, b
}

func affineDigit(d, a, b int) int {
	return (a*d + b) % 10
}

func rotateLetter(c rune, base rune, shift int) rune {
	offset := int(c-base+rune(shift)) % 26
	return base + rune(offset)
}
