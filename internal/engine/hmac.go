package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/fpvault/fpanon/internal/model"
	"github.com/fpvault/fpanon/internal/shape"
)

// HMACEngine is a one-way keyed projection: each cell's digest is
// HMAC-SHA256, keyed by the session seed (or the literal fallback
// "default" when no seed is configured), over the column name and
// original value, hex-encoded and projected onto the value's
// character-class skeleton. It never consults or writes the vault,
// and attempt is ignored because a one-way hash has no collision to
// retry against — the same (seed, column, value) always yields the
// same output.
type HMACEngine struct{}

const domainColumn = "__domain__"

func (e *HMACEngine) Mode() model.AnonymizationMode { return model.HMAC }
func (e *HMACEngine) Reversible() bool              { return false }

func (e *HMACEngine) Transform(p TransformParams) string {
	seed := p.Seed
	if seed == "" {
		seed = "default"
	}
	digest := hmacDigest(seed, p.Column, p.Value)

	switch p.DataType {
	case model.Email:
		return e.transformEmail(p, seed, digest)
	case model.Domain:
		if p.PreserveDomain {
			return hmacDomain(seed, p.Value)
		}
		return hmacSyntheticDomain(p.Value, digest)
	default:
		return shape.Apply(p.Value, digest)
	}
}

func (e *HMACEngine) transformEmail(p TransformParams, seed, digest string) string {
	local, domain, hasDomain := shape.SplitEmail(p.Value)
	localOut := shape.Apply(local, digest)
	if !hasDomain {
		return localOut
	}

	var domainOut string
	if p.PreserveDomain {
		domainOut = hmacDomain(seed, domain)
	} else {
		domainOut = hmacSyntheticDomain(domain, digest)
	}
	return localOut + "@" + domainOut
}

// hmacDigest computes hex(HMAC-SHA256(key=seed, message=column||0||value)).
func hmacDigest(seed, column, value string) string {
	mac := hmac.New(sha256.New, []byte(seed))
	mac.Write([]byte(column))
	mac.Write([]byte{0})
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}

// hmacDomain derives the stable anonymized domain for domain under
// preserve_domain: a digest keyed over the synthetic "__domain__"
// column so every occurrence of the same input domain, in any row or
// column, projects to the same output domain, with no vault involved.
func hmacDomain(seed, domain string) string {
	return hmacSyntheticDomain(domain, hmacDigest(seed, domainColumn, domain))
}

// hmacSyntheticDomain replaces domain's leading label with the same
// number of lowercase hex characters taken from digest and reattaches
// domain's TLD, falling back to ".com" when domain has no ".".
func hmacSyntheticDomain(domain, digest string) string {
	i := strings.IndexByte(domain, '.')
	labelLen := len(domain)
	if i >= 0 {
		labelLen = i
	}
	if labelLen == 0 {
		labelLen = 1
	}

	label := make([]byte, labelLen)
	for j := range label {
		label[j] = digest[j%len(digest)]
	}

	if i < 0 {
		return string(label) + ".com"
	}
	return shape.PreserveTLD(domain, string(label))
}
