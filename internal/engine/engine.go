// Package engine implements the four transformation strategies:
// synthetic generation (FAKE), deterministic format-preserving
// substitution (FPE), one-way keyed projection (HMAC), and a dispatcher
// that picks between FAKE and FPE per data type (HYBRID). FAKE and FPE
// are deterministic for a given (seed, value, attempt) triple via
// internal/prng, HMAC for a given (seed, column, value), and format is
// preserved via internal/shape.
package engine

import "github.com/fpvault/fpanon/internal/model"

// TransformParams bundles everything an engine needs to transform one
// cell. Column and PreserveDomain let EMAIL/DOMAIN handling group
// values by domain identity (I4/P5); ResolvedDomain, when non-empty,
// is a domain the caller has already resolved to a stable anonymized
// value (typically via the vault's "__domain__" mapping) and MUST be
// reused verbatim instead of synthesizing a new one.
type TransformParams struct {
	DataType       model.DataType
	Value          string
	Seed           string
	Column         string
	Attempt        int
	PreserveDomain bool
	ResolvedDomain string
}

// Engine transforms a single value into a replacement value. Attempt
// distinguishes collision-retry candidates for the same (seed, value)
// pair; reversible implementations vary their output deterministically
// with attempt, while HMAC ignores it.
type Engine interface {
	// Transform produces a replacement for p.Value, assumed to be of
	// p.DataType, under p.Seed and retry p.Attempt.
	Transform(p TransformParams) string

	// Mode reports which AnonymizationMode this engine implements.
	Mode() model.AnonymizationMode

	// Reversible reports whether the engine's output can be mapped back
	// to its input via the vault (FAKE and FPE can; HMAC cannot).
	Reversible() bool
}

// New constructs the Engine for the given mode.
func New(mode model.AnonymizationMode) Engine {
	switch mode {
	case model.Fake:
		return &FakeEngine{}
	case model.FPE:
		return &FPEEngine{}
	case model.HMAC:
		return &HMACEngine{}
	case model.Hybrid:
		return &HybridEngine{fake: &FakeEngine{}, fpe: &FPEEngine{}}
	default:
		return &FakeEngine{}
	}
}
