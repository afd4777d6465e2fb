package engine

import "github.com/fpvault/fpanon/internal/model"

// HybridEngine dispatches each DataType to whichever of FPE or FAKE
// best preserves its useful structure: number-shaped identifier types
// (credit cards, IBANs, ABNs, numeric IDs) go through FPE so downstream
// arithmetic/check-digit validation keeps working, and every other
// type (names, emails, phone numbers, addresses, dates, domains, free
// text, UUIDs) goes through FAKE so the replacement reads as a
// plausible, unrelated value rather than a scrambled one.
type HybridEngine struct {
	fake *FakeEngine
	fpe  *FPEEngine
}

func (e *HybridEngine) Mode() model.AnonymizationMode { return model.Hybrid }
func (e *HybridEngine) Reversible() bool              { return true }

func (e *HybridEngine) Transform(p TransformParams) string {
	return e.delegateFor(p.DataType).Transform(p)
}

func (e *HybridEngine) delegateFor(dataType model.DataType) Engine {
	switch dataType {
	case model.CreditCard, model.IBAN, model.ABN, model.NumericID:
		return e.fpe
	default:
		return e.fake
	}
}
