// Package processor drives a table of cells through the classifier and
// an engine, consulting and updating the vault for reversible modes:
// classify each column once, look up or generate a replacement, retry
// on collision, and accumulate per-column statistics.
package processor

import (
	"context"
	"strings"

	"github.com/fpvault/fpanon/internal/classifier"
	"github.com/fpvault/fpanon/internal/engine"
	fperrors "github.com/fpvault/fpanon/internal/errors"
	"github.com/fpvault/fpanon/internal/model"
	"github.com/fpvault/fpanon/internal/shape"
	"github.com/fpvault/fpanon/internal/vault"
)

// domainColumn is the synthetic column name under which stable
// preserve_domain mappings are stored. ProcessTable does not reject an
// input column of the same name, which would share these mappings.
const domainColumn = "__domain__"

// ColumnReport captures per-column processing statistics for one table
// run.
type ColumnReport struct {
	Column            string
	DataType          model.DataType
	CellsProcessed    int
	CellsSkippedNull  int
	CollisionWarnings int
}

// Report aggregates ColumnReports for an entire ProcessTable call.
type Report struct {
	Columns  []ColumnReport
	Warnings []error
}

// Processor anonymizes an entire model.Table under a fixed Profile.
type Processor struct {
	profile    model.Profile
	classifier *classifier.Classifier
	engine     engine.Engine
	vault      *vault.Vault // nil when the profile needs no persistence

	// domainMap/domainUsed back preserve_domain grouping when no vault
	// is attached: the mapping only survives for this Processor's
	// lifetime, not across sessions.
	domainMap  map[string]string
	domainUsed map[string]bool
}

// New creates a Processor for profile. v may be nil only if
// profile.Mode is HMAC (irreversible) or the caller accepts that
// reversible mappings will not survive the process.
func New(profile model.Profile, v *vault.Vault) *Processor {
	return &Processor{
		profile:    profile,
		classifier: classifier.New(),
		engine:     engine.New(profile.Mode),
		vault:      v,
	}
}

// ProcessTable anonymizes every non-null cell in table in place,
// classifying each column once from its non-null samples, and returns
// a Report describing what happened. It checks ctx for cancellation
// between rows, leaving any already-written cells in table untouched.
func (p *Processor) ProcessTable(ctx context.Context, table *model.Table) (*Report, error) {
	columnTypes := make(map[string]model.DataType, len(table.Columns))
	reports := make(map[string]*ColumnReport, len(table.Columns))

	for _, col := range table.Columns {
		samples := sampleColumn(table, col, 50)
		dt := p.classifier.Classify(col, samples)
		columnTypes[col] = dt
		reports[col] = &ColumnReport{Column: col, DataType: dt}
	}

	var warnings []error
	for _, row := range table.Rows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		for i, cell := range row {
			report := reports[cell.Column]
			if cell.Value == nil || strings.TrimSpace(*cell.Value) == "" {
				report.CellsSkippedNull++
				continue
			}

			dt := columnTypes[cell.Column]
			replacement, warning := p.transform(cell.Column, dt, *cell.Value)
			if warning != nil {
				report.CollisionWarnings++
				warnings = append(warnings, warning)
			}
			report.CellsProcessed++
			row[i].Value = &replacement
		}
	}

	out := &Report{Warnings: warnings}
	for _, col := range table.Columns {
		out.Columns = append(out.Columns, *reports[col])
	}
	return out, nil
}

// transform produces the replacement for a single cell, consulting the
// vault first when the engine is reversible, then falling back to
// engine.TransformUnique with collision retry. A non-nil warning means
// retries were exhausted and the last candidate was accepted anyway
// (weak uniqueness).
func (p *Processor) transform(column string, dt model.DataType, value string) (result string, warning error) {
	if p.engine.Reversible() && p.vault != nil {
		if existing, ok, err := p.vault.Lookup(column, value); err == nil && ok {
			return existing, nil
		}
	}

	base := engine.TransformParams{
		DataType:       dt,
		Value:          value,
		Seed:           p.profile.Seed,
		Column:         column,
		PreserveDomain: p.profile.PreserveDomain,
	}
	if p.profile.PreserveDomain {
		if originalDomain, ok := domainOf(dt, value); ok && originalDomain != "" {
			base.ResolvedDomain = p.resolveDomain(originalDomain)
		}
	}

	isTaken := func(string) bool { return false }
	if p.engine.Reversible() && p.vault != nil {
		isTaken = func(candidate string) bool {
			taken, _ := p.vault.CheckCollision(column, candidate, value)
			return taken
		}
	}

	replacement, attempts, unique := engine.TransformUnique(p.engine, base, isTaken)
	if !unique {
		warning = fperrors.NewCollisionExhaustionWarning(column, value, attempts)
	}

	if p.engine.Reversible() && p.vault != nil {
		_ = p.vault.Store(column, dt, value, replacement)
	}
	return replacement, warning
}

// domainOf extracts the domain component to group under preserve_domain
// for dt/value: the address's domain for EMAIL, the value itself for
// DOMAIN, and nothing for every other type.
func domainOf(dt model.DataType, value string) (string, bool) {
	switch dt {
	case model.Email:
		_, domain, ok := shape.SplitEmail(value)
		return domain, ok
	case model.Domain:
		return value, true
	default:
		return "", false
	}
}

// resolveDomain returns the stable anonymized domain for originalDomain
// under preserve_domain (I4/P5): every cell referencing the same input
// domain, across any column or row, must resolve to the same output
// domain. HMAC mode derives this purely inside HMACEngine and never
// reaches this method's vault/map bookkeeping (by contract HMAC never
// touches the vault); every other mode resolves and persists the
// mapping here, under the vault when one is attached or an in-memory
// map for the lifetime of this Processor otherwise.
func (p *Processor) resolveDomain(originalDomain string) string {
	if p.profile.Mode == model.HMAC {
		return ""
	}

	if p.vault != nil {
		if existing, ok, err := p.vault.Lookup(domainColumn, originalDomain); err == nil && ok {
			return existing
		}
	} else if existing, ok := p.domainMap[originalDomain]; ok {
		return existing
	}

	base := engine.TransformParams{
		DataType: model.Domain,
		Value:    originalDomain,
		Seed:     p.profile.Seed,
		Column:   domainColumn,
	}

	isTaken := func(string) bool { return false }
	if p.vault != nil {
		isTaken = func(candidate string) bool {
			taken, _ := p.vault.CheckCollision(domainColumn, candidate, originalDomain)
			return taken
		}
	} else {
		isTaken = func(candidate string) bool { return p.domainUsed[candidate] }
	}

	candidate, _, _ := engine.TransformUnique(p.engine, base, isTaken)

	if p.vault != nil {
		_ = p.vault.Store(domainColumn, model.Domain, originalDomain, candidate)
	} else {
		if p.domainMap == nil {
			p.domainMap = make(map[string]string)
			p.domainUsed = make(map[string]bool)
		}
		p.domainMap[originalDomain] = candidate
		p.domainUsed[candidate] = true
	}
	return candidate
}

// sampleColumn collects up to n non-null values observed in column
// across table, in row order, for classifier sampling.
func sampleColumn(table *model.Table, column string, n int) []string {
	samples := make([]string, 0, n)
	for _, row := range table.Rows {
		if len(samples) >= n {
			break
		}
		for _, cell := range row {
			if cell.Column != column {
				continue
			}
			if cell.Value != nil {
				samples = append(samples, *cell.Value)
			}
		}
	}
	return samples
}
