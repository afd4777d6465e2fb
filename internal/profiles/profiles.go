// Package profiles supplies a small set of named model.Profile presets
// as plain constructor functions rather than a file-backed catalog.
package profiles

import "github.com/fpvault/fpanon/internal/model"

// Default balances realism and referential integrity: HYBRID mode,
// reversible, column values stay linked across a session.
func Default(seed string) model.Profile {
	return model.Profile{
		Name:                 "default",
		Mode:                 model.Hybrid,
		Seed:                 seed,
		ReferentialIntegrity: true,
	}
}

// GDPRCompliant favors reversibility for lawful re-identification under
// a data subject access request: FPE mode, vault-backed, domain
// preserved so reporting dashboards keep working.
func GDPRCompliant(seed string) model.Profile {
	return model.Profile{
		Name:                 "gdpr_compliant",
		Mode:                 model.FPE,
		Seed:                 seed,
		PreserveDomain:       true,
		ReferentialIntegrity: true,
	}
}

// TestData produces fully synthetic, non-reversible-looking output
// suitable for seeding lower environments: FAKE mode with a fixed seed
// so the same input dataset always yields the same test fixtures.
func TestData() model.Profile {
	return model.Profile{
		Name:           "test_data",
		Mode:           model.Fake,
		Seed:           "fpanon-test-data-fixed-seed",
		FullySynthetic: true,
	}
}

// FastHash trades reversibility for throughput: HMAC mode, no vault
// writes, useful for one-off exports where nobody needs the mapping
// back.
func FastHash(seed string) model.Profile {
	return model.Profile{
		Name: "fast_hash",
		Mode: model.HMAC,
		Seed: seed,
	}
}

// ReferentialIntegrity is HYBRID mode with a shared seed across tables,
// for multi-table exports where a foreign key column must anonymize to
// the same value as the primary key column it references.
func ReferentialIntegrity(sharedSeed string) model.Profile {
	return model.Profile{
		Name:                 "referential_integrity",
		Mode:                 model.Hybrid,
		Seed:                 sharedSeed,
		ReferentialIntegrity: true,
	}
}
