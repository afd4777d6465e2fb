package vault

const schemaDDL = `
CREATE TABLE IF NOT EXISTS vault_meta (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS mappings (
	hash_key              TEXT PRIMARY KEY,
	ciphertext_original   BLOB NOT NULL,
	ciphertext_anonymized BLOB NOT NULL,
	data_type             TEXT NOT NULL,
	column_name           TEXT NOT NULL,
	rule_version          TEXT NOT NULL,
	created_at            DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_mappings_column_type
	ON mappings(column_name, data_type);
`

const metaKeySalt = "salt"

// metaKeyKeySource records whether the vault's AES key was derived
// from a password, imported from a key file, or generated at random for
// session-only use. It is written on open and not read back by this
// package.
const metaKeyKeySource = "key_source"

const keySourcePassword = "password"
const keySourceRandom = "random"
const keySourceImported = "imported"
