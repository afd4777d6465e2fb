// Package vault implements the encrypted, persistent mapping store:
// every (original, anonymized) pair an engine produces in a reversible
// mode is recorded here so a later session can look either direction
// up again. It uses a two-tier design, an in-memory LRU cache backed
// by a SQLite disk store for durability and spillover, plus
// authenticated encryption at rest, a forward and reverse index, and
// collision bookkeeping.
package vault

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"

	fperrors "github.com/fpvault/fpanon/internal/errors"
	"github.com/fpvault/fpanon/internal/model"
)

// DefaultCacheSize is the default in-memory LRU size.
const DefaultCacheSize = 1_000_000

// RuleVersion is stamped onto every mapping written by this build, so a
// future schema or engine change can distinguish old mappings from new
// ones.
const RuleVersion = "1"

// entry is the decrypted, in-memory representation cached per hash key.
type entry struct {
	original   string
	anonymized string
	dataType   string
	column     string
}

// Vault is the encrypted mapping store for one session. A Vault is
// safe for concurrent use.
type Vault struct {
	mu      sync.Mutex
	db      *sql.DB
	cache   *lru.Cache[string, entry]
	reverse map[string]bool // anonymized values already stored, keyed by value
	key     []byte
	path    string
}

// Options configures Open.
type Options struct {
	// Password derives the AES key via PBKDF2; if empty, a random key
	// is generated and must be recovered later with ExportKey.
	Password string
	// Key injects a previously exported AES-256 key directly, taking
	// priority over Password. This is the load_key path: it lets a
	// passwordless (randomly keyed) vault be reopened in a later
	// session from a key file produced by ExportKey.
	Key []byte
	// CacheSize overrides DefaultCacheSize; zero means the default.
	CacheSize int
}

// Open opens or creates a vault database at path under the given
// options.
func Open(path string, opts Options) (*Vault, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fperrors.NewVaultUnavailableError("open", path, err)
	}

	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fperrors.NewVaultUnavailableError("migrate", path, err)
	}

	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, entry](cacheSize)
	if err != nil {
		db.Close()
		return nil, fperrors.NewVaultUnavailableError("init-cache", path, err)
	}

	v := &Vault{
		db:      db,
		cache:   cache,
		reverse: make(map[string]bool),
		path:    path,
	}

	key, err := v.resolveKey(opts)
	if err != nil {
		db.Close()
		return nil, err
	}
	v.key = key

	if err := v.preloadReverseIndex(); err != nil {
		db.Close()
		return nil, err
	}

	return v, nil
}

// resolveKey derives, injects, or generates the AES key and persists
// the salt and key-source marker on first open, per the per-vault
// random salt resolution of the fixed-salt Open Question. An injected
// Key (the load_key path) always wins over a password, since it is the
// caller explicitly asserting "use this exact key".
func (v *Vault) resolveKey(opts Options) ([]byte, error) {
	if len(opts.Key) > 0 {
		if len(opts.Key) != keyLen {
			return nil, fperrors.NewCryptoKeyMismatchError("load-key", errKeyLength)
		}
		if err := v.writeMeta(metaKeyKeySource, []byte(keySourceImported)); err != nil {
			return nil, err
		}
		return opts.Key, nil
	}

	existingSalt, hasSalt, err := v.readMeta(metaKeySalt)
	if err != nil {
		return nil, err
	}

	if opts.Password != "" {
		salt := existingSalt
		if !hasSalt {
			salt, err = randomSalt()
			if err != nil {
				return nil, fperrors.NewVaultUnavailableError("derive-key", v.path, err)
			}
			if err := v.writeMeta(metaKeySalt, salt); err != nil {
				return nil, err
			}
			if err := v.writeMeta(metaKeyKeySource, []byte(keySourcePassword)); err != nil {
				return nil, err
			}
		}
		return deriveKey(opts.Password, salt), nil
	}

	key, err := randomKey()
	if err != nil {
		return nil, fperrors.NewVaultUnavailableError("generate-key", v.path, err)
	}
	if err := v.writeMeta(metaKeyKeySource, []byte(keySourceRandom)); err != nil {
		return nil, err
	}
	return key, nil
}

func (v *Vault) readMeta(key string) ([]byte, bool, error) {
	var value []byte
	err := v.db.QueryRow("SELECT value FROM vault_meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fperrors.NewVaultUnavailableError("read-meta", v.path, err)
	}
	return value, true, nil
}

func (v *Vault) writeMeta(key string, value []byte) error {
	_, err := v.db.Exec(
		"INSERT OR REPLACE INTO vault_meta (key, value) VALUES (?, ?)", key, value,
	)
	if err != nil {
		return fperrors.NewVaultUnavailableError("write-meta", v.path, err)
	}
	return nil
}

// preloadReverseIndex marks every anonymized value already on disk as
// used, so uniqueness checks survive a process restart.
func (v *Vault) preloadReverseIndex() error {
	rows, err := v.db.Query("SELECT ciphertext_anonymized FROM mappings")
	if err != nil {
		return fperrors.NewVaultUnavailableError("preload", v.path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ciphertext []byte
		if err := rows.Scan(&ciphertext); err != nil {
			continue
		}
		plaintext, err := open(v.key, ciphertext)
		if err != nil {
			continue // wrong key for this row; skip rather than abort
		}
		v.reverse[string(plaintext)] = true
	}
	return rows.Err()
}

// HashKey returns the deterministic lookup key for (column, original):
// HMAC-free SHA-256 over the two joined by a NUL separator byte.
func HashKey(column, original string) string {
	h := sha256.New()
	h.Write([]byte(column))
	h.Write([]byte{0})
	h.Write([]byte(original))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}

// IsUsed reports whether anonymized is already recorded as someone's
// replacement value, in memory or on disk.
func (v *Vault) IsUsed(anonymized string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.reverse[anonymized]
}

// Lookup returns the previously stored anonymized value for
// (column, original), if any.
func (v *Vault) Lookup(column, original string) (string, bool, error) {
	key := HashKey(column, original)

	v.mu.Lock()
	defer v.mu.Unlock()

	if e, ok := v.cache.Get(key); ok {
		return e.anonymized, true, nil
	}

	var ciphertextAnon []byte
	err := v.db.QueryRow(
		"SELECT ciphertext_anonymized FROM mappings WHERE hash_key = ?", key,
	).Scan(&ciphertextAnon)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fperrors.NewVaultUnavailableError("lookup", v.path, err)
	}

	plaintext, err := open(v.key, ciphertextAnon)
	if err != nil {
		// Wrong key: treat as a miss rather than surfacing the mismatch
		// to the cell loop, per the CryptoKeyMismatchError policy.
		return "", false, nil
	}

	v.cache.Add(key, entry{original: original, anonymized: string(plaintext), column: column})
	return string(plaintext), true, nil
}

// CheckCollision reports whether candidate is already recorded as some
// other original value's replacement within column. A row whose
// decrypted original equals original itself is not a collision: it is
// the same logical mapping being re-checked, not two originals fighting
// over one anonymized value.
func (v *Vault) CheckCollision(column, candidate, original string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows, err := v.db.Query(
		"SELECT ciphertext_original, ciphertext_anonymized FROM mappings WHERE column_name = ?", column,
	)
	if err != nil {
		return false, fperrors.NewVaultUnavailableError("check-collision", v.path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var cOrig, cAnon []byte
		if err := rows.Scan(&cOrig, &cAnon); err != nil {
			continue
		}
		plainAnon, err := open(v.key, cAnon)
		if err != nil || string(plainAnon) != candidate {
			continue
		}
		plainOrig, err := open(v.key, cOrig)
		if err != nil {
			continue
		}
		if string(plainOrig) != original {
			return true, nil
		}
	}
	return false, rows.Err()
}

// Reverse looks up the original value for a previously produced
// anonymized value within a given column, scanning the encrypted store
// since the reverse index tracks presence, not identity.
func (v *Vault) Reverse(column, anonymized string) (string, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows, err := v.db.Query(
		"SELECT ciphertext_original, ciphertext_anonymized FROM mappings WHERE column_name = ?", column,
	)
	if err != nil {
		return "", false, fperrors.NewVaultUnavailableError("reverse", v.path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var cOrig, cAnon []byte
		if err := rows.Scan(&cOrig, &cAnon); err != nil {
			continue
		}
		plainAnon, err := open(v.key, cAnon)
		if err != nil {
			continue
		}
		if string(plainAnon) != anonymized {
			continue
		}
		plainOrig, err := open(v.key, cOrig)
		if err != nil {
			return "", false, nil
		}
		return string(plainOrig), true, nil
	}
	return "", false, rows.Err()
}

// Store records a new (original, anonymized) mapping for column under
// dataType. It does not check uniqueness of anonymized; callers that
// need uniqueness check candidates with CheckCollision and call Store
// once a candidate has been accepted.
func (v *Vault) Store(column string, dataType model.DataType, original, anonymized string) error {
	key := HashKey(column, original)

	cipherOrig, err := seal(v.key, []byte(original))
	if err != nil {
		return fperrors.NewVaultUnavailableError("encrypt", v.path, err)
	}
	cipherAnon, err := seal(v.key, []byte(anonymized))
	if err != nil {
		return fperrors.NewVaultUnavailableError("encrypt", v.path, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	_, err = v.db.Exec(
		`INSERT OR REPLACE INTO mappings
			(hash_key, ciphertext_original, ciphertext_anonymized, data_type, column_name, rule_version, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		key, cipherOrig, cipherAnon, dataType.String(), column, RuleVersion, time.Now(),
	)
	if err != nil {
		return fperrors.NewVaultUnavailableError("store", v.path, err)
	}

	v.cache.Add(key, entry{original: original, anonymized: anonymized, dataType: dataType.String(), column: column})
	v.reverse[anonymized] = true
	return nil
}

// Statistics summarizes vault contents for reporting.
type Statistics struct {
	TotalMappings   int
	PerType         map[string]int
	PerColumn       map[string]int
}

// Statistics computes counts across the full mapping table.
func (v *Vault) Statistics() (Statistics, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	stats := Statistics{PerType: make(map[string]int), PerColumn: make(map[string]int)}

	rows, err := v.db.Query("SELECT data_type, column_name FROM mappings")
	if err != nil {
		return stats, fperrors.NewVaultUnavailableError("statistics", v.path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var dataType, column string
		if err := rows.Scan(&dataType, &column); err != nil {
			continue
		}
		stats.TotalMappings++
		stats.PerType[dataType]++
		stats.PerColumn[column]++
	}
	return stats, rows.Err()
}

// Close releases the underlying database handle.
func (v *Vault) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.db.Close(); err != nil {
		return fmt.Errorf("vault: close: %w", err)
	}
	return nil
}
