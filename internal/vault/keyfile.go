package vault

import (
	"encoding/base64"
	"encoding/json"
	"os"

	"github.com/fpvault/fpanon/internal/errors"
)

// keyFile is the on-disk JSON envelope written by ExportKey and read
// by LoadKey.
type keyFile struct {
	EncryptionKey string `json:"encryption_key"`
	VaultPath     string `json:"vault_path"`
}

// ExportKey writes the vault's raw AES key, base64-encoded, and its
// vault path to path as a JSON envelope. This is the only way to
// recover a randomly generated (passwordless) key after the process
// exits; anyone holding the file can decrypt the vault, so callers are
// responsible for its permissions.
func (v *Vault) ExportKey(path string) error {
	kf := keyFile{
		EncryptionKey: base64.StdEncoding.EncodeToString(v.key),
		VaultPath:     v.path,
	}
	data, err := json.Marshal(kf)
	if err != nil {
		return errors.NewVaultUnavailableError("export-key", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.NewVaultUnavailableError("export-key", path, err)
	}
	return nil
}

// LoadKey reads a key-file JSON envelope previously written by
// ExportKey and returns the decoded key bytes (for use with Open's
// Options.Key, the load_key path) and the vault path it was exported
// alongside.
func LoadKey(path string) (key []byte, vaultPath string, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.NewVaultUnavailableError("load-key", path, err)
	}

	var kf keyFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return nil, "", errors.NewCryptoKeyMismatchError("load-key", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(kf.EncryptionKey)
	if err != nil {
		return nil, "", errors.NewCryptoKeyMismatchError("load-key", err)
	}
	if len(decoded) != keyLen {
		return nil, "", errors.NewCryptoKeyMismatchError("load-key", errKeyLength)
	}
	return decoded, kf.VaultPath, nil
}
