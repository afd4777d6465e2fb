package vault

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fpvault/fpanon/internal/model"
)

func readFileForTest(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func openTestVault(t *testing.T) *Vault {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	v, err := Open(path, Options{Password: "correct horse battery staple"})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { v.Close() })
	return v
}

func TestStoreAndLookup(t *testing.T) {
	v := openTestVault(t)

	if err := v.Store("email", model.Email, "alice@example.com", "maria.lopez.123456@example.com"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, ok, err := v.Lookup("email", "alice@example.com")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !ok {
		t.Fatal("expected mapping to be found")
	}
	if got != "maria.lopez.123456@example.com" {
		t.Fatalf("got %q", got)
	}
}

func TestLookupMissReturnsFalse(t *testing.T) {
	v := openTestVault(t)
	_, ok, err := v.Lookup("email", "nobody@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected miss")
	}
}

func TestReverseLookup(t *testing.T) {
	v := openTestVault(t)
	if err := v.Store("phone", model.Phone, "+14155552671", "+19876543210"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	orig, ok, err := v.Reverse("phone", "+19876543210")
	if err != nil {
		t.Fatalf("Reverse failed: %v", err)
	}
	if !ok || orig != "+14155552671" {
		t.Fatalf("got orig=%q ok=%v", orig, ok)
	}
}

func TestIsUsedTracksStoredValues(t *testing.T) {
	v := openTestVault(t)
	if v.IsUsed("x@y.com") {
		t.Fatal("expected not used before Store")
	}
	if err := v.Store("email", model.Email, "a@b.com", "x@y.com"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if !v.IsUsed("x@y.com") {
		t.Fatal("expected used after Store")
	}
}

func TestStoreIsIdempotentUpsert(t *testing.T) {
	v := openTestVault(t)
	if err := v.Store("email", model.Email, "a@b.com", "x@y.com"); err != nil {
		t.Fatalf("first store failed: %v", err)
	}
	if err := v.Store("email", model.Email, "a@b.com", "x@y.com"); err != nil {
		t.Fatalf("second store failed: %v", err)
	}

	stats, err := v.Statistics()
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}
	if stats.TotalMappings != 1 {
		t.Fatalf("expected 1 mapping after repeated store, got %d", stats.TotalMappings)
	}
}

func TestStatisticsCounts(t *testing.T) {
	v := openTestVault(t)
	_ = v.Store("email", model.Email, "a@b.com", "x@y.com")
	_ = v.Store("email", model.Email, "c@d.com", "z@w.com")
	_ = v.Store("phone", model.Phone, "+14155550000", "+19876540000")

	stats, err := v.Statistics()
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}
	if stats.TotalMappings != 3 {
		t.Fatalf("expected 3 total, got %d", stats.TotalMappings)
	}
	if stats.PerType["EMAIL"] != 2 {
		t.Fatalf("expected 2 EMAIL, got %d", stats.PerType["EMAIL"])
	}
	if stats.PerColumn["phone"] != 1 {
		t.Fatalf("expected 1 phone, got %d", stats.PerColumn["phone"])
	}
}

func TestVaultPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	v1, err := Open(path, Options{Password: "hunter2"})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := v1.Store("email", model.Email, "a@b.com", "x@y.com"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	v1.Close()

	v2, err := Open(path, Options{Password: "hunter2"})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer v2.Close()

	got, ok, err := v2.Lookup("email", "a@b.com")
	if err != nil || !ok || got != "x@y.com" {
		t.Fatalf("got %q ok=%v err=%v", got, ok, err)
	}
	if !v2.IsUsed("x@y.com") {
		t.Fatal("expected reverse index preloaded after reopen")
	}
}

func TestWrongPasswordDoesNotDecryptExistingData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrongpw.db")

	v1, err := Open(path, Options{Password: "correct"})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := v1.Store("email", model.Email, "a@b.com", "x@y.com"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	v1.Close()

	v2, err := Open(path, Options{Password: "wrong"})
	if err != nil {
		t.Fatalf("Open with wrong password should still succeed (salt is shared): %v", err)
	}
	defer v2.Close()

	_, ok, err := v2.Lookup("email", "a@b.com")
	if ok {
		t.Fatal("expected lookup to miss under the wrong key")
	}
	_ = err
}

func TestCheckCollisionScopedToColumnExcludesSameOriginal(t *testing.T) {
	v := openTestVault(t)
	if err := v.Store("email", model.Email, "alice@example.com", "shared@example.com"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	collides, err := v.CheckCollision("email", "shared@example.com", "bob@example.com")
	if err != nil {
		t.Fatalf("CheckCollision failed: %v", err)
	}
	if !collides {
		t.Fatal("expected a collision: a different original already owns this candidate")
	}

	collides, err = v.CheckCollision("email", "shared@example.com", "alice@example.com")
	if err != nil {
		t.Fatalf("CheckCollision failed: %v", err)
	}
	if collides {
		t.Fatal("expected no collision: checking against its own original is not a collision")
	}

	collides, err = v.CheckCollision("phone", "shared@example.com", "bob@example.com")
	if err != nil {
		t.Fatalf("CheckCollision failed: %v", err)
	}
	if collides {
		t.Fatal("expected no collision in an unrelated column")
	}
}

func TestExportAndLoadKeyRoundTripsAndReopensVault(t *testing.T) {
	vaultPath := filepath.Join(t.TempDir(), "random-key.db")
	keyPath := filepath.Join(t.TempDir(), "session.key")

	v1, err := Open(vaultPath, Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := v1.Store("email", model.Email, "a@b.com", "x@y.com"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := v1.ExportKey(keyPath); err != nil {
		t.Fatalf("ExportKey failed: %v", err)
	}
	v1.Close()

	raw, err := os.ReadFile(keyPath)
	if err != nil {
		t.Fatalf("reading key file: %v", err)
	}
	if !strings.Contains(string(raw), `"encryption_key"`) || !strings.Contains(string(raw), `"vault_path"`) {
		t.Fatalf("expected JSON envelope with encryption_key/vault_path, got %s", raw)
	}

	key, loadedPath, err := LoadKey(keyPath)
	if err != nil {
		t.Fatalf("LoadKey failed: %v", err)
	}
	if loadedPath != vaultPath {
		t.Fatalf("expected vault_path %q, got %q", vaultPath, loadedPath)
	}

	v2, err := Open(vaultPath, Options{Key: key})
	if err != nil {
		t.Fatalf("reopen with injected key failed: %v", err)
	}
	defer v2.Close()

	got, ok, err := v2.Lookup("email", "a@b.com")
	if err != nil || !ok || got != "x@y.com" {
		t.Fatalf("got %q ok=%v err=%v", got, ok, err)
	}
}

func TestConfidentialityNoPlaintextSubstringOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "confidential.db")
	v, err := Open(path, Options{Password: "correct horse battery staple"})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	secret := "extremely-sensitive-original-value"
	replacement := "synthetic-replacement-value-here"
	if err := v.Store("notes", model.FreeText, secret, replacement); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	v.Close()

	raw, err := readFileForTest(path)
	if err != nil {
		t.Fatalf("reading db file: %v", err)
	}
	content := string(raw)
	if strings.Contains(content, secret) {
		t.Fatal("plaintext original leaked into vault file")
	}
	if strings.Contains(content, replacement) {
		t.Fatal("plaintext replacement leaked into vault file")
	}
}
