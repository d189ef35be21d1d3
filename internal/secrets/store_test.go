package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secrets.enc")
	store, err := NewFileStore(path, []byte("test-master-password"))
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	return store, path
}

func haToken(name string) Secret {
	return Secret{Name: name, Kind: KindHomeAssistantToken, Value: "eyJhbGciOiJIUzI1NiJ9.token-value"}
}

func TestStoreAddAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.Add(haToken("ha")); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	got, err := store.Get("ha")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Value != "eyJhbGciOiJIUzI1NiJ9.token-value" {
		t.Errorf("unexpected value %q", got.Value)
	}
	if err := store.Add(haToken("ha")); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestStoreRejectsInvalid(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.Add(Secret{Name: "x", Kind: "password", Value: "v"}); err == nil {
		t.Error("expected error for unknown kind")
	}
	if err := store.Add(Secret{Name: "x", Kind: KindGeneric}); err == nil {
		t.Error("expected error for empty value")
	}
}

func TestStoreListHidesValues(t *testing.T) {
	store, _ := newTestStore(t)
	store.Add(haToken("b"))
	store.Add(Secret{Name: "a", Kind: KindEcowittAPIKey, Value: "short"})

	summaries, err := store.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(summaries) != 2 || summaries[0].Name != "a" {
		t.Fatalf("expected [a b], got %+v", summaries)
	}
	if strings.Contains(summaries[0].Hint, "short") {
		t.Errorf("hint leaks a short value: %q", summaries[0].Hint)
	}
	if !strings.HasSuffix(summaries[1].Hint, "alue") {
		t.Errorf("expected hint to end with the last 4 characters, got %q", summaries[1].Hint)
	}
}

func TestStoreUpdateAndRemove(t *testing.T) {
	store, _ := newTestStore(t)
	store.Add(haToken("old"))
	store.Add(haToken("taken"))

	if err := store.Update("old", haToken("taken")); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate on rename collision, got %v", err)
	}
	if err := store.Update("old", haToken("new")); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if _, err := store.Get("old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected old name gone, got %v", err)
	}
	if err := store.Remove("new"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if err := store.Remove("new"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStorePersistence(t *testing.T) {
	store, path := newTestStore(t)
	store.Add(haToken("ha"))

	raw, _ := os.ReadFile(path)
	if strings.Contains(string(raw), "token-value") {
		t.Error("vault file contains plaintext")
	}

	reopened, err := NewFileStore(path, []byte("test-master-password"))
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	if _, err := reopened.Get("ha"); err != nil {
		t.Errorf("expected secret after reopen, got %v", err)
	}

	if _, err := NewFileStore(path, []byte("wrong")); !errors.Is(err, ErrDecrypt) {
		t.Errorf("expected ErrDecrypt, got %v", err)
	}
}

func TestStoreChangePassword(t *testing.T) {
	store, path := newTestStore(t)
	store.Add(haToken("ha"))
	if err := store.ChangePassword([]byte("new-password")); err != nil {
		t.Fatalf("ChangePassword() error: %v", err)
	}
	if _, err := NewFileStore(path, []byte("test-master-password")); !errors.Is(err, ErrDecrypt) {
		t.Errorf("expected old password to fail, got %v", err)
	}
	reopened, err := NewFileStore(path, []byte("new-password"))
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	if _, err := reopened.Get("ha"); err != nil {
		t.Errorf("expected secret after password change, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	store, _ := newTestStore(t)
	store.Add(haToken("ha"))

	if v, _ := Resolve(store, "inline", "ha"); v != "inline" {
		t.Errorf("expected inline value to win, got %q", v)
	}
	if v, _ := Resolve(store, "", "ha"); v != "eyJhbGciOiJIUzI1NiJ9.token-value" {
		t.Errorf("expected vault value, got %q", v)
	}
	if v, err := Resolve(nil, "", ""); v != "" || err != nil {
		t.Errorf("expected empty resolution, got %q %v", v, err)
	}
	if _, err := Resolve(nil, "", "ha"); !errors.Is(err, ErrLocked) {
		t.Errorf("expected ErrLocked, got %v", err)
	}
	if _, err := Resolve(store, "", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
