package secrets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

var (
	ErrNotFound  = errors.New("secret not found")
	ErrDuplicate = errors.New("secret already exists")
	ErrDecrypt   = errors.New("failed to decrypt secret vault (wrong password?)")
	ErrLocked    = errors.New("secret vault not opened")
)

// vaultVersion is bumped on incompatible file format changes.
const vaultVersion = 1

type vaultFile struct {
	Version int       `json:"version"`
	KDF     KDFParams `json:"kdf"`
	Salt    []byte    `json:"salt"`
	Data    []byte    `json:"data"`
}

// header is the authenticated, unencrypted part of the file.
func (v vaultFile) header() []byte {
	return fmt.Appendf(nil, "inkboard-vault/%d/%d/%d/%d/%x", v.Version, v.KDF.Time, v.KDF.Memory, v.KDF.Threads, v.Salt)
}

// FileStore implements Provider with AES-256-GCM encrypted file persistence.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	file    vaultFile
	sealer  *sealer
	secrets map[string]Secret
}

// NewFileStore opens or creates an encrypted vault at path. A missing
// file is created with a fresh salt; an existing one is decrypted with
// password.
func NewFileStore(path string, password []byte) (*FileStore, error) {
	s := &FileStore{path: path, secrets: make(map[string]Secret)}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := s.rekey(password, DefaultKDF); err != nil {
			return nil, err
		}
		return s, s.save()
	}

	if err := json.Unmarshal(data, &s.file); err != nil {
		return nil, fmt.Errorf("corrupt secret vault: %w", err)
	}
	if s.file.Version != vaultVersion {
		return nil, fmt.Errorf("secret vault version %d not supported", s.file.Version)
	}
	if s.sealer, err = newSealer(s.file.KDF.DeriveKey(password, s.file.Salt)); err != nil {
		return nil, err
	}
	plaintext, err := s.sealer.open(s.file.Data, s.file.header())
	if err != nil {
		return nil, ErrDecrypt
	}
	if err := json.Unmarshal(plaintext, &s.secrets); err != nil {
		return nil, fmt.Errorf("corrupt secret data: %w", err)
	}
	return s, nil
}

// rekey installs a new salt and key derived from password.
func (s *FileStore) rekey(password []byte, kdf KDFParams) error {
	salt, err := newSalt()
	if err != nil {
		return err
	}
	sl, err := newSealer(kdf.DeriveKey(password, salt))
	if err != nil {
		return err
	}
	s.file = vaultFile{Version: vaultVersion, KDF: kdf, Salt: salt}
	s.sealer = sl
	return nil
}

// save encrypts and writes the secrets to disk.
func (s *FileStore) save() error {
	plaintext, err := json.Marshal(s.secrets)
	if err != nil {
		return err
	}
	if s.file.Data, err = s.sealer.seal(plaintext, s.file.header()); err != nil {
		return err
	}
	data, err := json.Marshal(s.file)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// List returns summaries of all stored secrets, by name.
func (s *FileStore) List() ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summaries := make([]Summary, 0, len(s.secrets))
	for _, sec := range s.secrets {
		summaries = append(summaries, sec.Summarize())
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries, nil
}

// Get returns the secret with the given name, or ErrNotFound.
func (s *FileStore) Get(name string) (*Secret, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sec, ok := s.secrets[name]
	if !ok {
		return nil, ErrNotFound
	}
	return &sec, nil
}

// Add stores a new secret. Returns ErrDuplicate if the name already exists.
func (s *FileStore) Add(sec Secret) error {
	if err := sec.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.secrets[sec.Name]; exists {
		return ErrDuplicate
	}
	s.secrets[sec.Name] = sec
	return s.save()
}

// Update replaces an existing secret, renaming it when sec.Name differs.
func (s *FileStore) Update(name string, sec Secret) error {
	if err := sec.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.secrets[name]; !exists {
		return ErrNotFound
	}
	if name != sec.Name {
		if _, taken := s.secrets[sec.Name]; taken {
			return ErrDuplicate
		}
		delete(s.secrets, name)
	}
	s.secrets[sec.Name] = sec
	return s.save()
}

// Remove deletes a secret by name. Returns ErrNotFound if it does not exist.
func (s *FileStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.secrets[name]; !exists {
		return ErrNotFound
	}
	delete(s.secrets, name)
	return s.save()
}

// ChangePassword re-encrypts the vault under a new password and salt.
func (s *FileStore) ChangePassword(password []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rekey(password, s.file.KDF); err != nil {
		return err
	}
	return s.save()
}
