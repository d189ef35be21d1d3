// Package secrets keeps API tokens in an encrypted file so config.toml
// can refer to them by name.
package secrets

import (
	"fmt"
	"strings"
)

// Kinds of secret. They only drive display and validation.
const (
	KindHomeAssistantToken = "home_assistant_token"
	KindEcowittAPIKey      = "ecowitt_api_key"
	KindEcowittAppKey      = "ecowitt_application_key"
	KindGeneric            = "generic"
)

// Kinds lists the accepted kinds.
var Kinds = []string{KindHomeAssistantToken, KindEcowittAPIKey, KindEcowittAppKey, KindGeneric}

// Secret is one named credential.
type Secret struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Note  string `json:"note,omitempty"`
}

// Summary is a Secret without its value.
type Summary struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	Hint string `json:"hint"`
	Note string `json:"note,omitempty"`
}

// Summarize returns a Summary whose Hint shows at most the last four
// characters of long values.
func (s *Secret) Summarize() Summary {
	hint := strings.Repeat("*", 8)
	if len(s.Value) >= 16 {
		hint += s.Value[len(s.Value)-4:]
	}
	return Summary{Name: s.Name, Kind: s.Kind, Hint: hint, Note: s.Note}
}

// Validate checks the name and kind and that a value is present.
func (s *Secret) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("secret name is empty")
	}
	if s.Value == "" {
		return fmt.Errorf("secret %q has no value", s.Name)
	}
	for _, k := range Kinds {
		if s.Kind == k {
			return nil
		}
	}
	return fmt.Errorf("secret %q has unknown kind %q", s.Name, s.Kind)
}

// Provider is the interface for secret storage backends.
type Provider interface {
	List() ([]Summary, error)
	Get(name string) (*Secret, error)
	Add(s Secret) error
	Update(name string, s Secret) error
	Remove(name string) error
}

// Resolve returns inline when set, otherwise the value of the secret
// called name. Both empty resolves to "". A nil provider with a name is
// an error.
func Resolve(p Provider, inline, name string) (string, error) {
	if inline != "" || name == "" {
		return inline, nil
	}
	if p == nil {
		return "", fmt.Errorf("secret %q: %w", name, ErrLocked)
	}
	s, err := p.Get(name)
	if err != nil {
		return "", fmt.Errorf("secret %q: %w", name, err)
	}
	return s.Value, nil
}
