package objgraph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Lifetime decides whether the container keeps what it constructs.
// It never affects identifiers bound with Bind, which always return the bound
// value.
type Lifetime int

const (
	// Transient builds a new instance on every resolution of an unbound
	// identifier.
	Transient Lifetime = iota

	// Singleton binds the first instance constructed for an identifier, so
	// later resolutions return it without construction.
	Singleton
)

// String returns the string representation of the Lifetime.
func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "Transient"
	case Singleton:
		return "Singleton"
	default:
		return fmt.Sprintf("Unknown(%d)", int(l))
	}
}

// IsValid checks if the lifetime is valid.
func (l Lifetime) IsValid() bool {
	return l >= Transient && l <= Singleton
}

// ParseLifetime parses a lifetime name, case-insensitively.
func ParseLifetime(s string) (Lifetime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "transient", "":
		return Transient, nil
	case "singleton":
		return Singleton, nil
	default:
		return Transient, LifetimeError{Value: s}
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Lifetime) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, LifetimeError{Value: int(l)}
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Lifetime) UnmarshalText(text []byte) error {
	parsed, err := ParseLifetime(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l Lifetime) MarshalJSON() ([]byte, error) {
	text, err := l.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Lifetime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	return l.UnmarshalText([]byte(s))
}
