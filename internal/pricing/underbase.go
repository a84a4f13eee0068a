package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// UnderbaseOverride is a caller's explicit underbase choice.
type UnderbaseOverride int

const (
	UnderbaseUnset UnderbaseOverride = iota
	UnderbaseForceOff
	UnderbaseForceOn
)

// Set reports whether the caller made a choice.
func (u UnderbaseOverride) Set() bool {
	return u == UnderbaseForceOff || u == UnderbaseForceOn
}

func (u UnderbaseOverride) String() string {
	switch u {
	case UnderbaseForceOff:
		return "off"
	case UnderbaseForceOn:
		return "on"
	default:
		return "unset"
	}
}

// ParseUnderbaseOverride accepts on/off, true/false, yes/no and unset/auto/"".
func ParseUnderbaseOverride(s string) (UnderbaseOverride, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unset", "auto", "null":
		return UnderbaseUnset, nil
	case "on", "true", "yes", "1":
		return UnderbaseForceOn, nil
	case "off", "false", "no", "0":
		return UnderbaseForceOff, nil
	}
	return UnderbaseUnset, fmt.Errorf("invalid underbase override %q", s)
}

// MarshalJSON encodes the override as null, true or false.
func (u UnderbaseOverride) MarshalJSON() ([]byte, error) {
	switch u {
	case UnderbaseForceOn:
		return []byte("true"), nil
	case UnderbaseForceOff:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, booleans and the strings understood by
// ParseUnderbaseOverride.
func (u *UnderbaseOverride) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "null":
		*u = UnderbaseUnset
		return nil
	case "true":
		*u = UnderbaseForceOn
		return nil
	case "false":
		*u = UnderbaseForceOff
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decode underbase override: %w", err)
	}
	v, err := ParseUnderbaseOverride(s)
	if err != nil {
		return err
	}
	*u = v
	return nil
}
