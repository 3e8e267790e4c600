package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID identifies a catalog item. The cache service emits ids as either JSON
// numbers or strings; both decode to the same canonical text, so 603 and "603"
// are the same item.
type ID string

// ParseID builds an ID from user input such as a CLI argument. Input that is
// a JSON number is canonicalized the way a wire number is, so "603.0" and
// " 603" both give 603. Anything else, "007" included, is kept verbatim.
func ParseID(s string) ID {
	s = strings.TrimSpace(s)
	if isJSONNumber(s) {
		return numberID(json.Number(s))
	}
	return ID(s)
}

// IsZero reports whether the id is missing.
func (id ID) IsZero() bool { return id == "" }

func (id ID) String() string { return string(id) }

// IsNumeric reports whether the id is the canonical text of an integer, which
// is how it is written back to JSON. "007" and "+5" are not.
func (id ID) IsNumeric() bool {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == string(id)
}

// UnmarshalJSON accepts numbers, strings and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid id %s: %w", data, err)
		}
		*id = numberID(n)
		return nil
	}
}

// MarshalJSON writes integer ids as numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsNumeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// numberID canonicalizes a JSON number: 603, 603.0 and 6.03e2 name the same item.
func numberID(n json.Number) ID {
	if i, err := n.Int64(); err == nil {
		return ID(strconv.FormatInt(i, 10))
	}
	if f, err := n.Float64(); err == nil && f == float64(int64(f)) {
		return ID(strconv.FormatInt(int64(f), 10))
	}
	return ID(n.String())
}

func isJSONNumber(s string) bool {
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}
	return json.Valid([]byte(s))
}
