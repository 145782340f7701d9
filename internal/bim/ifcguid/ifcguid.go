// Package ifcguid converts between RFC 4122 UUIDs and the 22-character
// base-64 GlobalId encoding used to identify model elements.
package ifcguid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Length is the number of characters in a compressed GlobalId
const Length = 22

// Placeholder marks ids that were never assigned by the authoring tool.
// Strings containing it are never treated as GlobalIds when matching filters.
const Placeholder = "$"

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_$"

// New returns a fresh random GlobalId
func New() string {
	return FromUUID(uuid.New())
}

// FromUUID compresses a UUID into its 22-character GlobalId form
func FromUUID(u uuid.UUID) string {
	var sb strings.Builder
	sb.Grow(Length)
	writeBase64(&sb, uint32(u[0]), 2)
	for i := 1; i < 16; i += 3 {
		v := uint32(u[i])<<16 | uint32(u[i+1])<<8 | uint32(u[i+2])
		writeBase64(&sb, v, 4)
	}
	return sb.String()
}

// ToUUID expands a GlobalId back into a UUID
func ToUUID(id string) (uuid.UUID, error) {
	var u uuid.UUID
	if len(id) != Length {
		return u, fmt.Errorf("globalid %q: expected %d characters, got %d", id, Length, len(id))
	}

	first, err := decodeBase64(id[:2])
	if err != nil {
		return u, fmt.Errorf("globalid %q: %w", id, err)
	}
	if first > 0xff {
		return u, fmt.Errorf("globalid %q: leading group out of range", id)
	}
	u[0] = byte(first)

	for i, j := 1, 2; i < 16; i, j = i+3, j+4 {
		v, err := decodeBase64(id[j : j+4])
		if err != nil {
			return u, fmt.Errorf("globalid %q: %w", id, err)
		}
		u[i] = byte(v >> 16)
		u[i+1] = byte(v >> 8)
		u[i+2] = byte(v)
	}
	return u, nil
}

// Valid reports whether s is a well-formed GlobalId (length and alphabet)
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}

// LooksLikeID reports whether a user-supplied filter should be matched
// against element ids rather than names.
func LooksLikeID(s string) bool {
	return len(s) == Length && !strings.Contains(s, Placeholder)
}

func writeBase64(sb *strings.Builder, v uint32, digits int) {
	buf := make([]byte, digits)
	for i := digits - 1; i >= 0; i-- {
		buf[i] = alphabet[v%64]
		v /= 64
	}
	sb.Write(buf)
}

func decodeBase64(s string) (uint32, error) {
	var v uint32
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(alphabet, s[i])
		if idx < 0 {
			return 0, fmt.Errorf("invalid character %q", s[i])
		}
		v = v*64 + uint32(idx)
	}
	return v, nil
}
