// Package idgen provides short, URL-safe unique ID generation backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Entity prefixes. Every ID carries the prefix of the entity it names.
const (
	PrefixMember = "mb-"
	PrefixBoard  = "bd-"
	PrefixGroup  = "gr-"
	PrefixItem   = "it-"
)

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

// Member returns a new member ID.
func Member() (string, error) { return GenerateWithPrefix(PrefixMember) }

// Board returns a new board ID.
func Board() (string, error) { return GenerateWithPrefix(PrefixBoard) }

// Group returns a new group ID.
func Group() (string, error) { return GenerateWithPrefix(PrefixGroup) }

// Item returns a new item ID.
func Item() (string, error) { return GenerateWithPrefix(PrefixItem) }

// GenerateWithPrefix returns a new unique ID with the given prefix.
func GenerateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}
