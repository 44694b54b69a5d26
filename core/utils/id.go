package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const shareCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateShareCode returns a short URL-safe code used to address an event
// publicly without exposing its row ID.
func GenerateShareCode() string {
	id, err := gonanoid.Generate(shareCodeAlphabet, 8)
	if err != nil {
		return ""
	}
	return id
}
