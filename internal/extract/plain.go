package extract

import (
	"strings"
	"unicode/utf8"
)

// PlainExtractor returns content as-is, validating it is UTF-8.
type PlainExtractor struct{}

// Extract returns the content as a string. Invalid UTF-8 sequences are
// replaced with the replacement character.
func (e *PlainExtractor) Extract(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return strings.ToValidUTF8(string(content), "�"), nil
	}
	return string(content), nil
}
