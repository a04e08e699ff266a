// Package input reads the driver's hash list file and validates each line
// against the MD5 token format (spec section 6.1).
package input

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"
)

var hashPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// Line is one non-empty line of the input file after trimming and
// case-folding, classified as valid or not.
type Line struct {
	Raw   string
	Hash  string // case-folded token; a valid MD5 hash iff Valid
	Valid bool
}

// ReadFile reads path, one token per line, skipping empty lines, returning
// one Line per non-empty line in file order.
func ReadFile(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses r the same way ReadFile parses a file.
func Read(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		token := strings.ToLower(raw)
		lines = append(lines, Line{Raw: raw, Hash: token, Valid: IsValidHash(token)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// IsValidHash reports whether s matches the 32-lowercase-hex MD5 token
// format. s must already be case-folded; IsValidHash does not fold it.
func IsValidHash(s string) bool {
	return hashPattern.MatchString(s)
}
