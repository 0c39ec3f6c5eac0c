package strata

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxCommandSize bounds one Runner command line.
const MaxCommandSize = 1024

var (
	ErrCommandTooLarge = errors.New("command exceeds maximum allowed size")
	ErrInvalidUTF8     = errors.New("command contains invalid UTF-8 sequences")
)

// SanitizeCommand rejects oversized or malformed command lines and strips control
// characters (escape sequences, NUL, BEL) so they never reach logs or the terminal.
func SanitizeCommand(line string) (string, error) {
	if len(line) > MaxCommandSize {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrCommandTooLarge, len(line), MaxCommandSize)
	}
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}
	if strings.IndexFunc(line, unsafeControl) < 0 {
		return line, nil
	}
	return strings.Map(func(r rune) rune {
		if unsafeControl(r) {
			return -1
		}
		return r
	}, line), nil
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
