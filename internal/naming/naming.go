// Package naming validates and sanitizes user-supplied folder names.
package naming

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Reason identifies which rule rejected a candidate name.
type Reason string

const (
	ReasonRequired          Reason = "required"
	ReasonTooShort          Reason = "too_short"
	ReasonTooLong           Reason = "too_long"
	ReasonReserved          Reason = "reserved"
	ReasonIllegalCharacters Reason = "illegal_characters"
	ReasonDotOnly           Reason = "dot_only"
	ReasonEdgeDotsOrSpaces  Reason = "edge_dots_or_spaces"
	ReasonPathTraversal     Reason = "path_traversal"
)

// Error is a rejected folder name with the rule that rejected it.
type Error struct {
	Reason  Reason
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

const (
	minNameLength = 2
	maxNameLength = 255
)

// Reserved names that cannot be used as folder names (Windows devices plus
// a few project-level names that would shadow tooling directories).
var reservedNames = map[string]struct{}{
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {},
	"com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {},
	"lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
	".git": {}, ".env": {}, "node_modules": {},
}

var (
	illegalChars  = regexp.MustCompile(`[\\/:*?"<>|\x00-\x1f]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Validate checks a candidate folder name against the naming rules, applied
// in order with the first failure winning. On success it returns the trimmed
// candidate with every whitespace run collapsed to a single space.
//
// Validate is a pure function: no I/O, no state, same verdict for same input.
func Validate(candidate string) (string, error) {
	trimmed := strings.TrimSpace(candidate)

	if trimmed == "" {
		return "", &Error{ReasonRequired, "folder name is required"}
	}

	if utf8.RuneCountInString(trimmed) < minNameLength {
		return "", &Error{ReasonTooShort, fmt.Sprintf("folder name must be at least %d characters", minNameLength)}
	}

	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return "", &Error{ReasonTooLong, fmt.Sprintf("folder name cannot exceed %d characters", maxNameLength)}
	}

	if _, ok := reservedNames[strings.ToLower(trimmed)]; ok {
		return "", &Error{ReasonReserved, fmt.Sprintf("%q is a reserved name", trimmed)}
	}

	if illegalChars.MatchString(trimmed) {
		return "", &Error{ReasonIllegalCharacters, `folder name cannot contain: \ / : * ? " < > | or control characters`}
	}

	if trimmed == "." || trimmed == ".." {
		return "", &Error{ReasonDotOnly, "folder name cannot be '.' or '..'"}
	}

	if strings.HasPrefix(trimmed, ".") || strings.HasSuffix(trimmed, ".") ||
		strings.HasPrefix(trimmed, " ") || strings.HasSuffix(trimmed, " ") {
		return "", &Error{ReasonEdgeDotsOrSpaces, "folder name cannot start or end with spaces or dots"}
	}

	if strings.Contains(trimmed, "..") {
		return "", &Error{ReasonPathTraversal, "folder name cannot contain '..'"}
	}

	return whitespaceRun.ReplaceAllString(trimmed, " "), nil
}

// IsReserved reports whether name matches the reserved set, case-insensitively.
func IsReserved(name string) bool {
	_, ok := reservedNames[strings.ToLower(name)]
	return ok
}
