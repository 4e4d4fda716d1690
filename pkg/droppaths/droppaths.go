// Package droppaths splits the raw text produced by dragging files onto a
// window or terminal into individual paths.
package droppaths

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// Precompiled regular expressions used for payload detection and splitting.
var (
	// WindowsPayloadPattern matches payloads that start with a drive letter,
	// optionally inside a brace group.
	WindowsPayloadPattern = regexp.MustCompile(`^\{?[A-Za-z]:[\\/]`)
	// DriveBoundaryPattern matches whitespace followed by the next drive letter.
	DriveBoundaryPattern = regexp.MustCompile(`\s+\{?[A-Za-z]:[\\/]`)
)

var braceStripper = strings.NewReplacer("{", "", "}", "")

// Split returns the paths contained in payload, in order.
//
// Windows payloads ("C:/a b.pdf D:/c.pdf", optionally brace wrapped) are split
// before every drive letter, so paths may contain spaces. Other payloads are
// split like shell words: whitespace separates paths unless quoted, escaped
// with a backslash, or wrapped in braces. file:// URIs are converted to
// plain paths.
func Split(payload string) []string {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil
	}

	var parts []string
	if WindowsPayloadPattern.MatchString(payload) {
		parts = splitBeforeDrives(payload)
	} else {
		parts = splitWords(payload)
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, fromFileURI(p))
	}
	return out
}

// splitBeforeDrives cuts payload at every whitespace run that precedes a
// drive letter, then drops brace wrapping.
func splitBeforeDrives(payload string) []string {
	var parts []string
	start := 0
	for _, loc := range DriveBoundaryPattern.FindAllStringIndex(payload, -1) {
		parts = append(parts, payload[start:loc[0]])
		start = loc[0]
	}
	parts = append(parts, payload[start:])

	for i, p := range parts {
		parts[i] = strings.TrimSpace(braceStripper.Replace(p))
	}
	return parts
}

// splitWords tokenizes payload following shell quoting rules plus Tk brace
// groups.
func splitWords(payload string) []string {
	var (
		words   []string
		current strings.Builder
		inWord  bool
		quote   rune // active quote character, 0 when none
		braces  int
		escaped bool
	)

	flush := func() {
		if inWord {
			words = append(words, current.String())
			current.Reset()
			inWord = false
		}
	}

	for _, r := range payload {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case braces > 0:
			switch r {
			case '{':
				braces++
				current.WriteRune(r)
			case '}':
				braces--
				if braces > 0 {
					current.WriteRune(r)
				}
			default:
				current.WriteRune(r)
			}
		case quote != 0:
			switch {
			case r == quote:
				quote = 0
			case r == '\\' && quote == '"':
				escaped = true
			default:
				current.WriteRune(r)
			}
		case r == '\\':
			escaped = true
			inWord = true
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case r == '{' && !inWord:
			braces = 1
			inWord = true
		case unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	flush()
	return words
}

// fromFileURI converts a file:// URI into a filesystem path. Anything else is
// returned unchanged.
func fromFileURI(p string) string {
	if !strings.HasPrefix(p, "file://") {
		return p
	}
	u, err := url.Parse(p)
	if err != nil || u.Path == "" {
		return p
	}
	return u.Path
}
