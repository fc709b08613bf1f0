// Package textutil provides label sanitization and display helpers for
// pipeline titles and step directory names.
package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	unsafePattern   = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	codePrefixMatch = regexp.MustCompile(`^[0-9A-Za-z]{3}_`)
	titleCaser      = cases.Title(language.English)
)

// SanitizeLabel converts an arbitrary title into a filesystem-safe pipeline
// label: path-hostile characters collapse to single underscores.
func SanitizeLabel(title string) string {
	trimmed := strings.TrimSpace(title)
	cleaned := unsafePattern.ReplaceAllString(trimmed, "_")
	return strings.Trim(cleaned, "_")
}

// DisplayName renders a step directory name for human output: the three
// character code prefix is stripped and the remainder is title-cased with
// spaces ("010_empty_mask" becomes "Empty Mask").
func DisplayName(dir string) string {
	name := codePrefixMatch.ReplaceAllString(dir, "")
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return dir
	}
	return titleCaser.String(name)
}
