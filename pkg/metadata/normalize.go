package metadata

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Unknown is the placeholder shown for metadata fields that are absent or
// empty in the source series.
const Unknown = "unknown"

var titleCaser = cases.Title(language.Und)

// OrUnknown substitutes the Unknown placeholder for empty values.
func OrUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unknown
	}
	return s
}

// UpperName normalizes a patient name to upper case, substituting Unknown
// when the name is absent.
func UpperName(s string) string {
	return OrUnknown(strings.ToUpper(strings.TrimSpace(s)))
}

// Capitalize title-cases a descriptive field such as a sex code or a body
// part label ("CHEST" becomes "Chest"), substituting Unknown when the field
// is absent.
func Capitalize(s string) string {
	return OrUnknown(titleCaser.String(strings.TrimSpace(s)))
}
