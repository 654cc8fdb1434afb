package textutil

import "strings"

// unsafeFileChars are replaced in file stems built from character names.
var unsafeFileChars = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName turns a character name into a file stem. Path separators
// and other characters rejected by common filesystems become dashes or are
// dropped, and inner runs of whitespace collapse to one underscore. Japanese
// text is kept as-is.
func SanitizeFileName(name string) string {
	fields := strings.Fields(unsafeFileChars.Replace(name))
	return strings.Join(fields, "_")
}
