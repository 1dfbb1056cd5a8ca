package media

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxFilenameBytes = 255

var (
	unsafeChars      = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)
	underscoreRuns   = regexp.MustCompile(`_{2,}`)
	reservedNames    = regexp.MustCompile(`^\.+$`)
	windowsReserved  = regexp.MustCompile(`(?i)^(con|prn|aux|nul|com[0-9]|lpt[0-9])(\..*)?$`)
	windowsTrailing  = regexp.MustCompile(`[. ]+$`)
	profileIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
)

// invisible covers zero width characters, the byte order mark and the narrow
// no-break space.
var invisible = runes.Predicate(func(r rune) bool {
	return unicode.Is(unicode.Cf, r) || r == '\u202f'
})

// SanitizeFilename turns an uploaded file name into a name that is safe on
// every filesystem and ASCII only. Accents are folded to their base letter,
// invisible characters dropped and anything else outside [A-Za-z0-9_.-]
// becomes a single underscore. An empty result means nothing usable was left.
func SanitizeFilename(name string) string {
	t := transform.Chain(runes.Remove(invisible), norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFKC)

	folded, _, err := transform.String(t, strings.TrimSpace(name))
	if err != nil {
		folded = name
	}

	safe := unsafeChars.ReplaceAllString(folded, "_")
	safe = underscoreRuns.ReplaceAllString(safe, "_")

	safe = reservedNames.ReplaceAllString(safe, "")
	safe = windowsReserved.ReplaceAllString(safe, "")
	safe = windowsTrailing.ReplaceAllString(safe, "")

	if len(safe) > maxFilenameBytes {
		safe = safe[:maxFilenameBytes]
	}

	return safe
}

// ValidProfileID reports whether id can be used as a storage directory name.
func ValidProfileID(id string) bool {
	return profileIDPattern.MatchString(id)
}

// validStoredName reports whether name could have been produced by
// SanitizeFilename, which rules out path separators and traversal.
func validStoredName(name string) bool {
	return name != "" && SanitizeFilename(name) == name
}
