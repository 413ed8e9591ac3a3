package semver

import "strings"

// Version is a leniently parsed semantic version. The zero value is the
// lowest possible version; malformed input parses to it instead of
// producing an error so that odd release tags never abort a run.
type Version struct {
	Major int
	Minor int
	Patch int
	Label string

	valid bool
}

// Parse splits text on '.' and '-' into at most 6 tokens. The first
// three tokens are major, minor and patch; everything from the fourth
// token's start to the end of the string becomes the pre-release label,
// kept verbatim. Build metadata after a '+' is discarded. Fewer than 3
// tokens, or non-numeric leading tokens, yield the zero Version.
func Parse(text string) Version {
	type span struct{ start, end int }
	spans := make([]span, 0, 6)

	start := 0
	for i := 0; i <= len(text); i++ {
		if i == len(text) || text[i] == '.' || text[i] == '-' {
			spans = append(spans, span{start, i})
			start = i + 1
			if len(spans) == 6 {
				break
			}
		}
	}

	if len(spans) < 3 {
		return Version{}
	}

	major, ok := parseNumber(text[spans[0].start:spans[0].end])
	if !ok {
		return Version{}
	}
	minor, ok := parseNumber(text[spans[1].start:spans[1].end])
	if !ok {
		return Version{}
	}
	patch, ok := parseNumber(text[spans[2].start:spans[2].end])
	if !ok {
		return Version{}
	}

	label := ""
	if len(spans) > 3 {
		label = text[spans[3].start:]
		if plus := strings.IndexByte(label, '+'); plus > 0 {
			label = label[:plus]
		}
	}

	return Version{
		Major: major,
		Minor: minor,
		Patch: patch,
		Label: label,
		valid: true,
	}
}

// parseNumber reads the leading decimal digits of a token. Trailing
// build metadata attached directly to the patch ("3+build1") is ignored,
// keeping "1.2.3+build1" equal to "1.2.3" in ordering.
func parseNumber(token string) (int, bool) {
	if token == "" || token[0] < '0' || token[0] > '9' {
		return 0, false
	}
	n := 0
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// Valid reports whether the version came from a parseable string
func (v Version) Valid() bool {
	return v.valid
}

// String renders the version back to "major.minor.patch[-label]" form.
// The zero Version renders as the empty string.
func (v Version) String() string {
	if !v.valid {
		return ""
	}
	var b strings.Builder
	writeInt(&b, v.Major)
	b.WriteByte('.')
	writeInt(&b, v.Minor)
	b.WriteByte('.')
	writeInt(&b, v.Patch)
	if v.Label != "" {
		b.WriteByte('-')
		b.WriteString(v.Label)
	}
	return b.String()
}

func writeInt(b *strings.Builder, n int) {
	if n >= 10 {
		writeInt(b, n/10)
	}
	b.WriteByte(byte('0' + n%10))
}

// Compare returns -1, 0 or 1. Numeric fields compare first; on a tie a
// version without a label sorts above one with a label (release above
// pre-release), and two labels compare as case-insensitive ordinal
// strings. Invalid versions sort below everything.
func Compare(a, b Version) int {
	if a.valid != b.valid {
		if a.valid {
			return 1
		}
		return -1
	}
	if !a.valid {
		return 0
	}

	if c := compareInt(a.Major, b.Major); c != 0 {
		return c
	}
	if c := compareInt(a.Minor, b.Minor); c != 0 {
		return c
	}
	if c := compareInt(a.Patch, b.Patch); c != 0 {
		return c
	}

	switch {
	case a.Label == "" && b.Label == "":
		return 0
	case a.Label == "":
		return 1
	case b.Label == "":
		return -1
	}

	return strings.Compare(strings.ToLower(a.Label), strings.ToLower(b.Label))
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
