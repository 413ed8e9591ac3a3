package semver

import "testing"

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.2.3", "1.2.3"},
		{"0.0.0", "0.0.0"},
		{"10.20.30", "10.20.30"},
		{"1.0.0-rc1", "1.0.0-rc1"},
		{"1.0.0-rc.1", "1.0.0-rc.1"},
		{"2.1.0-beta-3", "2.1.0-beta-3"},
		{"1.2.3-alpha+build7", "1.2.3-alpha"},
		{"1.2.3+build1", "1.2.3"},
	}

	for _, tt := range tests {
		v := Parse(tt.input)
		if !v.Valid() {
			t.Errorf("Parse(%q) unexpectedly invalid", tt.input)
			continue
		}
		if got := v.String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseFields(t *testing.T) {
	v := Parse("1.2.3-rc.1.extra")
	if v.Major != 1 || v.Minor != 2 || v.Patch != 3 {
		t.Errorf("unexpected numeric fields: %d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	// The label is the verbatim tail from the fourth token on, not
	// re-split on separators.
	if v.Label != "rc.1.extra" {
		t.Errorf("Label = %q, want %q", v.Label, "rc.1.extra")
	}
}

func TestParseMalformed(t *testing.T) {
	for _, input := range []string{"", "1", "1.2", "banana", "v1.2.3", "a.b.c"} {
		v := Parse(input)
		if v.Valid() {
			t.Errorf("Parse(%q) should be invalid", input)
		}
	}
}

func TestMalformedSortsLowest(t *testing.T) {
	bad := Parse("not-a-version")
	lowest := Parse("0.0.0-0")

	if Compare(bad, lowest) != -1 {
		t.Error("malformed version must sort below every valid version")
	}
	if Compare(lowest, bad) != 1 {
		t.Error("valid version must sort above a malformed one")
	}
	if Compare(bad, Parse("also.bad")) != 0 {
		t.Error("two malformed versions must compare equal")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2.0.0", "1.9.9", 1},
		{"1.9.9", "2.0.0", -1},
		{"1.2.3", "1.2.3", 0},
		{"1.10.0", "1.9.0", 1},
		{"1.0.1", "1.0.0", 1},
		// Release sorts above pre-release.
		{"1.0.0", "1.0.0-rc1", 1},
		{"1.0.0-rc1", "1.0.0", -1},
		// Labels compare as case-insensitive ordinal strings.
		{"1.0.0-alpha", "1.0.0-beta", -1},
		{"1.0.0-ALPHA", "1.0.0-alpha", 0},
		{"1.0.0-rc2", "1.0.0-rc10", 1}, // ordinal, not numeric
		// Build metadata is ignored.
		{"1.2.3+build1", "1.2.3", 0},
		{"1.2.3-rc1+build1", "1.2.3-rc1+build2", 0},
	}

	for _, tt := range tests {
		if got := Compare(Parse(tt.a), Parse(tt.b)); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompareTotalOrder(t *testing.T) {
	// Ascending chain; every pair must agree with its position.
	chain := []string{
		"garbage",
		"0.0.1",
		"1.0.0-alpha",
		"1.0.0-beta",
		"1.0.0-rc1",
		"1.0.0",
		"1.0.1",
		"1.9.9",
		"2.0.0",
	}

	for i := range chain {
		for j := range chain {
			got := Compare(Parse(chain[i]), Parse(chain[j]))
			want := compareInt(i, j)
			if got != want {
				t.Errorf("Compare(%q, %q) = %d, want %d", chain[i], chain[j], got, want)
			}
		}
	}
}
