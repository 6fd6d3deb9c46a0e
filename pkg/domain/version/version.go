// Package version compares dot-separated numeric version strings.
//
// The ordering is lexicographic over the integer components. When one
// sequence is a prefix of the other, the shorter one is older, so "1.2" is
// older than both "1.2.0" and "1.2.1". Pre-release and build suffixes are not
// understood; release tags are reduced to digits and dots with Clean before
// they are compared.
package version

import (
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/neziw/releasecheck/pkg/domain/types"
)

// Clean drops every character of tag except ASCII digits and '.'
func Clean(tag string) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || ('0' <= r && r <= '9') {
			return r
		}
		return -1
	}, tag)
}

// Parse splits v on '.' and converts each component to a non-negative integer.
// Trailing empty components are dropped, so "1.2.3." parses as 1.2.3; an
// empty component anywhere else is an error.
func Parse(v string) ([]int, error) {
	parts := strings.Split(v, ".")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return nil, goerr.New("version has no components",
			goerr.T(types.ErrTagParse),
			goerr.V("version", v))
	}

	out := make([]int, 0, len(parts))
	for i, p := range parts {
		if !isDigits(p) {
			return nil, goerr.New("version component must be a non-negative integer",
				goerr.T(types.ErrTagParse),
				goerr.V("version", v),
				goerr.V("index", i),
				goerr.V("component", p))
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid version component",
				goerr.T(types.ErrTagParse),
				goerr.V("version", v),
				goerr.V("index", i),
				goerr.V("component", p))
		}
		out = append(out, n)
	}
	return out, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Compare returns -1 if a is older than b, 1 if newer, 0 if equal
func Compare(a, b []int) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// IsNewer reports whether latest is newer than current. Both must already be clean.
func IsNewer(current, latest string) (bool, error) {
	cur, err := Parse(current)
	if err != nil {
		return false, goerr.Wrap(err, "failed to parse current version")
	}
	lat, err := Parse(latest)
	if err != nil {
		return false, goerr.Wrap(err, "failed to parse latest version")
	}
	return Compare(cur, lat) < 0, nil
}
