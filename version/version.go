// Package version compares dependency version strings for conflict
// resolution.
//
// Versions that parse as semantic versions are compared with full semver
// semantics (so "1.2.0-rc.1" sorts below "1.2.0"). POM metadata is not
// required to use semver, so anything else falls back to a segment-wise
// comparison where numeric segments compare numerically: "1.10" sorts
// above "1.9".
package version

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Compare returns -1 if a sorts below b, 0 if they are equivalent, and 1
// if a sorts above b. An empty version sorts below everything non-empty.
func Compare(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}
	av, aerr := semver.NewVersion(a)
	bv, berr := semver.NewVersion(b)
	if aerr == nil && berr == nil {
		return av.Compare(bv)
	}
	return compareSegments(a, b)
}

// Max returns the highest of the given versions, or "" for an empty list.
func Max(versions ...string) string {
	var best string
	for i, v := range versions {
		if i == 0 || Compare(v, best) > 0 {
			best = v
		}
	}
	return best
}

func compareSegments(a, b string) int {
	as := splitSegments(a)
	bs := splitSegments(b)
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}

func splitSegments(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == '.' || r == '-' || r == '_'
	})
}

func compareSegment(a, b string) int {
	an, aNum := strconv.Atoi(a)
	bn, bNum := strconv.Atoi(b)
	switch {
	case aNum == nil && bNum == nil:
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	case aNum == nil:
		// Numeric segments sort above qualifiers: 1.1 > 1-beta.
		return 1
	case bNum == nil:
		return -1
	default:
		return strings.Compare(a, b)
	}
}
