package board

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var versionTokenRe = regexp.MustCompile(`\d+(?:\.\d+)+`)

// ExtractVersion returns the first dotted-numeric token found anywhere in
// free text (e.g. "openclaw 2026.2.9 (stable)" -> "2026.2.9"), or "" when
// none exists. Both ends of a version comparison are normalized this way so
// that prefixes like "v" or surrounding prose never skew the comparison.
func ExtractVersion(s string) string {
	return versionTokenRe.FindString(s)
}

// CompareDotVersions compares two dotted-numeric version strings
// component-wise left to right, returning -1, 0, or 1. Non-numeric
// components and missing trailing components are treated as 0. This is a
// plain lexicographic tuple comparison, not semver: pre-release and build
// metadata get no special handling.
func CompareDotVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av := versionComponent(as, i)
		bv := versionComponent(bs, i)
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}
	return 0
}

func versionComponent(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil {
		return 0
	}
	return v
}

// UpdateAvailable derives whether a newer version is published. Unknown on
// either side propagates, with the reason naming which side was unknown.
func UpdateAvailable(installed, latest Metric[string]) Metric[bool] {
	if !installed.Known {
		return Unknown[bool](fmt.Sprintf("installed version unknown: %s", installed.Reason))
	}
	if !latest.Known {
		return Unknown[bool](fmt.Sprintf("latest version unknown: %s", latest.Reason))
	}
	return Known(CompareDotVersions(latest.Value, installed.Value) > 0)
}
