package onix

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ReleaseThreshold is the first release using the nested 3.0 layout.
const ReleaseThreshold = "3.0"

var threshold = semver.MustParse(ReleaseThreshold)

// Release is a dotted ONIX release identifier such as "2.1" or "3.0".
type Release string

// IsCurrent reports whether release uses the 3.0 (nested) layout. Dotted
// parts are compared as numbers, so "3" and "3.0.1" are current. Unknown or
// empty releases are treated as legacy.
func (r Release) IsCurrent() bool {
	v, err := semver.NewVersion(strings.TrimSpace(string(r)))
	if err != nil {
		return false
	}
	return !v.LessThan(threshold)
}

func (r Release) String() string {
	return string(r)
}
