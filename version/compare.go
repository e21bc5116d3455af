package version

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// semver is a parsed MAJOR.MINOR.PATCH[-PRERELEASE] version.
type semver struct {
	parts      [3]int
	prerelease string
}

func parseSemver(s string) (semver, error) {
	var v semver

	core, pre, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(s), "v"), "-")
	v.prerelease = pre

	fields := strings.Split(core, ".")
	if len(fields) > len(v.parts) {
		return v, fmt.Errorf("version %q has too many components", s)
	}

	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return v, fmt.Errorf("version %q: bad component %q", s, field)
		}
		v.parts[i] = n
	}

	return v, nil
}

// Compare orders two versions: 1 when a is newer, -1 when b is newer, 0 when equal.
// Missing components count as zero and a pre-release sorts before its release.
func Compare(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, err
	}

	bv, err := parseSemver(b)
	if err != nil {
		return 0, err
	}

	for i := range av.parts {
		if c := cmp.Compare(av.parts[i], bv.parts[i]); c != 0 {
			return c, nil
		}
	}

	switch {
	case av.prerelease == bv.prerelease:
		return 0, nil
	case av.prerelease == "":
		return 1, nil
	case bv.prerelease == "":
		return -1, nil
	default:
		return cmp.Compare(av.prerelease, bv.prerelease), nil
	}
}
