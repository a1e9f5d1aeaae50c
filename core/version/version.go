package version

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Ordering is the outcome of comparing two version strings.
type Ordering int

const (
	// Incomparable means at least one side is not a recognized version.
	Incomparable Ordering = iota
	// Less means a < b.
	Less
	// Equal means a == b.
	Equal
	// Greater means a > b.
	Greater
)

// String returns a lowercase label for the ordering.
func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return "incomparable"
	}
}

// Compare orders a relative to b.
// It never fails: unparseable input yields Incomparable.
func Compare(a, b string) Ordering {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA == nil && errB == nil {
		if va.Prerelease() != "" && vb.Prerelease() != "" && sameCore(va, vb) {
			if cmp := comparePrerelease(va.Prerelease(), vb.Prerelease()); cmp != 0 {
				return fromInt(cmp)
			}
		} else if cmp := va.Compare(vb); cmp != 0 {
			return fromInt(cmp)
		}
		// Build metadata is ignored by semver precedence, but "17.0.7+7"
		// and "17.0.7+8" are distinct releases of the same cycle.
		return compareMetadata(va.Metadata(), vb.Metadata())
	}

	na, okA := parseDotted(a)
	nb, okB := parseDotted(b)
	if okA && okB {
		return fromInt(compareNumbers(na, nb))
	}

	return Incomparable
}

// IsValid reports whether s is understood by Compare.
func IsValid(s string) bool {
	if _, err := semver.NewVersion(s); err == nil {
		return true
	}
	_, ok := parseDotted(s)
	return ok
}

// compareMetadata orders numeric build metadata numerically and anything
// else lexically.
func compareMetadata(a, b string) Ordering {
	if a == b {
		return Equal
	}
	na, okA := parseDotted(a)
	nb, okB := parseDotted(b)
	if !okA || !okB {
		return fromInt(strings.Compare(a, b))
	}
	return fromInt(compareNumbers(na, nb))
}

func sameCore(a, b *semver.Version) bool {
	return a.Major() == b.Major() && a.Minor() == b.Minor() && a.Patch() == b.Patch()
}

// comparePrerelease compares dot-separated identifiers one by one. Each
// identifier is split into a letter part, a number and a remainder, so
// "rc10" follows "rc9" and "rc" equals "rc0". When one side runs out of
// identifiers first it is the lower one.
func comparePrerelease(a, b string) int {
	pa := strings.Split(a, ".")
	pb := strings.Split(b, ".")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if cmp := compareIdentifier(pa[i], pb[i]); cmp != 0 {
			return cmp
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	}
	return 0
}

func compareIdentifier(a, b string) int {
	la, na, ra := splitIdentifier(a)
	lb, nb, rb := splitIdentifier(b)
	if cmp := strings.Compare(la, lb); cmp != 0 {
		return cmp
	}
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	}
	return strings.Compare(ra, rb)
}

// splitIdentifier splits "rc10x" into "rc", 10 and "x".
func splitIdentifier(s string) (letters string, number uint64, rest string) {
	i := 0
	for i < len(s) && (s[i] < '0' || s[i] > '9') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j > i {
		n, err := strconv.ParseUint(s[i:j], 10, 64)
		if err != nil {
			return s, 0, ""
		}
		number = n
	}
	return s[:i], number, s[j:]
}

// parseDotted accepts strings made only of dot-separated unsigned integers,
// with an optional leading "v".
func parseDotted(s string) ([]uint64, bool) {
	s = strings.TrimPrefix(s, "v")
	if s == "" {
		return nil, false
	}
	parts := strings.Split(s, ".")
	nums := make([]uint64, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			return nil, false
		}
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, false
		}
		nums = append(nums, n)
	}
	return nums, true
}

// compareNumbers compares component-wise; missing components count as zero.
func compareNumbers(a, b []uint64) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var x, y uint64
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x < y {
			return -1
		}
		if x > y {
			return 1
		}
	}
	return 0
}

func fromInt(cmp int) Ordering {
	switch {
	case cmp < 0:
		return Less
	case cmp > 0:
		return Greater
	default:
		return Equal
	}
}
