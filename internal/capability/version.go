package capability

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/mod/semver"
)

// VersionRange is a parsed version key. Versions are semantic versions or
// Python package versions ("2.4.1rc1", "2.4.1.post1", "2.5.0.dev3").
// Accepted spellings:
//
//	""              every version
//	"2.4.2"         exactly 2.4.2
//	"2.4.2 and below"
//	"2.4.2 and above"
//	"2.0.0 to 2.4.2" (inclusive)
type VersionRange struct {
	key    string
	lo, hi string // canonical "vX.Y.Z"; empty means unbounded
}

// ParseVersionRange parses a version key.
func ParseVersionRange(key string) (VersionRange, error) {
	key = strings.TrimSpace(key)
	r := VersionRange{key: key}
	switch {
	case key == "":
		return r, nil
	case strings.HasSuffix(key, " and below"):
		v, err := canonical(strings.TrimSuffix(key, " and below"))
		if err != nil {
			return r, err
		}
		r.hi = v
	case strings.HasSuffix(key, " and above"):
		v, err := canonical(strings.TrimSuffix(key, " and above"))
		if err != nil {
			return r, err
		}
		r.lo = v
	case strings.Contains(key, " to "):
		from, to, _ := strings.Cut(key, " to ")
		lo, err := canonical(from)
		if err != nil {
			return r, err
		}
		hi, err := canonical(to)
		if err != nil {
			return r, err
		}
		if semver.Compare(lo, hi) > 0 {
			return r, errors.Errorf("version range %q is empty", key)
		}
		r.lo, r.hi = lo, hi
	default:
		v, err := canonical(key)
		if err != nil {
			return r, err
		}
		r.lo, r.hi = v, v
	}
	return r, nil
}

// Contains reports whether version falls inside the range. A version that
// cannot be parsed falls inside every range, so an engine reporting one
// keeps every restriction.
func (r VersionRange) Contains(version string) bool {
	if r.lo == "" && r.hi == "" {
		return true
	}
	v, err := canonical(version)
	if err != nil {
		return true
	}
	if r.lo != "" && semver.Compare(v, r.lo) < 0 {
		return false
	}
	if r.hi != "" && semver.Compare(v, r.hi) > 0 {
		return false
	}
	return true
}

// ValidateVersion reports whether version can be compared against
// version keys.
func ValidateVersion(version string) error {
	_, err := canonical(version)
	return err
}

// String returns the key the range was parsed from.
func (r VersionRange) String() string {
	if r.key == "" {
		return "all versions"
	}
	return r.key
}

// pyVersion matches release, pre-release, post-release, dev-release and
// local segments of a Python package version.
var pyVersion = regexp.MustCompile(`^v?(\d+(?:\.\d+){0,2})` +
	`(?:[-_.]?(a|alpha|b|beta|c|rc|pre|preview)[-_.]?(\d*))?` +
	`(?:[-_.]?(post|rev|r)[-_.]?(\d*)|-(\d+))?` +
	`(?:[-_.]?(dev)[-_.]?(\d*))?` +
	`(?:\+([0-9a-z]+(?:[-_.][0-9a-z]+)*))?$`)

var preTags = map[string]string{
	"a": "a", "alpha": "a",
	"b": "b", "beta": "b",
	"c": "rc", "rc": "rc", "pre": "rc", "preview": "rc",
}

// canonical returns v in canonical semver form. Python pre and dev
// releases become semver pre-releases; post releases and local labels
// become build metadata and so compare equal to their release.
func canonical(v string) (string, error) {
	raw := strings.TrimSpace(v)
	sv := raw
	if !strings.HasPrefix(sv, "v") {
		sv = "v" + sv
	}
	if semver.IsValid(sv) {
		return semver.Canonical(sv), nil
	}

	m := pyVersion.FindStringSubmatch(strings.ToLower(raw))
	if m == nil {
		return "", errors.Errorf("invalid version %q", raw)
	}
	sv = "v" + m[1]
	var pre []string
	if m[2] != "" {
		pre = append(pre, preTags[m[2]], number(m[3]))
	}
	if m[7] != "" {
		pre = append(pre, "dev", number(m[8]))
	}
	if len(pre) > 0 {
		sv += "-" + strings.Join(pre, ".")
	}
	var build []string
	if m[4] != "" || m[6] != "" {
		build = append(build, "post", number(m[5]+m[6]))
	}
	if m[9] != "" {
		build = append(build, strings.NewReplacer("-", ".", "_", ".").Replace(m[9]))
	}
	if len(build) > 0 {
		sv += "+" + strings.Join(build, ".")
	}
	if !semver.IsValid(sv) {
		return "", errors.Errorf("invalid version %q", raw)
	}
	return semver.Canonical(sv), nil
}

// number drops leading zeros from a numeric segment; empty means 0.
func number(s string) string {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return "0"
	}
	return strconv.FormatUint(n, 10)
}
