package scrub

import (
	"regexp"
	"strconv"
)

// versionedPattern matches "<base>.<ext>.<version>" where ext is exactly three
// non-dot characters and version is one or more ASCII digits. base is greedy.
var versionedPattern = regexp.MustCompile(`^(.*)\.([^.]{3})\.([0-9]+)$`)

// VersionedName is a filename split into its versioning parts. Name keeps the
// filename as found on disk, so "part.prt.007" still resolves after parsing.
type VersionedName struct {
	Name    string
	Base    string
	Ext     string
	Version int
}

// ParseVersionedName splits name into base, extension and version.
// The boolean is false when name does not have the versioned shape, or when the
// version digits do not fit in an int.
func ParseVersionedName(name string) (VersionedName, bool) {
	m := versionedPattern.FindStringSubmatch(name)
	if m == nil {
		return VersionedName{}, false
	}

	version, err := strconv.Atoi(m[3])
	if err != nil {
		return VersionedName{}, false
	}

	return VersionedName{Name: name, Base: m[1], Ext: m[2], Version: version}, true
}

// FileName builds the canonical filename for v. It differs from Name only when
// the version on disk carries leading zeros.
func (v VersionedName) FileName() string {
	return v.Base + "." + v.Ext + "." + strconv.Itoa(v.Version)
}

// WithVersion returns the canonical name v would have at version n.
func (v VersionedName) WithVersion(n int) VersionedName {
	v.Version = n
	v.Name = v.FileName()
	return v
}
