package builder

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// portConstraints lists the Go toolchain versions able to build a port.
// Ports missing from the table are assumed to be supported.
var portConstraints = map[string]string{
	"windows/386":   ">= 1.0",
	"windows/amd64": ">= 1.0",
	"windows/arm":   ">= 1.12, < 1.26",
	"windows/arm64": ">= 1.17",
}

var goVersionRE = regexp.MustCompile(`^go(\d+(?:\.\d+){0,2})([a-z]+\d*)?`)

// ParseGoVersion converts a toolchain version such as "go1.24.1" or
// "go1.25rc2" into a semantic version.
func ParseGoVersion(v string) (*semver.Version, error) {
	m := goVersionRE.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return nil, errors.Errorf("unrecognized go version %q", v)
	}

	s := m[1]
	if m[2] != "" {
		s += "-" + m[2]
	}
	return semver.NewVersion(s)
}

// CheckToolchain reports whether the toolchain version can build goos/goarch.
func CheckToolchain(goVersion, goos, goarch string) error {
	port := goos + "/" + goarch

	constraint, ok := portConstraints[port]
	if !ok {
		return nil
	}

	if strings.HasPrefix(goVersion, "devel") {
		logrus.WithField("version", goVersion).Debug("skipping toolchain check for development build")
		return nil
	}

	v, err := ParseGoVersion(goVersion)
	if err != nil {
		return err
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(err, "invalid constraint for %s", port)
	}

	// Pre-releases of a supported version are fine.
	if v.Prerelease() != "" {
		base, _ := v.SetPrerelease("")
		v = &base
	}

	if !c.Check(v) {
		return errors.Errorf("%s is not supported by %s (requires go %s)", port, goVersion, constraint)
	}
	return nil
}
