package common

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is set via ldflags at build time:
//
//	-ldflags "-X github.com/yambusc/yambusc/internal/codegen/common.Version=x.y.z"
var Version = ""

const devVersion = "0.0.1-dev"

// VersionInfo is the generator version stamped into generated files.
type VersionInfo struct {
	Full  string // e.g. "1.2.3-dirty"
	Major int
	Minor int
	Patch int
}

func (v VersionInfo) String() string { return v.Full }

// CurrentVersion returns the version set at build time, or a development
// version when none was set.
func CurrentVersion() (VersionInfo, error) {
	if Version == "" {
		return ParseVersion(devVersion), nil
	}

	version := strings.TrimPrefix(Version, "v")
	base := strings.SplitN(version, "-", 2)[0]
	if !strings.Contains(base, ".") {
		return VersionInfo{}, fmt.Errorf("invalid version format: %s (expected x.y.z)", Version)
	}
	return ParseVersion(version), nil
}

// ParseVersion splits "1.2.3" or "1.2.3-dirty" into its numeric parts.
// Missing or non-numeric parts are zero.
func ParseVersion(version string) VersionInfo {
	v := VersionInfo{Full: version}
	nums := strings.Split(strings.SplitN(version, "-", 2)[0], ".")
	if len(nums) >= 1 {
		v.Major, _ = strconv.Atoi(nums[0])
	}
	if len(nums) >= 2 {
		v.Minor, _ = strconv.Atoi(nums[1])
	}
	if len(nums) >= 3 {
		v.Patch, _ = strconv.Atoi(nums[2])
	}
	return v
}
