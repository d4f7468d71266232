// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package msl

import (
	"fmt"
	"strings"

	"github.com/coreos/go-semver/semver"
)

// MakeVersion encodes an MSL version as major*10000 + minor*100 + patch.
func MakeVersion(major, minor, patch uint32) uint32 {
	return major*10000 + minor*100 + patch
}

// VersionParts decodes an encoded MSL version.
func VersionParts(v uint32) (major, minor, patch uint32) {
	major = v / 10000
	minor = (v - MakeVersion(major, 0, 0)) / 100
	patch = v - MakeVersion(major, minor, 0)
	return major, minor, patch
}

// FormatVersion prints an encoded version as "major.minor", or
// "major.minor.patch" when includePatch is set.
func FormatVersion(v uint32, includePatch bool) string {
	major, minor, patch := VersionParts(v)
	if includePatch {
		return fmt.Sprintf("%d.%d.%d", major, minor, patch)
	}
	return fmt.Sprintf("%d.%d", major, minor)
}

// ParseVersion parses "major.minor" or "major.minor.patch" into an encoded
// version. Minor and patch must stay below 100.
func ParseVersion(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if strings.Count(s, ".") == 1 {
		s += ".0"
	}
	v, err := semver.NewVersion(s)
	if err != nil {
		return 0, fmt.Errorf("msl: invalid version %q: %w", s, err)
	}
	if v.PreRelease != "" || v.Metadata != "" {
		return 0, fmt.Errorf("msl: invalid version %q: pre-release and build metadata are not allowed", s)
	}
	if v.Minor >= 100 || v.Patch >= 100 || v.Major > 400 {
		return 0, fmt.Errorf("msl: version %q out of range", s)
	}
	return MakeVersion(uint32(v.Major), uint32(v.Minor), uint32(v.Patch)), nil
}
