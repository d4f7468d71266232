// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package msl

import (
	"fmt"
	"runtime"
)

// OptionsVersion identifies the field layout of Options. It changes
// whenever a field is added, removed or changes meaning, so serialized
// options from another layout can be rejected.
const OptionsVersion = 3

// Platform is the Apple platform family the MSL targets.
type Platform uint8

const (
	// PlatformMacOS targets macOS.
	PlatformMacOS Platform = iota
	// PlatformIOS targets iOS and tvOS.
	PlatformIOS
)

// String returns the platform name.
func (p Platform) String() string {
	switch p {
	case PlatformMacOS:
		return "macOS"
	case PlatformIOS:
		return "iOS"
	default:
		return fmt.Sprintf("Platform(%d)", uint8(p))
	}
}

// HostPlatform returns the platform of the running process; every
// non-iOS host is treated as macOS.
func HostPlatform() Platform {
	if runtime.GOOS == "ios" {
		return PlatformIOS
	}
	return PlatformMacOS
}

// Default auxiliary buffer indices. They count down from the top of the
// Metal buffer argument table.
const (
	DefaultSwizzleBufferIndex           = 30
	DefaultIndirectParamsBufferIndex    = 29
	DefaultShaderOutputBufferIndex      = 28
	DefaultShaderPatchOutputBufferIndex = 27
	DefaultShaderTessFactorBufferIndex  = 26
	DefaultBufferSizeBufferIndex        = 25
	DefaultViewMaskBufferIndex          = 24
	DefaultDynamicOffsetsBufferIndex    = 23
	DefaultPushConstantBufferIndex      = 22

	DefaultTexelBufferTextureWidth = 4096
)

// Options configures the MSL dialect a shader is translated to.
//
// Every field is a comparable scalar, so two Options can be compared with
// == or Equal; no memory comparison is involved.
type Options struct {
	Platform Platform

	// Version is the encoded MSL version, see MakeVersion.
	Version uint32

	// TexelBufferTextureWidth is the 2D texture width used to emulate
	// texel buffers.
	TexelBufferTextureWidth uint32

	SwizzleBufferIndex           uint32
	IndirectParamsBufferIndex    uint32
	ShaderOutputBufferIndex      uint32
	ShaderPatchOutputBufferIndex uint32
	ShaderTessFactorBufferIndex  uint32
	BufferSizeBufferIndex        uint32
	ViewMaskBufferIndex          uint32
	DynamicOffsetsBufferIndex    uint32
	PushConstantBufferIndex      uint32

	// ShaderInputWorkgroupIndex is the threadgroup memory index of
	// tessellation control inputs.
	ShaderInputWorkgroupIndex uint32

	EnablePointSizeBuiltin             bool
	DisableRasterization               bool
	CaptureOutputToBuffer              bool
	SwizzleTextureSamples              bool
	TessDomainOriginLowerLeft          bool
	MultiView                          bool
	ViewIndexFromDeviceIndex           bool
	DispatchBase                       bool
	TexelBufferTexture                 bool
	ArgumentBuffers                    bool
	PadFragmentOutputComponents        bool
	EnableDecorationBinding            bool
	ForceNativeArrays                  bool
	ForceActiveArgumentBufferResources bool
	InvariantFloatMath                 bool
	EmulateCubemapArray                bool
}

// DefaultOptions returns the defaults for the host platform.
func DefaultOptions() Options {
	return DefaultOptionsFor(HostPlatform())
}

// DefaultOptionsFor returns the defaults for platform: MSL 2.1, the
// default auxiliary buffer indices, point size builtin enabled and
// fragment outputs padded to four components.
func DefaultOptionsFor(platform Platform) Options {
	return Options{
		Platform:                     platform,
		Version:                      MakeVersion(2, 1, 0),
		TexelBufferTextureWidth:      DefaultTexelBufferTextureWidth,
		SwizzleBufferIndex:           DefaultSwizzleBufferIndex,
		IndirectParamsBufferIndex:    DefaultIndirectParamsBufferIndex,
		ShaderOutputBufferIndex:      DefaultShaderOutputBufferIndex,
		ShaderPatchOutputBufferIndex: DefaultShaderPatchOutputBufferIndex,
		ShaderTessFactorBufferIndex:  DefaultShaderTessFactorBufferIndex,
		BufferSizeBufferIndex:        DefaultBufferSizeBufferIndex,
		ViewMaskBufferIndex:          DefaultViewMaskBufferIndex,
		DynamicOffsetsBufferIndex:    DefaultDynamicOffsetsBufferIndex,
		PushConstantBufferIndex:      DefaultPushConstantBufferIndex,
		EnablePointSizeBuiltin:       true,
		PadFragmentOutputComponents:  true,
	}
}

// Equal reports whether o and other select the same dialect.
func (o Options) Equal(other Options) bool {
	return o == other
}

// SupportsVersion reports whether the configured version is at least
// major.minor.
func (o Options) SupportsVersion(major, minor uint32) bool {
	return o.Version >= MakeVersion(major, minor, 0)
}
