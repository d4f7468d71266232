// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package msl describes the Metal Shading Language (MSL) dialect a SPIR-V
// shader is translated to.
//
// MSL is Apple's shader language for the Metal graphics API. Options holds
// the target platform, the language version, the indices of the auxiliary
// buffers the generated code may need (swizzle constants, buffer sizes,
// dynamic offsets, tessellation outputs, view masks) and the layout toggles
// of the translation.
//
// # Usage
//
//	opts := msl.DefaultOptionsFor(msl.PlatformIOS)
//	v, err := msl.ParseVersion("2.3")
//	if err != nil {
//	    return err
//	}
//	opts.Version = v
//	opts.ArgumentBuffers = true
//
// # Versions
//
// Versions are encoded as a single integer, major*10000 + minor*100 +
// patch, so they order naturally:
//
//	msl.MakeVersion(2, 1, 0)            // 20100
//	msl.FormatVersion(20100, false)     // "2.1"
//	msl.FormatVersion(20100, true)      // "2.1.0"
//
// Options is a plain comparable struct: two configurations select the same
// dialect exactly when Equal reports true, which makes Options usable
// inside cache keys.
package msl
