// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package uploads validates proof photos and writes them to the upload
// directory, which the router serves under /uploads/.
package uploads
