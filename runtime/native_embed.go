// Package runtimeembed provides embedded native runtime sources for
// compiled Kei builds. The compiler links the exported header into every
// native program it produces; keirt can export it for out-of-tree builds.
package runtimeembed

import (
	"embed"
	"io/fs"
)

//go:embed native/*.h
var nativeRuntimeFS embed.FS

// NativeRuntimeFS exposes embedded runtime sources for native builds.
func NativeRuntimeFS() fs.FS {
	return nativeRuntimeFS
}
