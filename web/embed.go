// Package web embeds the console's templates and static assets so the binary
// is self-contained in release mode.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var content embed.FS

// EmbeddedFS returns the embedded web assets rooted at templates/ and static/.
func EmbeddedFS() fs.FS {
	return content
}
