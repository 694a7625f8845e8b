package model

import (
	"embed"
	"io/fs"
)

//go:embed forms/*.yaml
var embeddedForms embed.FS

// DefaultFormFile is the name of the bundled sign-up form definition.
const DefaultFormFile = "signup.yaml"

// EmbeddedFS returns the bundled form definitions.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
