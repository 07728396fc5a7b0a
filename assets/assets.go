// Package assets embeds the seed CSVs used when a collection has never been
// saved. The seeds give a first run something to show.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed seeds/*.csv
var seedsFS embed.FS

// Seeds returns the seed CSVs keyed by collection file name.
func Seeds() fs.FS {
	sub, err := fs.Sub(seedsFS, "seeds")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}
