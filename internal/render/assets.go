package render

import (
	"embed"
	"io/fs"
)

//go:embed assets
var assetFS embed.FS

// Assets returns the embedded stylesheet and scripts, rooted so that
// "style.css" names the stylesheet.
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
