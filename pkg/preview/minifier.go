package preview

import (
	"io"
	"path/filepath"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	minjs "github.com/tdewolff/minify/v2/js"
)

var mimes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
}

// writerFunc produces a file's content.
type writerFunc func(w io.Writer) error

// newMinifier wraps gen so its output is minified by file extension. It
// returns gen unchanged when disabled or for unknown extensions.
func newMinifier(enabled bool) func(target string, gen writerFunc) writerFunc {
	if !enabled {
		return func(_ string, gen writerFunc) writerFunc { return gen }
	}

	m := minify.New()
	m.AddFunc("text/html", minhtml.Minify)
	m.AddFunc("text/css", mincss.Minify)
	m.AddFunc("application/javascript", minjs.Minify)

	return func(target string, gen writerFunc) writerFunc {
		mime, ok := mimes[filepath.Ext(target)]
		if !ok {
			return gen
		}

		return func(w io.Writer) error {
			x := m.Writer(mime, w)
			if err := gen(x); err != nil {
				return err
			}
			return x.Close()
		}
	}
}
