package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

const indexFile = "index.html"

// staticHandler serves files of the static dir. Anything it cannot resolve to
// a regular file, including directories without an index, is a 404.
func (a *api) staticHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		a.respNotFound(w)
		return
	}

	name := filepath.Join(a.staticDir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
	fi, err := os.Stat(name)
	if err == nil && fi.IsDir() {
		name = filepath.Join(name, indexFile)
		fi, err = os.Stat(name)
	}
	if err != nil || !fi.Mode().IsRegular() {
		a.respNotFound(w)
		return
	}

	f, err := os.Open(name)
	if err != nil {
		a.respNotFound(w)
		return
	}
	defer f.Close() // nolint

	http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
}
