package server

import (
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

// fileOnlyFS hides directories so the file server never lists them.
type fileOnlyFS struct {
	fs.FS
}

func (f fileOnlyFS) Open(name string) (fs.File, error) {
	file, err := f.FS.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return file, nil
}

// assetHandler serves files from fsys under prefix. Text types are labelled
// utf-8 when the extension table gives no charset.
func assetHandler(prefix string, fsys fs.FS) http.Handler {
	files := http.FileServer(http.FS(fileOnlyFS{fsys}))

	return http.StripPrefix(prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctype := mime.TypeByExtension(path.Ext(r.URL.Path))
		if strings.HasPrefix(ctype, "text/") && !strings.Contains(ctype, "charset") {
			ctype += "; charset=utf-8"
		}
		if ctype != "" {
			w.Header().Set("Content-Type", ctype)
		}
		files.ServeHTTP(w, r)
	}))
}
