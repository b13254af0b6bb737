package server

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
)

// IndexTemplate is the landing page template
const IndexTemplate = "index.html.tera"

// ErrTemplateMissing is returned when a required template is not in the tree
var ErrTemplateMissing = errors.New("template missing")

// LoadTemplates parses every regular file under fsys into one template set.
// Templates are named by their slash-separated path inside fsys so they can
// include each other, e.g. {{template "partials/nav.html.tera" .}}.
// Dot files are skipped.
func LoadTemplates(fsys fs.FS) (*template.Template, error) {
	set := template.New("")

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if name != "." && strings.HasPrefix(path.Base(name), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if _, err := set.New(name).Parse(string(src)); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("init templates: %w", err)
	}

	if set.Lookup(IndexTemplate) == nil {
		return nil, fmt.Errorf("init templates: %w: %s", ErrTemplateMissing, IndexTemplate)
	}
	return set, nil
}
