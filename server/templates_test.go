package server

import (
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadTemplates(t *testing.T) {
	fsys := fstest.MapFS{
		"index.html.tera":        {Data: []byte(`{{template "partials/nav.html.tera" .}}`)},
		"partials/nav.html.tera": {Data: []byte(`<nav></nav>`)},
		".hidden/skip.tera":      {Data: []byte(`{{ broken`)},
		".swp":                   {Data: []byte(`{{ broken`)},
	}
	set, err := LoadTemplates(fsys)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"index.html.tera", "partials/nav.html.tera"} {
		if set.Lookup(name) == nil {
			t.Errorf("template %q not loaded", name)
		}
	}
	if set.Lookup(".hidden/skip.tera") != nil {
		t.Error("dot directory was loaded")
	}
}

func TestNewWithIndexOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"index.html.tera": {Data: []byte(`<h1>{{.title}}</h1>`)},
	}
	s, err := New(Config{}, fsys, testAssets)
	if err != nil {
		t.Fatal(err)
	}
	if w := get(t, s, "/"); !strings.Contains(w.Body.String(), "<h1>Rust Web AI</h1>") {
		t.Errorf("body = %q", w.Body)
	}
}

func TestLoadTemplatesErrors(t *testing.T) {
	if _, err := LoadTemplates(os.DirFS("does-not-exist")); err == nil {
		t.Error("missing directory: want error")
	}

	_, err := LoadTemplates(fstest.MapFS{
		"index.html.tera": {Data: []byte(`{{ if }}`)},
	})
	if err == nil {
		t.Error("parse failure: want error")
	}

	_, err = LoadTemplates(fstest.MapFS{
		"other.html.tera": {Data: []byte(`ok`)},
	})
	if !errors.Is(err, ErrTemplateMissing) {
		t.Errorf("err = %v, want ErrTemplateMissing", err)
	}
}
