package server

import (
	"bytes"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/tclemos/webbench/benchmark"
)

// PageContext is the data handed to page templates
type PageContext map[string]any

const pageTitle = "Rust Web AI"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := PageContext{
		"title":  pageTitle,
		"active": "home",
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, IndexTemplate, ctx); err != nil {
		// Render failures still answer 200 with the error in the body.
		log.Error().Err(err).Str("template", IndexTemplate).Msg("Template render failed")
		buf.Reset()
		buf.WriteString("Template error: ")
		buf.WriteString(err.Error())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleBench(w http.ResponseWriter, r *http.Request) {
	q, err := benchmark.ParseQuery(r.URL.Query())
	if err != nil {
		http.Error(w, "bad query: "+err.Error(), http.StatusBadRequest)
		return
	}

	ops := q.OpsOrDefault()
	if err := benchmark.CheckLimit(ops, s.cfg.MaxOps); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := benchmark.Measure(ops)
	s.metrics.Observe(res)

	body, err := json.Marshal(res)
	if err != nil {
		log.Error().Err(err).Msg("Encode bench result failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
