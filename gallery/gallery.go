// Package gallery serves a directory of generated mockup images as a
// small browsable index, for eyeballing documentation screenshots.
package gallery

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Server lists and serves images from a single directory. It never
// follows paths outside it.
type Server struct {
	dir string
	log *slog.Logger
}

// New builds a gallery over dir. A nil logger falls back to slog.Default.
func New(dir string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{dir: dir, log: log}
}

// Handler returns the gallery router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.handleIndex)
	r.Get("/img/{name}", s.handleImage)
	return r
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>framecap gallery</title>
<style>
  body { font-family: sans-serif; margin: 2rem; background: #f4f4f5; }
  figure { display: inline-block; margin: 1rem; text-align: center; }
  img { max-width: 480px; box-shadow: 0 4px 16px rgba(0,0,0,.15); }
  figcaption { margin-top: .5rem; font-size: .85rem; color: #555; }
</style>
</head>
<body>
<h1>framecap gallery</h1>
{{range .}}
<figure>
  <a href="/img/{{.}}"><img src="/img/{{.}}" alt="{{.}}"></a>
  <figcaption>{{.}}</figcaption>
</figure>
{{else}}
<p>No images yet.</p>
{{end}}
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	names, err := s.list()
	if err != nil {
		s.log.Error("gallery: list", "dir", s.dir, "error", err)
		http.Error(w, "cannot read gallery directory", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, names); err != nil {
		s.log.Error("gallery: render index", "error", err)
	}
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name != filepath.Base(name) || !imageName(name) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.dir, name))
}

func (s *Server) list() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("gallery: read dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !imageName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func imageName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
