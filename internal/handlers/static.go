package handlers

import (
	"net/http"
	"path/filepath"
)

// StaticHandler serves the frontend bundle from a fixed local directory.
type StaticHandler struct {
	dir string
}

func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir}
}

// Index serves the frontend entry point.
func (h *StaticHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}

// Assets serves everything under /static/ from the frontend directory.
func (h *StaticHandler) Assets() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.Dir(h.dir)))
}
