package api

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const indexPage = "/index.html"

// setupRoutes maps every path onto the file server. GET and HEAD are the only
// methods the file server implements; the router answers the rest with 501.
func (s *Server) setupRoutes() {
	s.router.PathPrefix("/").
		Methods(http.MethodGet, http.MethodHead).
		Handler(newFileHandler(s.files))

	s.router.MethodNotAllowedHandler = http.HandlerFunc(handleUnsupportedMethod)
}

// fileHandler is http.FileServer except that an explicit request for
// index.html is served instead of redirected to its directory.
type fileHandler struct {
	files http.FileSystem
	next  http.Handler
}

func newFileHandler(files http.FileSystem) *fileHandler {
	return &fileHandler{files: files, next: http.FileServer(files)}
}

func (h *fileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, indexPage) && h.serveIndex(w, r) {
		return
	}
	h.next.ServeHTTP(w, r)
}

// serveIndex reports false for a directory named index.html, leaving it to
// the file server. Open errors are reported here: the file server would
// redirect before looking at the filesystem.
func (h *fileHandler) serveIndex(w http.ResponseWriter, r *http.Request) bool {
	f, err := h.files.Open(path.Clean(r.URL.Path))
	if err != nil {
		msg, code := httpErrorMessage(err)
		sendErrorResponse(w, msg, code)
		return true
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		msg, code := httpErrorMessage(err)
		sendErrorResponse(w, msg, code)
		return true
	}
	if info.IsDir() {
		return false
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}

// httpErrorMessage maps filesystem errors the way http.FileServer does
func httpErrorMessage(err error) (string, int) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "404 page not found", http.StatusNotFound
	case errors.Is(err, fs.ErrPermission):
		return "403 Forbidden", http.StatusForbidden
	}
	return "500 Internal Server Error", http.StatusInternalServerError
}
