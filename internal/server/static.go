package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/alexedwards/flow"
)

// mountStatic serves uploaded media from the local disk and, when a bundle
// directory is configured, the prebuilt frontend. Unknown paths under the
// bundle fall back to index.html so client side routes resolve.
func (s *Service) mountStatic(r *flow.Mux) {
	if s.fileStore != nil && s.config.MediaURLPath != "" {
		prefix := strings.TrimSuffix(s.config.MediaURLPath, "/")
		images := http.StripPrefix(prefix, http.FileServer(noDirFS{http.Dir(s.fileStore.Root())}))
		r.Handle(prefix+"/...", images, http.MethodGet)
	}

	if s.config.StaticDir == "" {
		return
	}

	dir := s.config.StaticDir
	files := http.FileServer(noDirFS{http.Dir(dir)})
	index := filepath.Join(dir, "index.html")

	r.Handle("/...", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+req.URL.Path)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			files.ServeHTTP(w, req)
			return
		}
		http.ServeFile(w, req, index)
	}), http.MethodGet)
}

// noDirFS hides directory listings.
type noDirFS struct {
	fs http.FileSystem
}

func (n noDirFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}

	return f, nil
}
