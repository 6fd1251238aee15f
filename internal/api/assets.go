package api

import (
	"io/fs"
	"net/http"
	"strings"
)

// AssetHandler serves static files under the /workout prefix. Unknown paths
// fall back to the root document so client-side routing keeps working.
type AssetHandler struct {
	assets fs.FS
}

// NewAssetHandler builds an AssetHandler over the given filesystem.
func NewAssetHandler(assets fs.FS) *AssetHandler {
	return &AssetHandler{assets: assets}
}

func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/workout" {
		http.Redirect(w, r, "/workout/", http.StatusFound)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/workout/")
	if path == "" {
		path = "index.html"
	}

	if f, err := h.assets.Open(path); err == nil {
		_ = f.Close()
		http.ServeFileFS(w, r, h.assets, path)
		return
	}

	http.ServeFileFS(w, r, h.assets, "index.html")
}
