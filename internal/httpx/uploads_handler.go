package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abcretail/storefront/internal/uploads"
)

type UploadsHandler struct {
	Store *uploads.Store
}

func (h *UploadsHandler) Register(r *chi.Mux) {
	r.Post("/UploadPaymentProof", h.upload)
}

// upload takes the first file of a multipart form and returns the path it
// will be served under.
func (h *UploadsHandler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}
	var path string
	for _, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				writeError(w, err)
				return
			}
			path, err = h.Store.Save(fh.Filename, f)
			_ = f.Close()
			if err != nil {
				writeError(w, err)
				return
			}
			break
		}
		if path != "" {
			break
		}
	}
	if path == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no file uploaded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}
