package handlers

import (
	"net/http"
)

type presignRequest struct {
	Filename       string `json:"filename"`
	FileName       string `json:"file_name"`
	ContentType    string `json:"contentType"`
	ContentTypeAlt string `json:"content_type"`
}

// PresignUpload accepts camelCase and snake_case field names.
func (a *App) PresignUpload(w http.ResponseWriter, r *http.Request) {
	var req presignRequest
	if r.ContentLength != 0 && !a.decode(w, r, &req) {
		return
	}
	filename := req.Filename
	if filename == "" {
		filename = req.FileName
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = req.ContentTypeAlt
	}
	upload, err := a.Uploads.Presign(r.Context(), filename, contentType)
	if err != nil {
		a.log(r).Error().Err(err).Msg("http: presign upload failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to presign upload")
		return
	}
	a.json(w, http.StatusOK, upload)
}
