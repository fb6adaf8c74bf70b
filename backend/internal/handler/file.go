package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chatfeed-dev/chatfeed/shared/logger"
	"github.com/chatfeed-dev/chatfeed/shared/utils"
)

// UploadFile accepts a multipart body with a single "file" part, stores the
// artifact and responds with its URL, classified type and original filename.
// Bodies over the configured size are rejected, not spilled to disk.
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Backend.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.Backend.MaxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "File part missing")
		return
	}
	defer file.Close()

	resp, err := h.files.Upload(file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		logger.Log.Error("upload failed", "filename", header.Filename, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Upload failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// DownloadUpload streams a stored artifact with a forced-download disposition.
func (h *Handler) DownloadUpload(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	file, err := h.files.Open(filename)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, file); err != nil {
		logger.Log.Error("error streaming file", "filename", filename, "error", err)
	}
}
