package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/CodeBellator/Agent-Management-System/internal/auth"
	"github.com/CodeBellator/Agent-Management-System/internal/ingest"
)

var allowedUploadExts = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// HandleUploadList ingests an uploaded contact file and distributes it among
// the active agents
// POST /api/lists/upload (multipart/form-data, field "file")
func (h *Handlers) HandleUploadList(w http.ResponseWriter, r *http.Request) {
	actor := auth.FromContext(r.Context())
	if actor == nil {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// Cap the request body at the upload limit plus form-encoding overhead.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+64*1024)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, fmt.Sprintf("File exceeds the %dMB upload limit", h.maxUpload>>20), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, "Please upload a file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExts[ext] {
		writeError(w, "Only CSV, XLSX, and XLS files are allowed", http.StatusBadRequest)
		return
	}

	upload, err := h.storeUpload(file, header.Filename, ext)
	if err != nil {
		log.Printf("[Lists] Store upload: %v", err)
		writeError(w, "Server error during file upload", http.StatusInternalServerError)
		return
	}

	// The ingest service deletes the temp file on every exit path from here on.
	list, err := h.ingest.Ingest(r.Context(), upload, actor.ID)
	if err != nil {
		h.writeIngestError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"list":    list,
		"message": fmt.Sprintf("Successfully uploaded and distributed %d items among %d agents",
			list.TotalItems, len(list.Distributions)),
	})
}

// storeUpload writes the multipart file to a temp path under the upload dir.
// On failure the partial file is removed before returning.
func (h *Handlers) storeUpload(src io.Reader, originalName, ext string) (ingest.UploadedFile, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return ingest.UploadedFile{}, fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(h.uploadDir, uuid.New().String()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return ingest.UploadedFile{}, fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return ingest.UploadedFile{}, fmt.Errorf("write temp file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return ingest.UploadedFile{}, fmt.Errorf("close temp file: %w", err)
	}

	return ingest.UploadedFile{Path: path, OriginalName: originalName}, nil
}

func (h *Handlers) writeIngestError(w http.ResponseWriter, err error) {
	var parseErr *ingest.ParseError
	switch {
	case errors.Is(err, ingest.ErrUnsupportedFormat):
		writeError(w, "Unsupported file format", http.StatusBadRequest)
	case errors.Is(err, ingest.ErrNoValidRows):
		writeError(w, "No valid data found in file. Please ensure the file has FirstName and Phone columns.",
			http.StatusBadRequest)
	case errors.Is(err, ingest.ErrNoActiveAgents):
		writeError(w, "No active agents found. Please create agents first.", http.StatusBadRequest)
	case errors.As(err, &parseErr):
		log.Printf("[Lists] Parse failure: %v", err)
		writeError(w, "Server error during file upload", http.StatusInternalServerError)
	default:
		log.Printf("[Lists] Upload failure: %v", err)
		writeError(w, "Server error during file upload", http.StatusInternalServerError)
	}
}

// HandleListLists returns all uploaded lists
// GET /api/lists
func (h *Handlers) HandleListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.lists.FindAll(r.Context())
	if err != nil {
		log.Printf("[Lists] FindAll: %v", err)
		writeError(w, "Server error", http.StatusInternalServerError)
		return
	}
	if lists == nil {
		lists = []*ingest.List{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"lists":   lists,
	})
}

// HandleGetList returns a single uploaded list
// GET /api/lists/{id}
func (h *Handlers) HandleGetList(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "List not found", http.StatusNotFound)
		return
	}

	list, err := h.lists.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ingest.ErrNotFound) {
			writeError(w, "List not found", http.StatusNotFound)
			return
		}
		log.Printf("[Lists] FindByID: %v", err)
		writeError(w, "Server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"list":    list,
	})
}

// HandleDeleteList removes an uploaded list
// DELETE /api/lists/{id}
func (h *Handlers) HandleDeleteList(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "List not found", http.StatusNotFound)
		return
	}

	if err := h.lists.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, ingest.ErrNotFound) {
			writeError(w, "List not found", http.StatusNotFound)
			return
		}
		log.Printf("[Lists] Delete: %v", err)
		writeError(w, "Server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "List deleted successfully",
	})
}
