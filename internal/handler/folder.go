package handler

import (
	"log/slog"
	"net/http"

	"fileup/internal/httputil"
	"fileup/internal/models"
	"fileup/internal/service"
	"fileup/internal/upload"
)

// multipartOverhead pads the request size limit beyond the largest accepted
// file to leave room for the multipart framing itself.
const multipartOverhead = 1 << 20

// FolderHandler handles the folder-tree HTTP requests
type FolderHandler struct {
	tree    *service.TreeService
	uploads *upload.DiskStore
	logger  *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(tree *service.TreeService, uploads *upload.DiskStore, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		tree:    tree,
		uploads: uploads,
		logger:  logger,
	}
}

// ListChildren returns one level of the acting user's tree
// GET /api/folders and GET /api/folders/{folderId}
func (h *FolderHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	folderID := optionalPathValue(r, "folderId")

	contents, err := h.tree.ListChildren(r.Context(), userID, folderID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	if contents.SubFolders == nil {
		contents.SubFolders = []models.Folder{}
	}
	if contents.Files == nil {
		contents.Files = []models.File{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"myFolders":     contents.SubFolders,
		"savedFile":     contents.Files,
		"currentFolder": contents.Folder,
	})
}

// CreateFolder creates a folder under the parent named in the path, or at
// root when the path carries no parent
// POST /api/folders/create and POST /api/folders/{folderId}/create
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	parentID := optionalPathValue(r, "folderId")

	var req models.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.tree.CreateFolder(r.Context(), userID, req.FolderName, parentID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"folder":  folder,
	})
}

// UploadFile stores a multipart upload and attaches it to the folder named in
// the path, or to root when the path carries no folder
// POST /api/folders/upload and POST /api/folders/{folderId}/upload
func (h *FolderHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	folderID := optionalPathValue(r, "folderId")

	r.Body = http.MaxBytesReader(w, r.Body, h.uploads.MaxSizeBytes()+multipartOverhead)

	part, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer part.Close()

	stored, err := h.uploads.Save(part, header)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	file, err := h.tree.AttachUploadedFile(r.Context(), userID, folderID, stored)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"file":    file,
	})
}

// optionalPathValue returns the named path segment, or nil for routes that
// omit it.
func optionalPathValue(r *http.Request, name string) *string {
	value := r.PathValue(name)
	if value == "" {
		return nil
	}
	return &value
}
