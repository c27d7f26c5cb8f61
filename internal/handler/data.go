package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"ironline-site/internal/middleware"
	"ironline-site/internal/repository"
	"ironline-site/internal/service"
	"ironline-site/pkg/apierror"
	"ironline-site/pkg/response"
)

// WriteSeqHeader carries an optional per-type write sequence token.
const WriteSeqHeader = "X-Write-Seq"

// maxBlobBytes bounds a persistence bridge request body.
const maxBlobBytes = 4 << 20

// DataHandler serves the persistence bridge.
type DataHandler struct {
	bridge   *service.BridgeService
	reserved map[string]bool
	sessions middleware.TokenValidator
	onWrite  []func(ctx context.Context, blobType string)
}

// NewDataHandler creates a new persistence bridge handler.
func NewDataHandler(bridge *service.BridgeService) *DataHandler {
	return &DataHandler{bridge: bridge, reserved: make(map[string]bool)}
}

// Reserve makes writes to the given types require an admin token. Types
// the server itself reads back (published content, launch settings) must
// be reserved.
func (h *DataHandler) Reserve(sessions middleware.TokenValidator, types ...string) {
	h.sessions = sessions
	for _, t := range types {
		h.reserved[t] = true
	}
}

// OnWrite registers fn to run after every accepted write.
func (h *DataHandler) OnWrite(fn func(ctx context.Context, blobType string)) {
	h.onWrite = append(h.onWrite, fn)
}

// WriteRequest is the body of POST /api/data.
type WriteRequest struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
	Seq     *int64          `json:"seq,omitempty"`
}

// WriteResponse is the body of a successful write.
type WriteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ReadResponse is the body of a successful read.
type ReadResponse struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

// Write handles POST /api/data
func (h *DataHandler) Write(w http.ResponseWriter, r *http.Request) {
	var req WriteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBlobBytes)).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if req.Type == "" || len(req.Content) == 0 {
		response.Error(w, apierror.BadRequest("Missing type or content"))
		return
	}

	if h.reserved[req.Type] {
		if _, apiErr := middleware.Authorize(r.Context(), h.sessions, middleware.AdminToken(r)); apiErr != nil {
			response.Error(w, apiErr)
			return
		}
	}

	seq := req.Seq
	if raw := r.Header.Get(WriteSeqHeader); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(w, apierror.BadRequest(WriteSeqHeader+" must be an integer"))
			return
		}
		seq = &n
	}

	if err := h.bridge.Write(r.Context(), req.Type, req.Content, seq); err != nil {
		bridgeError(w, "write", req.Type, err)
		return
	}
	for _, fn := range h.onWrite {
		fn(r.Context(), req.Type)
	}

	response.Write(w, http.StatusOK, WriteResponse{
		Success: true,
		Message: "Data saved successfully",
	})
}

// Read handles GET /api/data?type=
func (h *DataHandler) Read(w http.ResponseWriter, r *http.Request) {
	blobType := r.URL.Query().Get("type")
	if blobType == "" {
		response.Error(w, apierror.BadRequest("Missing type parameter"))
		return
	}

	blob, err := h.bridge.Read(r.Context(), blobType)
	if err != nil {
		bridgeError(w, "read", blobType, err)
		return
	}

	response.Write(w, http.StatusOK, ReadResponse{
		Success: true,
		Type:    blobType,
		Content: blob.Content,
	})
}

// List handles GET /api/data/types
func (h *DataHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.bridge.List(r.Context())
	if err != nil {
		log.Printf("[DataHandler] Failed to list types: %v", err)
		response.Error(w, apierror.InternalError("Failed to list data"))
		return
	}
	response.OK(w, map[string]interface{}{"types": types})
}

// bridgeError maps bridge errors to HTTP responses.
func bridgeError(w http.ResponseWriter, op, blobType string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidType):
		response.Error(w, apierror.BadRequest("Invalid type"))
	case errors.Is(err, service.ErrMissingContent):
		response.Error(w, apierror.BadRequest("Missing type or content"))
	case errors.Is(err, service.ErrInvalidContent):
		response.Error(w, apierror.BadRequest("Content must be valid JSON"))
	case errors.Is(err, service.ErrStaleWrite):
		response.Error(w, apierror.Conflict("A newer write for this type was already accepted"))
	case errors.Is(err, repository.ErrNotFound):
		response.Error(w, apierror.NotFound("Data not found"))
	default:
		log.Printf("[DataHandler] Failed to %s %s: %v", op, blobType, err)
		if op == "write" {
			response.Error(w, apierror.InternalError("Failed to save data"))
			return
		}
		response.Error(w, apierror.InternalError("Failed to read data"))
	}
}
