package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goodzwork/hr-backend-go/internal/domain/face"
	"github.com/goodzwork/hr-backend-go/internal/handler/http/response"
)

type FaceHandler interface {
	Enroll(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	RejectEnrollment(w http.ResponseWriter, r *http.Request)
}

type faceHandlerImpl struct {
	faceService face.FaceService
}

func NewFaceHandler(faceService face.FaceService) FaceHandler {
	return &faceHandlerImpl{
		faceService: faceService,
	}
}

// Enroll implements FaceHandler.
func (h *faceHandlerImpl) Enroll(w http.ResponseWriter, r *http.Request) {
	var req face.EnrollFaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode enroll request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.faceService.EnrollFace(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, resp.Message, resp)
}

// Verify implements FaceHandler.
func (h *faceHandlerImpl) Verify(w http.ResponseWriter, r *http.Request) {
	var req face.VerifyFaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.faceService.VerifyFace(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// RejectEnrollment implements FaceHandler.
func (h *faceHandlerImpl) RejectEnrollment(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	if err := h.faceService.RejectEnrollment(r.Context(), userID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Enrollment rejected", nil)
}
