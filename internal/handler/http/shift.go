package http

import (
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	shiftService "github.com/attendly/attendance-backend-go/internal/service/shift"
	"github.com/go-chi/chi/v5"
)

type ShiftHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shiftService.ShiftService
}

func NewShiftHandler(service shiftService.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{shiftService: service}
}

// Get implements ShiftHandler.
func (h *shiftHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Shift ID is required", nil)
		return
	}

	result, err := h.shiftService.GetShift(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements ShiftHandler.
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.ListShifts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
