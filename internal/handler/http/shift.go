package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type ShiftHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Detect(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{shiftService: shiftService}
}

func (h *shiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.shiftService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created successfully", result)
}

func (h *shiftHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *shiftHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdateShiftRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.shiftService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated successfully", result)
}

func (h *shiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.shiftService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted successfully", nil)
}

// Detect resolves the shift for an HH:MM wall clock time given in ?time=.
func (h *shiftHandlerImpl) Detect(w http.ResponseWriter, r *http.Request) {
	clock := r.URL.Query().Get("time")
	if !validator.IsValidClock(clock) {
		response.HandleError(w, shift.ErrInvalidClockTime)
		return
	}
	at, err := time.Parse("15:04", clock)
	if err != nil {
		response.HandleError(w, shift.ErrInvalidClockTime)
		return
	}

	matched, err := h.shiftService.Detect(r.Context(), at)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shift.ToResponse(matched))
}
