package http

import (
	"net/http"
	"strconv"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/service"
)

// VehicleHandler exposes the vehicle fleet over HTTP.
type VehicleHandler struct {
	vehicles service.VehicleService
}

func NewVehicleHandler(vehicles service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

type vehicleRequest struct {
	Brand           string `json:"brand"`
	Model           string `json:"model"`
	DailyPriceCents int64  `json:"daily_price_cents"`
}

func (h *VehicleHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.vehicles.Register(r.Context(), &domain.Vehicle{
		Brand:           req.Brand,
		Model:           req.Model,
		DailyPriceCents: req.DailyPriceCents,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, created)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	v, err := h.vehicles.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, v)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req vehicleRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.vehicles.Update(r.Context(), id, &domain.Vehicle{
		Brand:           req.Brand,
		Model:           req.Model,
		DailyPriceCents: req.DailyPriceCents,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

func (h *VehicleHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.vehicles.Remove(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Message: "vehicle deleted"})
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.vehicles.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, list)
}

func (h *VehicleHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	list, err := h.vehicles.ListAvailable(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, list)
}

// ListByPriceRange filters on the min_cents/max_cents query parameters.
// available=true narrows the result to vehicles that can be rented now.
func (h *VehicleHandler) ListByPriceRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minCents, err := queryCents(q.Get("min_cents"), "min_cents", 0)
	if err != nil {
		respondError(w, err)
		return
	}
	maxCents, err := queryCents(q.Get("max_cents"), "max_cents", 1<<62)
	if err != nil {
		respondError(w, err)
		return
	}
	availableOnly := q.Get("available") == "true"

	list, err := h.vehicles.ListByPriceRange(r.Context(), minCents, maxCents, availableOnly)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, list)
}

func (h *VehicleHandler) Search(w http.ResponseWriter, r *http.Request) {
	list, err := h.vehicles.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, list)
}

func (h *VehicleHandler) Availability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	available, err := h.vehicles.IsAvailable(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"available": available})
}

func queryCents(raw, field string, fallback int64) (int64, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, domain.InvalidInputf("%s must be a non-negative integer", field)
	}
	return v, nil
}
