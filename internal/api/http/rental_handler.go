package http

import (
	"net/http"
	"strconv"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/service"
)

// RentalHandler exposes the rental lifecycle over HTTP.
type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

type rentRequest struct {
	CustomerID        int64  `json:"customer_id"`
	VehicleID         int64  `json:"vehicle_id"`
	StartDate         string `json:"start_date"`
	PlannedReturnDate string `json:"planned_return_date"`
}

type returnRequest struct {
	ReturnDate string `json:"return_date"`
}

func (h *RentalHandler) Rent(w http.ResponseWriter, r *http.Request) {
	var req rentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		respondError(w, err)
		return
	}
	planned, err := parseDate(req.PlannedReturnDate, "planned_return_date")
	if err != nil {
		respondError(w, err)
		return
	}

	rental, err := h.rentals.RentVehicle(r.Context(), req.CustomerID, req.VehicleID, start, planned)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, rental)
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req returnRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	ret, err := parseDate(req.ReturnDate, "return_date")
	if err != nil {
		respondError(w, err)
		return
	}

	rental, err := h.rentals.ReturnVehicle(r.Context(), id, ret)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, rental)
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	rental, err := h.rentals.CancelRental(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	rental, err := h.rentals.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, rental)
}

// List supports optional status, customer_id, vehicle_id, and started
// from/to filters. Only one filter applies per request; status wins, then
// customer, then vehicle, then the date range.
func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if raw := q.Get("status"); raw != "" {
		list, err := h.rentals.FindByStatus(r.Context(), domain.RentalStatus(raw))
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, list)
		return
	}
	if raw := q.Get("customer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(w, domain.InvalidInputf("invalid customer_id %q", raw))
			return
		}
		list, err := h.rentals.FindByCustomer(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, list)
		return
	}
	if raw := q.Get("vehicle_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(w, domain.InvalidInputf("invalid vehicle_id %q", raw))
			return
		}
		list, err := h.rentals.FindByVehicle(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, list)
		return
	}
	if q.Get("started_from") != "" || q.Get("started_to") != "" {
		from, err := parseDate(q.Get("started_from"), "started_from")
		if err != nil {
			respondError(w, err)
			return
		}
		to, err := parseDate(q.Get("started_to"), "started_to")
		if err != nil {
			respondError(w, err)
			return
		}
		list, err := h.rentals.FindByStartDateRange(r.Context(), from, to)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, list)
		return
	}

	list, err := h.rentals.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, list)
}

func (h *RentalHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	list, err := h.rentals.FindActive(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, list)
}

func (h *RentalHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	list, err := h.rentals.FindOverdue(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, list)
}

func (h *RentalHandler) ListEndingToday(w http.ResponseWriter, r *http.Request) {
	list, err := h.rentals.FindEndingToday(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, list)
}

// MarkOverdue triggers the overdue sweep on demand. The nightly scheduler
// runs the same operation.
func (h *RentalHandler) MarkOverdue(w http.ResponseWriter, r *http.Request) {
	count, err := h.rentals.MarkOverdueRentals(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]int64{"marked": count})
}
