package http

import (
	"net/http"
	"strconv"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/service"
)

// ReportHandler exposes revenue and usage aggregates over HTTP.
type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Revenue returns total revenue, or revenue within [from, to] when both
// query parameters are present.
func (h *ReportHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fromRaw, toRaw := q.Get("from"), q.Get("to")

	if fromRaw == "" && toRaw == "" {
		total, err := h.reports.TotalRevenueCents(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, map[string]int64{"revenue_cents": total})
		return
	}

	from, err := parseDate(fromRaw, "from")
	if err != nil {
		respondError(w, err)
		return
	}
	to, err := parseDate(toRaw, "to")
	if err != nil {
		respondError(w, err)
		return
	}

	total, err := h.reports.RevenueInPeriodCents(r.Context(), from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]int64{"revenue_cents": total})
}

func (h *ReportHandler) StatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.reports.CountByStatus(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, counts)
}

func (h *ReportHandler) TopVehicles(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r.URL.Query().Get("limit"))
	if err != nil {
		respondError(w, err)
		return
	}

	list, err := h.reports.MostRentedVehicles(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, list)
}

func (h *ReportHandler) TopCustomers(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r.URL.Query().Get("limit"))
	if err != nil {
		respondError(w, err)
		return
	}

	list, err := h.reports.MostActiveCustomers(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, list)
}

func queryLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, domain.InvalidInputf("limit must be a non-negative integer")
	}
	return limit, nil
}
