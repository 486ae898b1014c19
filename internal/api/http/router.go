package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires all handlers into a gorilla/mux router with the shared
// middleware chain.
func NewRouter(
	vehicles *VehicleHandler,
	customers *CustomerHandler,
	rentals *RentalHandler,
	reports *ReportHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID, AccessLog)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/vehicles", vehicles.Register).Methods(http.MethodPost)
	api.HandleFunc("/vehicles", vehicles.List).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/available", vehicles.ListAvailable).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/price-range", vehicles.ListByPriceRange).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/search", vehicles.Search).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}", vehicles.Get).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}", vehicles.Update).Methods(http.MethodPut)
	api.HandleFunc("/vehicles/{id:[0-9]+}", vehicles.Remove).Methods(http.MethodDelete)
	api.HandleFunc("/vehicles/{id:[0-9]+}/availability", vehicles.Availability).Methods(http.MethodGet)

	api.HandleFunc("/customers", customers.Register).Methods(http.MethodPost)
	api.HandleFunc("/customers", customers.List).Methods(http.MethodGet)
	api.HandleFunc("/customers/by-email", customers.GetByEmail).Methods(http.MethodGet)
	api.HandleFunc("/customers/search", customers.Search).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id:[0-9]+}", customers.Get).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id:[0-9]+}", customers.Update).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id:[0-9]+}", customers.Remove).Methods(http.MethodDelete)
	api.HandleFunc("/customers/{id:[0-9]+}/eligibility", customers.Eligibility).Methods(http.MethodGet)

	api.HandleFunc("/rentals", rentals.Rent).Methods(http.MethodPost)
	api.HandleFunc("/rentals", rentals.List).Methods(http.MethodGet)
	api.HandleFunc("/rentals/active", rentals.ListActive).Methods(http.MethodGet)
	api.HandleFunc("/rentals/overdue", rentals.ListOverdue).Methods(http.MethodGet)
	api.HandleFunc("/rentals/ending-today", rentals.ListEndingToday).Methods(http.MethodGet)
	api.HandleFunc("/rentals/mark-overdue", rentals.MarkOverdue).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}", rentals.Get).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}/return", rentals.Return).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/cancel", rentals.Cancel).Methods(http.MethodPost)

	api.HandleFunc("/reports/revenue", reports.Revenue).Methods(http.MethodGet)
	api.HandleFunc("/reports/rental-status-counts", reports.StatusCounts).Methods(http.MethodGet)
	api.HandleFunc("/reports/top-vehicles", reports.TopVehicles).Methods(http.MethodGet)
	api.HandleFunc("/reports/top-customers", reports.TopCustomers).Methods(http.MethodGet)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Response{Message: "ok"})
	}).Methods(http.MethodGet)

	return r
}
