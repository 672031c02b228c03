package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// AppendRoutes registers the gateway endpoints on r. auth guards the /api subtree.
func (h *Handler) AppendRoutes(r *mux.Router, auth mux.MiddlewareFunc) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth)
	api.HandleFunc("/card-list", h.GetCardList).Methods(http.MethodGet)
	api.HandleFunc("/statement-transactions", h.GetStatementTransactions).Methods(http.MethodGet)
}
