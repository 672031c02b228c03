package handler

import (
	"errors"
	"net/http"

	"github.com/Dan9191/gps-gateway/internal/integrations/gps"
	"github.com/Dan9191/gps-gateway/internal/service"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BackendStatus reports the last known reachability of the card backend
type BackendStatus interface {
	Status() string
}

type Handler struct {
	svc     *service.Service
	backend BackendStatus
	log     *logrus.Logger
}

func NewHandler(svc *service.Service, backend BackendStatus, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, backend: backend, log: log}
}

// errorResponse is the client-facing error body
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

// GetCardList handles GET /api/card-list?cpr=
func (h *Handler) GetCardList(w http.ResponseWriter, r *http.Request) {
	q := service.CardListQuery{
		CPR: r.URL.Query().Get("cpr"),
	}

	cards, err := h.svc.ListCards(r.Context(), q)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, cards)
}

// GetStatementTransactions handles GET /api/statement-transactions?cpr=&cardNumber=&statementFlag=
func (h *Handler) GetStatementTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := service.StatementQuery{
		CPR:           query.Get("cpr"),
		CardNumber:    query.Get("cardNumber"),
		StatementFlag: query.Get("statementFlag"),
	}

	txs, err := h.svc.ListStatementTransactions(r.Context(), q)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, txs)
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": h.backend.Status(),
	})
}

// writeError maps validation and backend failures to 400 and anything else to 500.
// Internal error details are only logged.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *service.ValidationError
		backendErr    *gps.BackendError
	)
	switch {
	case errors.As(err, &validationErr):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    validationErr.Error(),
			Error:      http.StatusText(http.StatusBadRequest),
		})
	case errors.As(err, &backendErr):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    backendErr.Error(),
			Error:      http.StatusText(http.StatusBadRequest),
		})
	default:
		h.log.Errorf("Unhandled error: %v", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			Error:      http.StatusText(http.StatusInternalServerError),
		})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}
