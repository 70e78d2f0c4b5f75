package interfaces

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/hrslabs/kiffscore/internal/auth"
	"github.com/hrslabs/kiffscore/internal/finance/domain"
	"github.com/hrslabs/kiffscore/internal/permissions"
)

type LedgerServiceInterface interface {
	CreateTransaction(transaction *domain.Transaction) error
	UpdateTransaction(transactionID, userID string, patch domain.TransactionPatch) (*domain.Transaction, error)
	DeleteTransaction(transactionID, userID string) error
	GetTransaction(transactionID, userID string) (*domain.Transaction, error)
	GetUserTransactions(userID string, limit, offset int) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	service      LedgerServiceInterface
	perms        *permissions.Manager
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewTransactionHandler(
	service LedgerServiceInterface,
	perms *permissions.Manager,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *TransactionHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &TransactionHandler{
		service:      service,
		perms:        perms,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// callerFromContext pulls the authenticated user and role set by the JWT
// middleware.
func callerFromContext(r *http.Request) (string, permissions.Role, bool) {
	userID, ok := r.Context().Value(auth.UserIDKey).(string)
	if !ok || userID == "" {
		return "", "", false
	}
	role, _ := r.Context().Value(auth.RoleKey).(permissions.Role)
	return userID, role, true
}

func (h *TransactionHandler) authorize(w http.ResponseWriter, r *http.Request, permission permissions.Permission) (string, bool) {
	userID, role, ok := callerFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	if h.perms != nil && !h.perms.Has(role, permission) {
		h.respondError(w, http.StatusForbidden, "Permission refusée")
		return "", false
	}
	return userID, true
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r, permissions.TransactionCreateOwn)
	if !ok {
		return
	}

	var transaction domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&transaction); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	transaction.UserID = userID
	if err := h.service.CreateTransaction(&transaction); err != nil {
		status, message := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Printf("Error during transaction creation: %v", err)
		}
		h.respondError(w, status, message)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully created.",
		"data":    transaction,
	})
}

func (h *TransactionHandler) GetUserTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r, permissions.TransactionViewOwn)
	if !ok {
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	transactions, err := h.service.GetUserTransactions(userID, limit, offset)
	if err != nil {
		status, message := statusForError(err)
		h.respondError(w, status, message)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   transactions,
	})
}

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r, permissions.TransactionViewOwn)
	if !ok {
		return
	}

	transaction, err := h.service.GetTransaction(r.PathValue("transactionID"), userID)
	if err != nil {
		status, message := statusForError(err)
		h.respondError(w, status, message)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   transaction,
	})
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r, permissions.TransactionUpdateOwn)
	if !ok {
		return
	}

	var patch domain.TransactionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	transaction, err := h.service.UpdateTransaction(r.PathValue("transactionID"), userID, patch)
	if err != nil {
		status, message := statusForError(err)
		h.respondError(w, status, message)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully updated.",
		"data":    transaction,
	})
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r, permissions.TransactionDeleteOwn)
	if !ok {
		return
	}

	if err := h.service.DeleteTransaction(r.PathValue("transactionID"), userID); err != nil {
		status, message := statusForError(err)
		h.respondError(w, status, message)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction supprimée avec succès",
	})
}

func parseIntQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
