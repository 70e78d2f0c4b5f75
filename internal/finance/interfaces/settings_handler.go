package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/hrslabs/kiffscore/internal/finance/domain"
	"github.com/hrslabs/kiffscore/internal/permissions"
)

type BankAccountServiceInterface interface {
	CreateBankAccount(account *domain.BankAccount) error
	GetBankAccounts(userID string) ([]domain.BankAccount, error)
	UpdateBankAccount(accountID, userID string, label, icon *string, balance *float64) (*domain.BankAccount, error)
	DeleteBankAccount(accountID, userID string) error
}

type CategoryServiceInterface interface {
	CreateCategory(category *domain.TransactionCategory) error
	GetCategories(userID string) ([]domain.TransactionCategory, error)
	UpdateCategory(categoryID, userID string, name, icon *string) (*domain.TransactionCategory, error)
	DeleteCategory(categoryID, userID string) error
}

// SettingsHandler serves the bank-account and category management routes.
type SettingsHandler struct {
	accounts     BankAccountServiceInterface
	categories   CategoryServiceInterface
	perms        *permissions.Manager
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewSettingsHandler(
	accounts BankAccountServiceInterface,
	categories CategoryServiceInterface,
	perms *permissions.Manager,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *SettingsHandler {
	return &SettingsHandler{
		accounts:     accounts,
		categories:   categories,
		perms:        perms,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *SettingsHandler) authorize(w http.ResponseWriter, r *http.Request, permission permissions.Permission) (string, bool) {
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

func (h *SettingsHandler) CreateBankAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r, permissions.BankAccountCreateOwn)
	if !ok {
		return
	}

	var account domain.BankAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account.UserID = userID
	if err := h.accounts.CreateBankAccount(&account); err != nil {
		status, message := statusForError(err)
		h.respondError(w, status, message)
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   account,
	})
}

func (h *SettingsHandler) GetBankAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r, permissions.BankAccountViewOwn)
	if !ok {
		return
	}

	accounts, err := h.accounts.GetBankAccounts(userID)
	if err != nil {
		status, message := statusForError(err)
		h.respondError(w, status, message)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   accounts,
	})
}

func (h *SettingsHandler) UpdateBankAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r, permissions.BankAccountUpdateOwn)
	if !ok {
		return
	}

	var payload struct {
		Label   *string  `json:"label"`
		Icon    *string  `json:"icon"`
		Balance *float64 `json:"balance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.accounts.UpdateBankAccount(r.PathValue("bankID"), userID, payload.Label, payload.Icon, payload.Balance)
	if err != nil {
		status, message := statusForError(err)
		h.respondError(w, status, message)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   account,
	})
}

func (h *SettingsHandler) DeleteBankAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r, permissions.BankAccountDeleteOwn)
	if !ok {
		return
	}

	if err := h.accounts.DeleteBankAccount(r.PathValue("bankID"), userID); err != nil {
		status, message := statusForError(err)
		h.respondError(w, status, message)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Compte bancaire supprimé avec succès",
	})
}

func (h *SettingsHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r, permissions.CategoryCreateOwn)
	if !ok {
		return
	}

	var category domain.TransactionCategory
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category.UserID = userID
	if err := h.categories.CreateCategory(&category); err != nil {
		status, message := statusForError(err)
		h.respondError(w, status, message)
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Catégorie de dépense enregistrée avec succès",
		"data":    category,
	})
}

func (h *SettingsHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r, permissions.CategoryViewOwn)
	if !ok {
		return
	}

	categories, err := h.categories.GetCategories(userID)
	if err != nil {
		status, message := statusForError(err)
		h.respondError(w, status, message)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   categories,
	})
}

func (h *SettingsHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r, permissions.CategoryUpdateOwn)
	if !ok {
		return
	}

	var payload struct {
		Name *string `json:"name"`
		Icon *string `json:"icon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.categories.UpdateCategory(r.PathValue("categoryID"), userID, payload.Name, payload.Icon)
	if err != nil {
		status, message := statusForError(err)
		h.respondError(w, status, message)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   category,
	})
}

func (h *SettingsHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r, permissions.CategoryDeleteOwn)
	if !ok {
		return
	}

	if err := h.categories.DeleteCategory(r.PathValue("categoryID"), userID); err != nil {
		status, message := statusForError(err)
		h.respondError(w, status, message)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Catégorie de dépense supprimée avec succès",
	})
}
