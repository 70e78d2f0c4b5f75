package interfaces

import (
	"errors"
	"net/http"

	financeErrors "github.com/hrslabs/kiffscore/internal/finance/errors"
)

// statusForError resolves a domain error to its transport status and client
// message. Business logic never sees HTTP codes; this table is the only
// place where the taxonomy meets the wire.
func statusForError(err error) (int, string) {
	var forbidden *financeErrors.ForbiddenReferenceError
	if errors.As(err, &forbidden) {
		if forbidden.Reference == financeErrors.ReferenceCategory {
			return http.StatusForbidden, "Utilisation de la catégorie impossible"
		}
		return http.StatusForbidden, "Utilisation du compte bancaire impossible"
	}

	var notFound *financeErrors.NotFoundError
	if errors.As(err, &notFound) {
		switch notFound.Resource {
		case "transaction":
			return http.StatusNotFound, "Transaction introuvable"
		case "category":
			return http.StatusNotFound, "Catégorie de transaction introuvable"
		default:
			return http.StatusNotFound, "Compte bancaire introuvable"
		}
	}

	var inUse *financeErrors.ResourceInUseError
	if errors.As(err, &inUse) {
		if inUse.Resource == "category" {
			return http.StatusBadRequest, "Impossible de supprimer la catégorie : des transactions y sont encore associées"
		}
		return http.StatusBadRequest, "Impossible de supprimer le compte : des transactions y sont encore associées"
	}

	if financeErrors.IsValidationError(err) {
		return http.StatusBadRequest, err.Error()
	}
	if financeErrors.IsConflictError(err) {
		return http.StatusConflict, err.Error()
	}
	return http.StatusInternalServerError, "Internal server error"
}
