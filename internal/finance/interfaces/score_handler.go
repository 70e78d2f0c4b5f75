package interfaces

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/hrslabs/kiffscore/internal/kiff"
	"github.com/hrslabs/kiffscore/internal/permissions"
)

type ScorerInterface interface {
	ComputeScore(userID string, opts kiff.Options) (*kiff.Result, error)
}

// ScoreHandler serves the kiff-score endpoint. Configuration arrives as
// query parameters; the planned-projects list is a JSON array in the
// `projets_annuel` parameter.
type ScoreHandler struct {
	scorer       ScorerInterface
	perms        *permissions.Manager
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewScoreHandler(
	scorer ScorerInterface,
	perms *permissions.Manager,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *ScoreHandler {
	return &ScoreHandler{
		scorer:       scorer,
		perms:        perms,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *ScoreHandler) GetKiffScore(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := callerFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if h.perms != nil && !h.perms.Has(role, permissions.TransactionViewOwn) {
		h.respondError(w, http.StatusForbidden, "Permission refusée")
		return
	}

	opts, err := parseScoreOptions(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.scorer.ComputeScore(userID, opts)
	if err != nil {
		log.Printf("Error during score computation: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to compute score")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

func parseScoreOptions(r *http.Request) (kiff.Options, error) {
	var opts kiff.Options
	query := r.URL.Query()

	if raw := query.Get("nb_personne_foyer"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return opts, errInvalidOption("nb_personne_foyer")
		}
		opts.HouseholdSize = value
	}
	if raw := query.Get("base_bvm"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value <= 0 {
			return opts, errInvalidOption("base_bvm")
		}
		opts.BaseBVM = value
	}
	if raw := query.Get("objectif_epargne_annuel"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			return opts, errInvalidOption("objectif_epargne_annuel")
		}
		opts.AnnualSavingsTarget = value
	}
	if raw := query.Get("revenu_annuel_override"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, errInvalidOption("revenu_annuel_override")
		}
		opts.AnnualRevenueOverride = &value
	}
	if raw := query.Get("revenu_restant_mois"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, errInvalidOption("revenu_restant_mois")
		}
		opts.RemainingMonthlyIncome = &value
	}
	if raw := query.Get("transaction_limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return opts, errInvalidOption("transaction_limit")
		}
		opts.TransactionLimit = value
	}
	if raw := query.Get("consider_days_for_daily_average"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return opts, errInvalidOption("consider_days_for_daily_average")
		}
		opts.DailyAverageWindowDays = value
	}
	if raw := query.Get("projets_annuel"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts.AnnualProjects); err != nil {
			return opts, errInvalidOption("projets_annuel")
		}
	}
	return opts, nil
}

type optionError struct {
	field string
}

func (e optionError) Error() string {
	return e.field + " invalide"
}

func errInvalidOption(field string) error {
	return optionError{field: field}
}
