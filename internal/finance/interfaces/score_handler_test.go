package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hrslabs/kiffscore/internal/kiff"
	"github.com/hrslabs/kiffscore/internal/permissions"
)

func TestGetKiffScore(t *testing.T) {
	scorer := &MockScorer{Result: &kiff.Result{Mode: kiff.ModeNormal, AdjustedKiff: 42.5, Mood: "relax"}}
	handler := NewScoreHandler(scorer, permissions.New(), respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.GetKiffScore(w, authedRequest(http.MethodGet, "/api/protected/kiff-score", nil))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Status string      `json:"status"`
		Data   kiff.Result `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "success", response.Status)
	assert.Equal(t, 42.5, response.Data.AdjustedKiff)
	assert.Equal(t, "user-1", scorer.GotUserID)
	assert.Equal(t, 1, scorer.CallCounter)
}

func TestGetKiffScore_QueryOptions(t *testing.T) {
	scorer := &MockScorer{Result: &kiff.Result{Mode: kiff.ModeNormal}}
	handler := NewScoreHandler(scorer, permissions.New(), respondJSON, respondError)

	query := url.Values{}
	query.Set("nb_personne_foyer", "4")
	query.Set("base_bvm", "350")
	query.Set("objectif_epargne_annuel", "1200")
	query.Set("projets_annuel", `[{"montant":2000,"flexibilite":0.5}]`)

	w := httptest.NewRecorder()
	handler.GetKiffScore(w, authedRequest(http.MethodGet, "/api/protected/kiff-score?"+query.Encode(), nil))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	assert.Equal(t, 4, scorer.GotOptions.HouseholdSize)
	assert.Equal(t, 350.0, scorer.GotOptions.BaseBVM)
	assert.Equal(t, 1200.0, scorer.GotOptions.AnnualSavingsTarget)
	assert.Equal(t, []kiff.Project{{Amount: 2000, Flexibility: 0.5}}, scorer.GotOptions.AnnualProjects)
}

func TestGetKiffScore_InvalidOption(t *testing.T) {
	scorer := &MockScorer{Result: &kiff.Result{}}
	handler := NewScoreHandler(scorer, permissions.New(), respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.GetKiffScore(w, authedRequest(http.MethodGet, "/api/protected/kiff-score?nb_personne_foyer=zero", nil))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "nb_personne_foyer invalide", response["message"])
	assert.Equal(t, 0, scorer.CallCounter)
}

func TestGetKiffScore_ComputationFailure(t *testing.T) {
	scorer := &MockScorer{Err: errors.New("boom")}
	handler := NewScoreHandler(scorer, permissions.New(), respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.GetKiffScore(w, authedRequest(http.MethodGet, "/api/protected/kiff-score", nil))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestGetKiffScore_Unauthorized(t *testing.T) {
	scorer := &MockScorer{}
	handler := NewScoreHandler(scorer, permissions.New(), respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/protected/kiff-score", nil)
	w := httptest.NewRecorder()
	handler.GetKiffScore(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, 0, scorer.CallCounter)
}
