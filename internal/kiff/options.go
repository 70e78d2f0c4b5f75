package kiff

// Project is a planned annual spend with a flexibility ratio in [0,1]:
// 0 means the spend is fixed and counts in full, 1 means it is fully
// flexible and is discounted to zero.
type Project struct {
	Amount      float64 `json:"montant"`
	Flexibility float64 `json:"flexibilite"`
}

// Options carries the household configuration for a score computation.
// Every field is optional; the zero value scores a single-person household
// with the default subsistence base.
type Options struct {
	HouseholdSize          int       `json:"nb_personne_foyer"`
	BaseBVM                float64   `json:"base_bvm"`
	AnnualProjects         []Project `json:"projets_annuel"`
	AnnualSavingsTarget    float64   `json:"objectif_epargne_annuel"`
	AnnualRevenueOverride  *float64  `json:"revenu_annuel_override"`
	RemainingMonthlyIncome *float64  `json:"revenu_restant_mois"`
	TransactionLimit       int       `json:"transaction_limit"`
	DailyAverageWindowDays int       `json:"consider_days_for_daily_average"`
}

const (
	defaultBaseBVM          = 300
	defaultTransactionLimit = 10000
)

// normalized returns a copy with defaults applied.
func (o Options) normalized() Options {
	if o.HouseholdSize < 1 {
		o.HouseholdSize = 1
	}
	if o.BaseBVM <= 0 {
		o.BaseBVM = defaultBaseBVM
	}
	if o.TransactionLimit <= 0 {
		o.TransactionLimit = defaultTransactionLimit
	}
	return o
}

// ResultDetails is the extended budget breakdown attached to every result.
type ResultDetails struct {
	AnnualCharge     float64 `json:"charge_annuelle"`
	WeightedProjects float64 `json:"projet_pondere"`
	AnnualRevenue    float64 `json:"revenu_annuel"`
	DailyAvgSpending float64 `json:"moyenne_depenses_journalier"`
}

// Result is the score snapshot returned to the caller. All monetary fields
// are rounded to 2 decimals at assembly; nothing here is persisted. The JSON
// keys keep the historical API contract.
type Result struct {
	Mode                   string        `json:"mode"`
	HouseholdSize          int           `json:"nb_personne_foyer"`
	BVM                    float64       `json:"BVM"`
	MonthlyRemainingBudget float64       `json:"budget_mensuel_restant"`
	MonthlyKiff            float64       `json:"kiff_brut_mensuel"`
	AnnualBudget           float64       `json:"budget_annuel"`
	AnnualKiff             float64       `json:"kiff_brut_annuel"`
	RawKiff                float64       `json:"kiff_brut"`
	LiquidReserve          float64       `json:"reserve_liquide"`
	Cushion                float64       `json:"coussin"`
	AdjustedKiff           float64       `json:"kiff_ajuste"`
	SurvivalMonths         float64       `json:"mois_survie"`
	StabilityScore         float64       `json:"score_stabilite"`
	Mood                   string        `json:"mood"`
	Details                ResultDetails `json:"details"`
}

const (
	ModeNormal  = "normal"
	ModeLowData = "low-data"
)
