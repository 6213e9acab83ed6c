package prevention

// Risk profiles by age band
const (
	RiskLow      = "basso"
	RiskModerate = "moderato"
	RiskElevated = "elevato"
)

// Conditions recognized by the plan builder; anything else is ignored
const (
	ConditionDiabetes        = "diabete"
	ConditionHypertension    = "ipertensione"
	ConditionHighCholesterol = "ipercolesterolemia"
	ConditionSmoking         = "fumo"
	ConditionObesity         = "obesità"
)

// PlanRequest is the input to the prevention plan builder
type PlanRequest struct {
	Age        int      `json:"age"`
	Sex        string   `json:"sex"`
	Conditions []string `json:"conditions,omitempty"`
}

// Plan is a fixed-rule prevention plan
type Plan struct {
	RiskProfile         string   `json:"risk_profile"`
	Recommendations     []string `json:"recommendations"`
	SuggestedScreenings []string `json:"suggested_screenings"`
}

// BuildPlan derives the prevention plan from age band, sex and
// self-reported conditions. Recommendations start with the age-based
// item followed by condition items in fixed order; screenings start
// with the age-based item followed by the sex-based one. The result
// depends only on the input; there is no state between calls.
func BuildPlan(req PlanRequest) Plan {
	recs := []string{}
	screenings := []string{}

	var riskProfile string
	switch {
	case req.Age < 40:
		riskProfile = RiskLow
		recs = append(recs, "Mantieni uno stile di vita attivo e una dieta equilibrata.")
	case req.Age < 60:
		riskProfile = RiskModerate
		recs = append(recs, "Controlla regolarmente pressione, colesterolo e glicemia.")
		screenings = append(screenings, "Check-up cardiovascolare ogni 1-2 anni.")
	default:
		riskProfile = RiskElevated
		recs = append(recs, "Programma controlli regolari con il medico di riferimento.")
		screenings = append(screenings, "Controlli cardiologici e metabolici almeno annuali.")
	}

	switch req.Sex {
	case "F":
		screenings = append(screenings, "Valuta uno screening senologico e ginecologico secondo indicazione medica.")
	case "M":
		screenings = append(screenings, "Valuta uno screening secondo indicazione medica.")
	}

	if has(req.Conditions, ConditionDiabetes) {
		recs = append(recs, "Controlla regolarmente glicemia e programma visita oculistica periodica.")
	}
	if has(req.Conditions, ConditionHypertension) {
		recs = append(recs, "Monitora la pressione e riduci l'apporto di sale.")
	}
	if has(req.Conditions, ConditionHighCholesterol) {
		recs = append(recs, "Riduci grassi saturi e segui dieta ipolipidica.")
	}
	if has(req.Conditions, ConditionSmoking) {
		recs = append(recs, "Valuta un programma di cessazione del fumo.")
	}
	if has(req.Conditions, ConditionObesity) {
		recs = append(recs, "Consulta nutrizionista e valuta attività fisica regolare.")
	}

	return Plan{
		RiskProfile:         riskProfile,
		Recommendations:     recs,
		SuggestedScreenings: screenings,
	}
}

func has(conditions []string, condition string) bool {
	for _, c := range conditions {
		if c == condition {
			return true
		}
	}
	return false
}
