package triage

import (
	"strings"

	"github.com/mylatitude/engage/internal/shared/errors"
)

// Follow-up triage levels
const (
	LevelGreen  = "verde"
	LevelYellow = "giallo"
	LevelRed    = "rosso"
)

// Symptom urgency levels
const (
	UrgencyLow        = "basso"
	UrgencyMedium     = "medio"
	UrgencyMediumHigh = "medio-alto"
	UrgencyHigh       = "alto"
)

// Red flag symptoms recognized by the symptom classifier
const (
	RedFlagChestPain       = "dolore toracico"
	RedFlagBreathShortness = "mancanza di respiro"
	RedFlagHighFever       = "febbre alta"
)

// CheckIn is a post-procedure follow-up check-in
type CheckIn struct {
	DaysFromProcedure int  `json:"days_from_procedure"`
	PainLevel         int  `json:"pain_level"`
	ShortnessOfBreath bool `json:"shortness_of_breath"`
	Fever             bool `json:"fever"`
}

// CheckInResult is the triage outcome for a follow-up check-in
type CheckInResult struct {
	TriageLevel     string `json:"triage_level"`
	Message         string `json:"message"`
	SuggestedAction string `json:"suggested_action"`
}

// EvaluateCheckIn classifies a follow-up check-in into verde, giallo or
// rosso using fixed risk points. Ties resolve to the calmer tier.
func EvaluateCheckIn(in CheckIn) (CheckInResult, error) {
	details := map[string]string{}
	if in.PainLevel < 0 || in.PainLevel > 10 {
		details["pain_level"] = "pain_level must be between 0 and 10"
	}
	if in.DaysFromProcedure < 0 {
		details["days_from_procedure"] = "days_from_procedure must not be negative"
	}
	if len(details) > 0 {
		return CheckInResult{}, errors.Validation("validation failed", details)
	}

	riskPoints := 0

	if in.PainLevel >= 7 {
		riskPoints += 2
	} else if in.PainLevel >= 4 {
		riskPoints++
	}

	if in.ShortnessOfBreath {
		riskPoints += 2
	}

	if in.Fever {
		riskPoints++
	}

	// the first days after a procedure are the most delicate
	if in.DaysFromProcedure <= 2 {
		riskPoints++
	}

	switch {
	case riskPoints <= 1:
		return CheckInResult{
			TriageLevel:     LevelGreen,
			Message:         "Controllo post-procedura nella norma.",
			SuggestedAction: "Prosegui con le indicazioni ricevute e ripeti il check-in domani.",
		}, nil
	case riskPoints <= 3:
		return CheckInResult{
			TriageLevel:     LevelYellow,
			Message:         "Alcuni sintomi meritano attenzione.",
			SuggestedAction: "Valuta un contatto telefonico con il reparto o il medico curante.",
		}, nil
	default:
		return CheckInResult{
			TriageLevel:     LevelRed,
			Message:         "Sintomi importanti rilevati.",
			SuggestedAction: "Contatta subito il numero indicato dall'ospedale o valuta l'accesso al pronto soccorso.",
		}, nil
	}
}

// SymptomReport is a self-reported symptom description
type SymptomReport struct {
	Symptom  string   `json:"symptom"`
	Severity int      `json:"severity"`
	RedFlags []string `json:"red_flags,omitempty"`
	FreeText string   `json:"free_text,omitempty"`
}

// SymptomResult is the urgency estimate for a symptom report
type SymptomResult struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// EvaluateSymptoms estimates urgency for a symptom report. Red flags
// take priority over severity, which takes priority over the
// fever-only signal.
func EvaluateSymptoms(in SymptomReport) (SymptomResult, error) {
	if in.Severity < 0 || in.Severity > 10 {
		return SymptomResult{}, errors.Validation("validation failed", map[string]string{
			"severity": "severity must be between 0 and 10",
		})
	}

	level := UrgencyLow
	message := "Sintomi lievi: contatta il tuo medico di base nei prossimi giorni per un confronto."

	if hasFlag(in.RedFlags, RedFlagChestPain) || hasFlag(in.RedFlags, RedFlagBreathShortness) {
		level = UrgencyHigh
		message = "Segnali potenzialmente seri. In un contesto reale dovresti contattare subito un medico o il servizio di emergenza (112)."
	} else if in.Severity >= 7 {
		level = UrgencyMediumHigh
		message = "Sintomi intensi. In un contesto reale sarebbe consigliabile un contatto rapido con il medico o la guardia medica."
	} else if hasFlag(in.RedFlags, RedFlagHighFever) {
		level = UrgencyMedium
		message = "Febbre significativa. In un contesto reale dovresti monitorare e sentire il medico se non migliora."
	}

	if text := strings.TrimSpace(in.FreeText); text != "" {
		excerpt := text
		if runes := []rune(excerpt); len(runes) > 200 {
			excerpt = string(runes[:200])
		}
		message += ` Dettagli forniti: "` + excerpt + `".`
	}

	return SymptomResult{Level: level, Message: message}, nil
}

func hasFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if f == flag {
			return true
		}
	}
	return false
}
