package appointment

import (
	"fmt"
	"strings"
	"time"
)

// PreparationMessage builds the reminder SMS for a visit, with the
// preparation note that applies to the specialty.
func PreparationMessage(patientName, hospitalName, timeSlot string, a Appointment) string {
	name := patientName
	if name == "" {
		name = "Gentile paziente"
	}

	dateStr := a.Date
	if d, err := time.Parse("2006-01-02", a.Date); err == nil {
		dateStr = d.Format("02/01/2006")
	}

	base := fmt.Sprintf("%s, promemoria visita di %s il %s nella fascia %s presso %s.",
		name, strings.ToLower(a.Specialty), dateStr, timeSlot, hospitalName)

	var extra string
	switch {
	case strings.Contains(a.Specialty, "Prelievo"):
		extra = " Presentati a digiuno da almeno 8 ore e porta tessera sanitaria e documento di identità."
	case strings.Contains(a.Specialty, "Cardio"):
		extra = " Porta elenco aggiornato dei farmaci e l'ultimo referto cardiologico se disponibile."
	case strings.Contains(a.Specialty, "Ecografia"), strings.Contains(a.Specialty, "addome"):
		extra = " Segui le indicazioni di preparazione ricevute (es. vescica piena o digiuno, se previsto)."
	case strings.Contains(a.Specialty, "Oncologia"):
		extra = " Ti ricordiamo di arrivare con qualche minuto di anticipo per la fase di accettazione."
	default:
		extra = " Arriva con qualche minuto di anticipo per l'accettazione."
	}

	return base + extra
}
