package views

import "github.com/TuralIslamli/beauty-center-app-sub000/internal/models"

// Severity classifies a status for highlighting in rendered tables.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

var bookingSeverities = map[string]Severity{
	models.StatusPending:  SeverityWarning,
	models.StatusAccepted: SeverityInfo,
	models.StatusArrived:  SeveritySuccess,
	models.StatusRejected: SeverityDanger,
	models.StatusOnline:   SeverityInfo,
}

// BookingSeverity maps a booking status to its display severity. Unknown
// statuses render neutrally.
func BookingSeverity(status string) Severity {
	if s, ok := bookingSeverities[status]; ok {
		return s
	}
	return SeverityInfo
}

var serviceSeverities = map[string]Severity{
	"new":      SeverityInfo,
	"accepted": SeveritySuccess,
	"rejected": SeverityDanger,
}

func ServiceSeverity(status string) Severity {
	if s, ok := serviceSeverities[status]; ok {
		return s
	}
	return SeverityInfo
}
