package diag

// Severity orders findings for display; higher is more serious.
type Severity uint8

const (
	// SevInfo notes something that left every score intact, such as a
	// symbol without a feature vector being counted as 0.
	SevInfo Severity = iota
	// SevWarning notes a score degraded to the sentinel or a language left out.
	SevWarning
	// SevError notes input that could not be used at all.
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}
