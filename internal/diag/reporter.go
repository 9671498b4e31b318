package diag

// Reporter is the minimal contract for receiving diagnostics.
// Implementations: BagReporter, NopReporter, OnceReporter.
type Reporter interface {
	Report(code Code, sev Severity, subject, msg string)
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, subject, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{Severity: sev, Code: code, Subject: subject, Message: msg})
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, string, string) {}

// Warn is a shortcut for SevWarning; r may be nil.
func Warn(r Reporter, code Code, subject, msg string) {
	if r != nil {
		r.Report(code, SevWarning, subject, msg)
	}
}

// Info is a shortcut for SevInfo; r may be nil.
func Info(r Reporter, code Code, subject, msg string) {
	if r != nil {
		r.Report(code, SevInfo, subject, msg)
	}
}
