package diag

import "fmt"

type Diagnostic struct {
	Severity Severity
	Code     Code
	Subject  string
	Message  string
}

func (d Diagnostic) String() string {
	if d.Subject == "" {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Code.ID(), d.Message)
	}
	return fmt.Sprintf("%s %s %s: %s", d.Severity, d.Code.ID(), d.Subject, d.Message)
}
