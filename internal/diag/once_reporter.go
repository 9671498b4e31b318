package diag

import "sync"

// OnceReporter forwards only the first report for each Code+Subject pair.
// Scorers run the same comparison many times during a ranking pass and would
// otherwise flood the bag with identical findings.
type OnceReporter struct {
	Next Reporter

	mu   sync.Mutex
	seen map[onceKey]struct{}
}

type onceKey struct {
	code    Code
	subject string
}

func NewOnceReporter(next Reporter) *OnceReporter {
	return &OnceReporter{Next: next, seen: make(map[onceKey]struct{})}
}

func (r *OnceReporter) Report(code Code, sev Severity, subject, msg string) {
	if r == nil || r.Next == nil {
		return
	}
	k := onceKey{code, subject}
	r.mu.Lock()
	if _, dup := r.seen[k]; dup {
		r.mu.Unlock()
		return
	}
	r.seen[k] = struct{}{}
	r.mu.Unlock()
	r.Next.Report(code, sev, subject, msg)
}
