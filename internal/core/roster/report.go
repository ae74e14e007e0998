package roster

import (
	"fmt"
	"strings"
)

// MaxReportedErrors caps the row errors included in the summary message.
const MaxReportedErrors = 5

// Report is the tally of one import. It is returned to the caller and not
// stored anywhere.
type Report struct {
	Kind      Kind
	Succeeded int
	Failed    int
	Results   []RowResult
}

func (r *Report) add(res RowResult) {
	r.Results = append(r.Results, res)
	if res.Failed() {
		r.Failed++
	} else {
		r.Succeeded++
	}
}

// Errors returns every row failure message in file order.
func (r *Report) Errors() []string {
	var errs []string
	for _, res := range r.Results {
		if res.Failed() {
			errs = append(errs, res.Message())
		}
	}
	return errs
}

// Counts returns the number of rows per outcome.
func (r *Report) Counts() map[Outcome]int {
	out := make(map[Outcome]int)
	for _, res := range r.Results {
		out[res.Outcome]++
	}
	return out
}

// Message is the summary shown to the uploader.
func (r *Report) Message() string {
	return BuildMessage(r.Kind.Label(), r.Succeeded, r.Failed, r.Errors())
}

// BuildMessage renders an import summary. Only the first MaxReportedErrors
// errors are included.
func BuildMessage(label string, succeeded, failed int, errs []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Successfully added %d %s.", succeeded, label)
	if failed > 0 {
		fmt.Fprintf(&b, " %d failed.", failed)
		if len(errs) > 0 {
			if len(errs) > MaxReportedErrors {
				errs = errs[:MaxReportedErrors]
			}
			b.WriteString(" Errors: ")
			b.WriteString(strings.Join(errs, "; "))
		}
	}
	return b.String()
}
