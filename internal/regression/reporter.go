package regression

import (
	"fmt"
	"io"
	"strings"
)

// WriteReport renders results as an aligned pass/fail table, grounded on
// internal/regression/reporter.go's Reporter shape (a writer plus a render
// method), narrowed to plain text since there is no statistical summary to
// render here — just per-scenario pass/fail and a closing tally.
func WriteReport(w io.Writer, results []Result) {
	nameWidth := len("scenario")
	for _, r := range results {
		if len(r.Name) > nameWidth {
			nameWidth = len(r.Name)
		}
	}

	fmt.Fprintf(w, "%-*s  %-6s  %s\n", nameWidth, "scenario", "status", "detail")
	fmt.Fprintln(w, strings.Repeat("-", nameWidth+6+40))

	passed := 0
	for _, r := range results {
		status := "FAIL"
		if r.Passed {
			status = "PASS"
			passed++
		}
		fmt.Fprintf(w, "%-*s  %-6s  %s (%s)\n", nameWidth, r.Name, status, r.Detail, r.Duration)
	}

	fmt.Fprintf(w, "\n%d/%d scenarios passed\n", passed, len(results))
}
