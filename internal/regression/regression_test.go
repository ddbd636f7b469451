package regression_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lox/betteridle/internal/regression"
)

func TestScenariosAllPass(t *testing.T) {
	catalog := regression.BuildCatalog()
	results := regression.Run(catalog, regression.Scenarios(), 1)

	if len(results) != 6 {
		t.Fatalf("expected 6 scenario results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("scenario %q failed: %s", r.Name, r.Detail)
		}
	}
}

func TestWriteReportRendersPassFailTally(t *testing.T) {
	results := []regression.Result{
		{Name: "a", Passed: true, Detail: "ok"},
		{Name: "b", Passed: false, Detail: "solve failed"},
	}
	var buf bytes.Buffer
	regression.WriteReport(&buf, results)

	out := buf.String()
	if !strings.Contains(out, "1/2 scenarios passed") {
		t.Fatalf("expected tally line, got:\n%s", out)
	}
	if !strings.Contains(out, "PASS") || !strings.Contains(out, "FAIL") {
		t.Fatalf("expected both PASS and FAIL rows, got:\n%s", out)
	}
}
