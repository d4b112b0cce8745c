package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mwiater/benchmatrix/internal/stats"
)

func sampleReport() Report {
	start := time.Unix(1700000000, 0)
	end := start.Add(3 * time.Second)
	cases := []stats.CaseStats{{Case: "size=10", Total: 2, Successful: 2, SuccessRate: 100}}
	return New("gzip_compression", start, end, cases, stats.Merge(cases))
}

func TestWriteRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"benchmark\"") {
		t.Fatal("report is not indented")
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("report does not parse: %v", err)
	}
	if decoded.Benchmark != "gzip_compression" || decoded.TotalExecutionTime != 3 {
		t.Fatalf("decoded = %+v", decoded)
	}
	if decoded.Summary.Total != 2 {
		t.Fatalf("summary total = %d", decoded.Summary.Total)
	}
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")
	written, err := Export(path, sampleReport())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if written != path {
		t.Fatalf("Export path = %q, want %q", written, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported report: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("exported report does not parse: %v", err)
	}
}

func TestExportToDirectory(t *testing.T) {
	dir := t.TempDir()
	written, err := Export(dir, sampleReport())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Dir(written) != dir {
		t.Fatalf("Export path = %q, want inside %q", written, dir)
	}
	if filepath.Base(written) != "gzip_compression-2.json" {
		t.Fatalf("generated name = %q", filepath.Base(written))
	}
}
