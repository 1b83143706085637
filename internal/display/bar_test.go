package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestBarKnownTotal(t *testing.T) {
	var buf bytes.Buffer
	b := newBarTo(&buf)

	if err := b.Report(16, 128); err != nil {
		t.Fatalf("Report: %v", err)
	}
	if err := b.Report(32, 128); err != nil {
		t.Fatalf("Report: %v", err)
	}
	b.Finish()

	if !strings.Contains(buf.String(), "32/128") {
		t.Errorf("bar output missing count, got %q", buf.String())
	}
}

func TestBarUnknownTotalSpins(t *testing.T) {
	var buf bytes.Buffer
	b := newBarTo(&buf)

	for i := 1; i <= 3; i++ {
		if err := b.Report(i*32, 0); err != nil {
			t.Fatalf("Report: %v", err)
		}
	}
	b.Finish()

	out := buf.String()
	if strings.Contains(out, "/0") {
		t.Errorf("unknown total rendered as fixed bar, got %q", out)
	}
	if !strings.Contains(out, "96") {
		t.Errorf("spinner output missing running count, got %q", out)
	}
}
