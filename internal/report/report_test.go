package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gabe-silva/poker-analyzer/internal/app/trainer"
	"github.com/gabe-silva/poker-analyzer/internal/ev"
	"github.com/gabe-silva/poker-analyzer/internal/store"
)

func TestWriteActionTableMarksChosen(t *testing.T) {
	size := 22.0
	rows := []ev.ActionRow{
		{Action: "raise", SizeBB: &size, Intent: "value", Label: "raise 22.0bb (value)", Equity: 0.55, EVBB: 1.2},
		{Action: "call", Label: "call", Equity: 0.55, EVBB: 0.8},
		{Action: "fold", Label: "fold"},
	}
	var buf bytes.Buffer
	WriteActionTable(&buf, rows, "call")
	out := buf.String()
	if !strings.Contains(out, "raise 22.0bb (value)") {
		t.Fatalf("missing raise row:\n%s", out)
	}
	if !strings.Contains(out, ">") {
		t.Fatalf("chosen marker missing:\n%s", out)
	}
}

func TestWriteProgress(t *testing.T) {
	resp := &trainer.ProgressResponse{
		Dimension: "street",
		Buckets: []store.ProgressBucket{
			{Key: "flop", Attempts: 4, AvgEVLossBB: 0.35, LeakCount: 1, LeakRate: 0.25, TotalLossBB: 1.4},
		},
	}
	var buf bytes.Buffer
	WriteProgress(&buf, resp)
	out := buf.String()
	if !strings.Contains(out, "flop") || !strings.Contains(out, "25%") {
		t.Fatalf("progress table incomplete:\n%s", out)
	}
}

func TestWriteThresholds(t *testing.T) {
	var buf bytes.Buffer
	WriteThresholds(&buf)
	out := buf.String()
	for _, want := range []string{
		"PLAY STYLE CLASSIFICATION",
		"MDF QUICK REFERENCE",
		"VILLAIN ARCHETYPE CATALOGUE",
		"Major Leak",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("thresholds output missing %q", want)
		}
	}
}
