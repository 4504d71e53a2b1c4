package archetype

import "testing"

func TestLoosePassiveVectorMatchesCallingStation(t *testing.T) {
	got := Match(Observation{VPIP: 0.55, PFR: 0.08, AF: 0.9})
	if got.Key != "calling_station" {
		t.Fatalf("expected calling_station, got %s", got.Key)
	}
}

func TestExactVectorsMatchThemselves(t *testing.T) {
	for _, a := range Catalogue {
		got := Match(Observation{VPIP: a.VPIP, PFR: a.PFR, AF: a.AF})
		if got.Key != a.Key {
			t.Fatalf("archetype %s did not match its own vector, got %s", a.Key, got.Key)
		}
	}
}

func TestGapClampedNonNegative(t *testing.T) {
	o := Observation{VPIP: 0.10, PFR: 0.18, AF: 2.0}
	if o.Gap() != 0 {
		t.Fatalf("gap must be clamped at zero, got %f", o.Gap())
	}
}

func TestLabelEvidenceDiscountsDistance(t *testing.T) {
	o := Observation{VPIP: 0.40, PFR: 0.12, AF: 1.3}
	plain := Rank(o)
	labeled := Rank(Observation{VPIP: 0.40, PFR: 0.12, AF: 1.3, StyleLabel: "Loose-Passive (Calling Station)"})

	var plainD, labeledD float64
	for _, s := range plain {
		if s.Archetype.Key == "calling_station" {
			plainD = s.Distance
		}
	}
	for _, s := range labeled {
		if s.Archetype.Key == "calling_station" {
			labeledD = s.Distance
		}
	}
	if labeledD >= plainD {
		t.Fatalf("label evidence should discount the distance: %f >= %f", labeledD, plainD)
	}
}

func TestRankCoversCatalogue(t *testing.T) {
	scores := Rank(Observation{VPIP: 0.25, PFR: 0.18, AF: 2.0})
	if len(scores) != len(Catalogue) {
		t.Fatalf("expected %d scores, got %d", len(Catalogue), len(scores))
	}
	for i := 1; i < len(scores); i++ {
		if scores[i].Distance < scores[i-1].Distance {
			t.Fatalf("scores not sorted ascending at %d", i)
		}
	}
}

func TestByKey(t *testing.T) {
	if _, ok := ByKey("tag_reg"); !ok {
		t.Fatalf("tag_reg should exist")
	}
	if _, ok := ByKey("unknown_key"); ok {
		t.Fatalf("unknown key should not resolve")
	}
}
