package live

import (
	"fmt"
	"testing"
)

func testMatch(seed int64) *Match {
	return NewMatch("live_test", MatchConfig{Seed: seed})
}

func TestNewMatchDealsFirstHand(t *testing.T) {
	m := testMatch(11)
	if m.Current == nil {
		t.Fatal("no hand dealt")
	}
	h := m.Current
	if h.HandNo != 1 {
		t.Fatalf("hand no = %d, want 1", h.HandNo)
	}
	if h.HeroPosition != "BTN" {
		t.Fatalf("first hand hero position = %q, want BTN", h.HeroPosition)
	}
	if len(h.HeroHand) != 2 {
		t.Fatalf("hero hand has %d cards", len(h.HeroHand))
	}
	if h.HandOver {
		return
	}
	if len(h.LegalActions) == 0 {
		t.Fatal("open hand has no legal actions")
	}
}

func TestButtonAlternates(t *testing.T) {
	m := testMatch(7)
	first := m.Current.HeroPosition
	m.forceFold(t)
	m.StartNextHand()
	if m.Current.HeroPosition == first {
		t.Fatalf("button did not alternate, still %q", first)
	}
}

// forceFold finishes the current hand so the next can start.
func (m *Match) forceFold(t *testing.T) {
	t.Helper()
	h := m.Current
	if h.HandOver {
		return
	}
	if containsString(h.LegalActions, "fold") {
		if err := m.HeroAction("fold", nil, ""); err != nil {
			t.Fatalf("fold: %v", err)
		}
		return
	}
	if err := m.HeroAction("check", nil, ""); err == nil {
		m.forceFold(t)
	}
}

func TestIllegalActionRejected(t *testing.T) {
	m := testMatch(3)
	h := m.Current
	var illegal string
	if containsString(h.LegalActions, "check") {
		illegal = "call"
	} else {
		illegal = "check"
	}
	if err := m.HeroAction(illegal, nil, ""); err == nil {
		t.Fatalf("expected rejection for %q in context %q", illegal, h.ActionContext)
	}
}

func TestBetRequiresSize(t *testing.T) {
	// walk hands until hero can bet or raise
	m := testMatch(5)
	for i := 0; i < 20; i++ {
		h := m.Current
		if !h.HandOver && (containsString(h.LegalActions, "bet") || containsString(h.LegalActions, "raise")) {
			action := "bet"
			if !containsString(h.LegalActions, "bet") {
				action = "raise"
			}
			if err := m.HeroAction(action, nil, ""); err != ErrSizeRequired {
				t.Fatalf("err = %v, want ErrSizeRequired", err)
			}
			return
		}
		m.forceFold(t)
		m.StartNextHand()
	}
	t.Fatal("never reached an aggressive option")
}

func TestFoldEndsHandAndTracksNet(t *testing.T) {
	m := testMatch(21)
	for i := 0; i < 10; i++ {
		h := m.Current
		if !h.HandOver && containsString(h.LegalActions, "fold") {
			invested := m.StartStackBB - h.HeroRemaining
			if err := m.HeroAction("fold", nil, ""); err != nil {
				t.Fatalf("fold: %v", err)
			}
			if !h.HandOver {
				t.Fatal("hand should be over after hero fold")
			}
			if h.Showdown == nil || h.Showdown.Winner != "villain" {
				t.Fatalf("expected villain win, got %+v", h.Showdown)
			}
			if h.HeroDeltaBB != -invested {
				t.Fatalf("hero delta = %v, want %v", h.HeroDeltaBB, -invested)
			}
			return
		}
		if !h.HandOver {
			m.forceFold(t)
		}
		m.StartNextHand()
	}
	t.Fatal("never faced a foldable spot")
}

func TestHandsResolveEventually(t *testing.T) {
	// call/check every decision; each hand must terminate
	m := testMatch(99)
	for hand := 0; hand < 5; hand++ {
		for step := 0; step < 40; step++ {
			h := m.Current
			if h.HandOver {
				break
			}
			var err error
			switch {
			case containsString(h.LegalActions, "check"):
				err = m.HeroAction("check", nil, "")
			case containsString(h.LegalActions, "call"):
				err = m.HeroAction("call", nil, "")
			default:
				err = m.HeroAction("fold", nil, "")
			}
			if err != nil {
				t.Fatalf("hand %d step %d: %v", hand, step, err)
			}
		}
		if !m.Current.HandOver {
			t.Fatalf("hand %d did not terminate", hand)
		}
		if m.Current.Showdown == nil {
			t.Fatalf("finished hand %d has no result", hand)
		}
		m.StartNextHand()
	}
}

func TestSameSeedSameScript(t *testing.T) {
	run := func() []string {
		m := testMatch(1234)
		for step := 0; step < 40; step++ {
			h := m.Current
			if h.HandOver {
				break
			}
			var err error
			switch {
			case containsString(h.LegalActions, "check"):
				err = m.HeroAction("check", nil, "")
			case containsString(h.LegalActions, "call"):
				err = m.HeroAction("call", nil, "")
			default:
				err = m.HeroAction("fold", nil, "")
			}
			if err != nil {
				return nil
			}
		}
		return m.Current.ActionHistory
	}
	a, b := run(), run()
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("histories differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("histories diverge at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestProfileDefaults(t *testing.T) {
	p := ParseProfile(nil)
	if p.Name != "Villain" || p.StyleLabel != "Unknown" {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if p.VPIP != 0.32 || p.AF != 2.2 {
		t.Fatalf("default rates wrong: vpip=%v af=%v", p.VPIP, p.AF)
	}
}

func TestProfilePercentNormalization(t *testing.T) {
	vpip := 45.0
	p := ParseProfile(&ProfileInput{VPIP: &vpip})
	if p.VPIP != 0.45 {
		t.Fatalf("vpip = %v, want 0.45", p.VPIP)
	}
}

func TestRegistrySerializesAndStores(t *testing.T) {
	counter := 0
	reg := NewRegistry(func() string {
		counter++
		return fmt.Sprintf("live_%04d", counter)
	})
	st := reg.Create(MatchConfig{Seed: 17})
	if st.SessionID != "live_0001" {
		t.Fatalf("session id = %q", st.SessionID)
	}

	got, err := reg.Get(st.SessionID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.HandsPlayed != 1 {
		t.Fatalf("hands played = %d, want 1", got.HandsPlayed)
	}

	if _, err := reg.Get("live_missing"); err != ErrUnknownSession {
		t.Fatalf("err = %v, want ErrUnknownSession", err)
	}
}

func TestRegistryWithMutates(t *testing.T) {
	reg := NewRegistry(func() string { return "live_x" })
	st := reg.Create(MatchConfig{Seed: 8})

	next, err := reg.With(st.SessionID, func(m *Match) error {
		if !m.Current.HandOver {
			return m.HeroAction(m.Current.LegalActions[0], firstSize(m.Current), "")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	if next.SessionID != st.SessionID {
		t.Fatalf("snapshot id changed: %q", next.SessionID)
	}
}

func firstSize(h *Hand) *float64 {
	if len(h.SizeOptionsBB) == 0 {
		return nil
	}
	v := h.SizeOptionsBB[0]
	return &v
}
