package core

import "testing"

func TestProcessClearBaseValues(t *testing.T) {
	cases := []struct {
		name   string
		clear  LineClear
		action ClearAction
		points int
		label  string
	}{
		{"single", LineClear{Lines: 1}, ActionSingle, 100, "Single"},
		{"double", LineClear{Lines: 2}, ActionDouble, 300, "Double"},
		{"triple", LineClear{Lines: 3}, ActionTriple, 500, "Triple"},
		{"quad", LineClear{Lines: 4}, ActionQuad, 800, "Quad"},
		{"mini", LineClear{Spin: SpinMini}, ActionSpinMini, 100, "T-Spin Mini"},
		{"mini single", LineClear{Lines: 1, Spin: SpinMini}, ActionSpinMiniSingle, 200, "T-Spin Mini Single"},
		{"mini double", LineClear{Lines: 2, Spin: SpinMini}, ActionSpinMiniDouble, 400, "T-Spin Mini Double"},
		{"spin", LineClear{Spin: SpinFull}, ActionSpin, 400, "T-Spin"},
		{"spin single", LineClear{Lines: 1, Spin: SpinFull}, ActionSpinSingle, 800, "T-Spin Single"},
		{"spin double", LineClear{Lines: 2, Spin: SpinFull}, ActionSpinDouble, 1200, "T-Spin Double"},
		{"spin triple", LineClear{Lines: 3, Spin: SpinFull}, ActionSpinTriple, 1600, "T-Spin Triple"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScoreboard()
			out := s.ProcessClear(tc.clear)
			if out.Action != tc.action {
				t.Errorf("action = %v, expected %v", out.Action, tc.action)
			}
			if out.Points != tc.points {
				t.Errorf("points = %d, expected %d", out.Points, tc.points)
			}
			if out.Label != tc.label {
				t.Errorf("label = %q, expected %q", out.Label, tc.label)
			}
		})
	}
}

func TestProcessClearLevelMultiplier(t *testing.T) {
	s := NewScoreboard()
	s.Level = 5
	out := s.ProcessClear(LineClear{Lines: 2})
	if out.Points != 1500 {
		t.Errorf("double at level 5 = %d, expected 1500", out.Points)
	}
}

func TestBackToBackBonus(t *testing.T) {
	s := NewScoreboard()

	out := s.ProcessClear(LineClear{Lines: 4})
	if out.Points != 800 || s.BackToBack != true {
		t.Fatalf("first quad = %+v, b2b=%v", out, s.BackToBack)
	}

	// Second quad: 800 * 3/2 = 1200, plus the combo bonus 50*1*1.
	out = s.ProcessClear(LineClear{Lines: 4})
	if out.Points != 1250 {
		t.Errorf("back-to-back quad = %d, expected 1250", out.Points)
	}
	if out.Label != "Back-to-Back Quad" {
		t.Errorf("label = %q", out.Label)
	}
}

func TestBackToBackAppliesToSpinClears(t *testing.T) {
	s := NewScoreboard()
	s.BackToBack = true
	out := s.ProcessClear(LineClear{Lines: 1, Spin: SpinMini})
	if out.Points != 300 {
		t.Errorf("b2b mini single = %d, expected 300", out.Points)
	}
	if out.Label != "Back-to-Back T-Spin Mini Single" {
		t.Errorf("label = %q", out.Label)
	}
}

func TestBackToBackBrokenByPlainClear(t *testing.T) {
	s := NewScoreboard()
	s.ProcessClear(LineClear{Lines: 4})
	s.ProcessClear(LineClear{Lines: 1})
	if s.BackToBack {
		t.Error("a plain single should break the back-to-back chain")
	}
	out := s.ProcessClear(LineClear{Lines: 4})
	// No 1.5x: 800, plus combo 50*2.
	if out.Points != 900 {
		t.Errorf("quad after broken chain = %d, expected 900", out.Points)
	}
}

func TestZeroLineSpinLeavesChainsAlone(t *testing.T) {
	s := NewScoreboard()
	s.ProcessClear(LineClear{Lines: 4})
	combo := s.Combo

	out := s.ProcessClear(LineClear{Spin: SpinFull})
	if out.Points != 400 {
		t.Errorf("zero-line spin = %d, expected 400", out.Points)
	}
	if !s.BackToBack {
		t.Error("zero-line spin must not break back-to-back")
	}
	if s.Combo != combo {
		t.Error("zero-line spin must not advance or reset the combo")
	}
}

func TestComboAccumulates(t *testing.T) {
	s := NewScoreboard()

	out := s.ProcessClear(LineClear{Lines: 1})
	if out.Points != 100 || s.Combo != 0 {
		t.Fatalf("first clear points=%d combo=%d", out.Points, s.Combo)
	}
	out = s.ProcessClear(LineClear{Lines: 1})
	if out.Points != 150 || s.Combo != 1 {
		t.Fatalf("second clear points=%d combo=%d", out.Points, s.Combo)
	}
	out = s.ProcessClear(LineClear{Lines: 1})
	if out.Points != 200 || s.Combo != 2 {
		t.Fatalf("third clear points=%d combo=%d", out.Points, s.Combo)
	}

	s.ProcessClear(LineClear{})
	if s.Combo != NoCombo {
		t.Errorf("empty lock should reset combo, got %d", s.Combo)
	}
}

func TestEmptyLockScoresNothing(t *testing.T) {
	s := NewScoreboard()
	out := s.ProcessClear(LineClear{})
	if out.Action != ActionNothing || out.Points != 0 || out.Label != "" {
		t.Errorf("empty lock = %+v", out)
	}
	if s.Score != 0 {
		t.Errorf("score = %d after empty lock", s.Score)
	}
}

func TestLevelAdvancesEveryTenLines(t *testing.T) {
	s := NewScoreboard()
	for i := 0; i < 4; i++ {
		s.ProcessClear(LineClear{Lines: 2})
	}
	if s.Level != 1 {
		t.Fatalf("level = %d at 8 lines", s.Level)
	}
	s.ProcessClear(LineClear{Lines: 2})
	if s.Level != 2 || s.TotalLines != 10 {
		t.Errorf("level=%d lines=%d, expected 2/10", s.Level, s.TotalLines)
	}
	for i := 0; i < 5; i++ {
		s.ProcessClear(LineClear{Lines: 2})
	}
	if s.Level != 3 {
		t.Errorf("level = %d at 20 lines", s.Level)
	}
}

func TestLevelNeverDecreases(t *testing.T) {
	s := NewScoreboard()
	s.Level = 8
	s.ProcessClear(LineClear{Lines: 1})
	if s.Level != 8 {
		t.Errorf("level dropped to %d", s.Level)
	}
}

func TestDropBonuses(t *testing.T) {
	s := NewScoreboard()
	s.AddSoftDrop(3)
	s.AddHardDrop(5)
	s.AddSoftDrop(-1)
	s.AddHardDrop(0)
	if s.Score != 13 {
		t.Errorf("drop bonuses = %d, expected 13", s.Score)
	}
}

func TestFallInterval(t *testing.T) {
	s := NewScoreboard()
	if got := s.FallInterval(); got != 800 {
		t.Errorf("level 1 interval = %v", got)
	}
	s.Level = 10
	if got := s.FallInterval(); got != 100 {
		t.Errorf("level 10 interval = %v", got)
	}
	s.Level = 99
	if got := s.FallInterval(); got != 30 {
		t.Errorf("clamped interval = %v", got)
	}

	prev := 1e9
	for lvl := 1; lvl <= 25; lvl++ {
		s.Level = lvl
		iv := s.FallInterval()
		if iv > prev {
			t.Fatalf("interval rose from %v to %v at level %d", prev, iv, lvl)
		}
		prev = iv
	}
}
