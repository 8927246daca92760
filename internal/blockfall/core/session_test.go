package core

import "testing"

func TestSessionSpawn(t *testing.T) {
	s := NewSession(7)
	res := s.Tick(16)
	if !res.Spawned || res.GameOver {
		t.Fatalf("first tick = %+v, expected a spawn", res)
	}
	p := s.Active()
	if p == nil {
		t.Fatal("no active piece after spawn")
	}
	if p.X != SpawnX || p.Y != SpawnY {
		t.Errorf("spawn position = (%d,%d), expected (%d,%d)", p.X, p.Y, SpawnX, SpawnY)
	}
	for _, c := range p.Cells() {
		if c.Y >= BufferRows {
			t.Errorf("spawn cell %v is below the hidden band", c)
		}
	}
}

func TestSessionGravity(t *testing.T) {
	s := NewSession(7)
	s.Tick(16)
	y := s.Active().Y

	s.Tick(799)
	if s.Active().Y != y {
		t.Fatal("piece descended before the gravity interval elapsed")
	}
	s.Tick(1)
	if s.Active().Y != y+1 {
		t.Errorf("piece at y=%d after 800ms, expected %d", s.Active().Y, y+1)
	}
}

func TestSessionSoftDropResetsGravityTimer(t *testing.T) {
	s := NewSession(7)
	s.Tick(16)
	s.Tick(799) // gravity timer nearly full

	y := s.Active().Y
	if !s.Apply(InputSoftDrop) {
		t.Fatal("soft drop rejected in open space")
	}
	if s.Active().Y != y+1 {
		t.Fatalf("soft drop left piece at y=%d", s.Active().Y)
	}
	if s.Scores().Score != 1 {
		t.Errorf("soft drop score = %d, expected 1", s.Scores().Score)
	}

	s.Tick(799)
	if s.Active().Y != y+1 {
		t.Error("gravity fired early; soft drop should restart its timer")
	}
}

func TestSessionShift(t *testing.T) {
	s := NewSession(7)
	s.Tick(16)
	x := s.Active().X

	if !s.Apply(InputLeft) {
		t.Fatal("left shift rejected in open space")
	}
	if s.Active().X != x-1 {
		t.Errorf("x = %d after left, expected %d", s.Active().X, x-1)
	}
	if !s.Apply(InputRight) || !s.Apply(InputRight) {
		t.Fatal("right shifts rejected")
	}
	if s.Active().X != x+1 {
		t.Errorf("x = %d after two rights, expected %d", s.Active().X, x+1)
	}

	// Walk into the wall until it rejects; position must stop changing.
	for i := 0; i < Width; i++ {
		s.Apply(InputLeft)
	}
	left := s.Active().X
	if s.Apply(InputLeft) {
		t.Error("shift into the wall reported success")
	}
	if s.Active().X != left {
		t.Error("rejected shift moved the piece")
	}
}

func TestSessionHardDrop(t *testing.T) {
	s := NewSession(7)
	s.Tick(16)

	target := s.Grid().DropTarget(s.Active())
	dy := target.Y - s.Active().Y

	if !s.Apply(InputHardDrop) {
		t.Fatal("hard drop rejected")
	}
	res := s.Tick(16)
	if !res.Locked || !res.Spawned {
		t.Fatalf("tick after hard drop = %+v, expected lock and respawn", res)
	}
	if s.Scores().Score != 2*dy {
		t.Errorf("score = %d, expected %d", s.Scores().Score, 2*dy)
	}

	filled := 0
	for y := 0; y < TotalRows; y++ {
		for x := 0; x < Width; x++ {
			if cell, _ := s.Grid().CellAt(x, y); cell.Filled {
				filled++
			}
		}
	}
	if filled != 4 {
		t.Errorf("%d filled cells after one lock, expected 4", filled)
	}
}

func TestSessionLockDelay(t *testing.T) {
	s := NewSession(7)
	s.Tick(16)
	// Drop the piece onto the floor without locking it.
	s.active.SetPosition(s.active.X, s.grid.DropTarget(s.active).Y)

	if res := s.Tick(400); res.Locked {
		t.Fatal("locked before the delay elapsed")
	}
	// A successful shift while grounded restores the full delay.
	moved := s.Apply(InputLeft) || s.Apply(InputRight)
	if !moved {
		t.Fatal("no sideways room on an empty floor")
	}
	if res := s.Tick(499); res.Locked {
		t.Fatal("lock delay was not reset by the grounded shift")
	}
	res := s.Tick(2)
	if !res.Locked {
		t.Fatal("piece never locked after the delay ran out")
	}
	if !res.Spawned {
		t.Error("lock should spawn the next piece")
	}
}

func TestSessionHold(t *testing.T) {
	s := NewSession(42)
	upcoming := s.Bag().Peek(3)
	s.Tick(16)

	if _, ok := s.Held(); ok {
		t.Fatal("fresh session reports a held piece")
	}
	if !s.Apply(InputHold) {
		t.Fatal("first hold rejected")
	}
	held, ok := s.Held()
	if !ok || held != upcoming[0] {
		t.Errorf("held = %v/%v, expected %v", held, ok, upcoming[0])
	}
	if s.Active().Kind != upcoming[1] {
		t.Errorf("active after hold = %v, expected %v", s.Active().Kind, upcoming[1])
	}
	if s.Apply(InputHold) {
		t.Error("second hold in the same spawn should be rejected")
	}

	// Locking re-arms hold; the next hold swaps with the banked kind.
	s.Apply(InputHardDrop)
	s.Tick(16)
	if s.Active().Kind != upcoming[2] {
		t.Fatalf("active after lock = %v, expected %v", s.Active().Kind, upcoming[2])
	}
	if !s.Apply(InputHold) {
		t.Fatal("hold not re-armed after lock")
	}
	if s.Active().Kind != upcoming[0] {
		t.Errorf("swap returned %v, expected banked %v", s.Active().Kind, upcoming[0])
	}
	held, _ = s.Held()
	if held != upcoming[2] {
		t.Errorf("held after swap = %v, expected %v", held, upcoming[2])
	}
}

func TestSessionBlockOut(t *testing.T) {
	s := NewSession(7)
	// Fill the spawn rows so no kind can materialize.
	for y := SpawnY; y < BufferRows; y++ {
		for x := 0; x < Width; x++ {
			s.grid.SetCell(x, y, true, "gray")
		}
	}
	res := s.Tick(16)
	if !res.GameOver || !s.Over() {
		t.Fatalf("blocked spawn = %+v, over=%v", res, s.Over())
	}
	if s.Active() != nil {
		t.Error("terminal session still has an active piece")
	}
	if s.Apply(InputLeft) {
		t.Error("terminal session accepted input")
	}
	if res := s.Tick(16); !res.GameOver {
		t.Error("ticks after game over must keep reporting it")
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() *Session {
		s := NewSession(99)
		for n := 0; n < 2000 && !s.Over(); n++ {
			if n%7 == 0 {
				s.Apply(InputLeft)
			}
			if n%13 == 0 {
				s.Apply(InputRotateCW)
			}
			if n%11 == 0 {
				s.Apply(InputSoftDrop)
			}
			if n%31 == 0 {
				s.Apply(InputHardDrop)
			}
			s.Tick(16.6667)
		}
		return s
	}

	a, b := run(), run()
	if a.Seed() != b.Seed() {
		t.Fatal("seeds diverged")
	}
	if !a.Grid().Equal(b.Grid()) {
		t.Error("grids diverged under identical seed and script")
	}
	if *a.Scores() != *b.Scores() {
		t.Errorf("scoreboards diverged: %+v vs %+v", a.Scores(), b.Scores())
	}
}

func TestSessionSpinClear(t *testing.T) {
	s := NewSession(3)
	s.Tick(16)

	// Build a pocket only the final kick trial can reach, with the
	// bottom row one cell short.
	s.grid.SetCell(7, 19, true, "gray")
	s.grid.SetCell(8, 21, true, "gray")
	for x := 0; x < Width; x++ {
		if x != 7 {
			s.grid.SetCell(x, TotalRows-1, true, "gray")
		}
	}
	s.active = NewPiece(KindT, 7, 19)

	if !s.Apply(InputRotateCW) {
		t.Fatal("rotation into the pocket failed")
	}
	if s.active.X != 6 || s.active.Y != 21 || s.active.Rot != 1 {
		t.Fatalf("piece after kick = %+v", s.active)
	}

	s.Apply(InputHardDrop)
	res := s.Tick(16)
	if !res.Locked || res.Cleared != 1 {
		t.Fatalf("lock result = %+v", res)
	}
	if res.Spin != SpinMini {
		t.Errorf("spin = %v, expected SpinMini for a final-trial kick", res.Spin)
	}
	if res.Points != 200 {
		t.Errorf("points = %d, expected 200", res.Points)
	}
	if res.Label != "T-Spin Mini Single" {
		t.Errorf("label = %q", res.Label)
	}
	if s.Scores().Combo != 0 {
		t.Errorf("combo = %d, expected 0 after the first clear", s.Scores().Combo)
	}
}
