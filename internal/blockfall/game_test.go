package blockfall

import (
	"testing"

	platformcore "github.com/vovakirdan/tui-blockfall/internal/core"
)

func testConfig(seed int64) platformcore.RuntimeConfig {
	return platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func frame(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// driveToGameOver hammers hard drops until the stack tops out.
func driveToGameOver(t *testing.T, g *Game) int {
	t.Helper()
	for i := 0; i < 2000; i++ {
		res := g.Step(frame(platformcore.ActionHardDrop))
		if res.State.GameOver {
			return i
		}
	}
	t.Fatal("game never topped out")
	return 0
}

func TestGameHardDropScores(t *testing.T) {
	g := New()
	g.Reset(testConfig(5))

	g.Step(frame()) // spawn tick
	res := g.Step(frame(platformcore.ActionHardDrop))
	if res.State.GameOver {
		t.Fatal("game over after one piece")
	}
	if res.State.Score == 0 {
		t.Error("hard drop awarded no points")
	}
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testConfig(5))
	g.Step(frame())

	res := g.Step(frame(platformcore.ActionPause))
	if !res.State.Paused {
		t.Fatal("pause action ignored")
	}
	before := res.State.Score
	g.Step(frame(platformcore.ActionHardDrop))
	if g.State().Score != before {
		t.Error("paused game accepted play input")
	}

	res = g.Step(frame(platformcore.ActionPause))
	if res.State.Paused {
		t.Error("second pause action did not resume")
	}
}

func TestGameFinishedRecord(t *testing.T) {
	g := New()
	g.Reset(testConfig(9))
	driveToGameOver(t, g)

	rec := g.TakeRecord()
	if rec == nil {
		t.Fatal("no record after game over")
	}
	if rec.Seed != 9 {
		t.Errorf("record seed = %d, expected 9", rec.Seed)
	}
	if len(rec.Actions) == 0 {
		t.Error("record captured no inputs")
	}
	if rec.FinalScore != g.State().Score {
		t.Errorf("record score %d, state %d", rec.FinalScore, g.State().Score)
	}
	if g.TakeRecord() != nil {
		t.Error("record handed out twice")
	}
}

func TestGameRestartAfterGameOver(t *testing.T) {
	g := New()
	g.Reset(testConfig(9))
	driveToGameOver(t, g)

	res := g.Step(frame(platformcore.ActionRestart))
	if res.State.GameOver {
		t.Error("restart left the game in its terminal state")
	}
	if res.State.Score != 0 {
		t.Errorf("restart kept score %d", res.State.Score)
	}
}

func TestReplayReproducesLiveSession(t *testing.T) {
	live := New()
	live.Reset(testConfig(31))

	var final platformcore.GameState
	for i := 0; i < 4000; i++ {
		f := frame()
		if i%5 == 0 {
			f.Set(platformcore.ActionLeft)
		}
		if i%8 == 0 {
			f.Set(platformcore.ActionRotateCW)
		}
		if i%19 == 0 {
			f.Set(platformcore.ActionHardDrop)
		}
		res := live.Step(f)
		if res.State.GameOver {
			final = res.State
			break
		}
	}
	if !final.GameOver {
		t.Fatal("live session never ended")
	}
	rec := live.TakeRecord()
	if rec == nil {
		t.Fatal("no record from live session")
	}

	watch := NewReplay(*rec)
	watch.Reset(testConfig(0))
	if !watch.Watching() {
		t.Fatal("replay game does not report watching")
	}
	var replayed platformcore.GameState
	for i := 0; i < 8000; i++ {
		res := watch.Step(frame())
		if res.State.GameOver {
			replayed = res.State
			break
		}
	}
	if !replayed.GameOver {
		t.Fatal("replay never ended")
	}

	if replayed.Score != final.Score || replayed.Lines != final.Lines || replayed.Level != final.Level {
		t.Errorf("replayed %+v, live %+v", replayed, final)
	}
	if watch.PlaybackProgress() != 100 {
		t.Errorf("playback progress = %v", watch.PlaybackProgress())
	}
}

func TestReplaySpeedPreservesOutcome(t *testing.T) {
	live := New()
	live.Reset(testConfig(47))

	// Hard drops land slower than the level-1 gravity interval so
	// pieces fall and lock between inputs; timing mistakes in scaled
	// playback shift those locks and change the outcome.
	var final platformcore.GameState
	for i := 0; i < 20000; i++ {
		f := frame()
		if i%7 == 0 {
			f.Set(platformcore.ActionRight)
		}
		if i%11 == 0 {
			f.Set(platformcore.ActionRotateCCW)
		}
		if i%100 == 0 {
			f.Set(platformcore.ActionHardDrop)
		}
		res := live.Step(f)
		if res.State.GameOver {
			final = res.State
			break
		}
	}
	if !final.GameOver {
		t.Fatal("live session never ended")
	}
	rec := live.TakeRecord()
	if rec == nil {
		t.Fatal("no record from live session")
	}

	cases := []struct {
		name   string
		action platformcore.Action
		steps  int
	}{
		{"double speed", platformcore.ActionSpeedUp, 20000},
		{"half speed", platformcore.ActionSpeedDown, 50000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			watch := NewReplay(*rec)
			watch.Reset(testConfig(0))
			watch.Step(frame(tc.action))

			var replayed platformcore.GameState
			for i := 0; i < tc.steps; i++ {
				res := watch.Step(frame())
				if res.State.GameOver {
					replayed = res.State
					break
				}
			}
			if !replayed.GameOver {
				t.Fatal("replay never ended")
			}
			if replayed.Score != final.Score || replayed.Lines != final.Lines || replayed.Level != final.Level {
				t.Errorf("replayed %+v, live %+v", replayed, final)
			}
			if watch.PlaybackProgress() != 100 {
				t.Errorf("playback progress = %v", watch.PlaybackProgress())
			}
		})
	}
}
