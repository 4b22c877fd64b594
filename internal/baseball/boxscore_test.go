package baseball

import "testing"

func hdr(pitcher string, outsBefore, outsAfter int, before, after BaseSnapshot) EventHeader {
	return EventHeader{Inning: 1, PitcherID: pitcher, OutsBefore: outsBefore, OutsAfter: outsAfter, BasesBefore: before, BasesAfter: after}
}

// A single, caught stealing, a walk, a pitching change with one on, a
// two-run homer off the reliever, then two strikeouts.
func inheritedRunnerHalf() HalfInningResult {
	var empty BaseSnapshot
	onFirst := func(id string) BaseSnapshot { return BaseSnapshot{id, "", ""} }
	return HalfInningResult{
		Inning: 1, BattingTeamID: "away", FieldingTeamID: "home",
		Runs: 2, Hits: 2, Outs: 3,
		Events: []Event{
			&AtBatEvent{EventHeader: hdr("sp", 0, 0, empty, onFirst("b1")),
				Result: AtBatResult{Outcome: OutcomeSingle, BatterID: "b1", PitcherID: "sp", Hit: true, Pitches: 4}},
			&CaughtStealingEvent{EventHeader: hdr("sp", 0, 1, onFirst("b1"), empty),
				RunnerID: "b1", From: First, To: Second, CatcherID: "c"},
			&AtBatEvent{EventHeader: hdr("sp", 1, 1, empty, onFirst("b2")),
				Result: AtBatResult{Outcome: OutcomeWalk, BatterID: "b2", PitcherID: "sp", Pitches: 6}},
			&PitcherChangeEvent{EventHeader: hdr("sp", 1, 1, onFirst("b2"), onFirst("b2")),
				TeamID: "home", OutgoingID: "sp", IncomingID: "rp", InheritedRunners: 1},
			&AtBatEvent{EventHeader: hdr("rp", 1, 1, onFirst("b2"), empty),
				Result: AtBatResult{Outcome: OutcomeHomeRun, BatterID: "b3", PitcherID: "rp", Hit: true, RBI: 2, Pitches: 3,
					Scorers: []ScoredRun{
						{RunnerID: "b2", ResponsiblePitcherID: "sp", Earned: true},
						{RunnerID: "b3", ResponsiblePitcherID: "rp", Earned: true},
					}}},
			&AtBatEvent{EventHeader: hdr("rp", 1, 2, empty, empty),
				Result: AtBatResult{Outcome: OutcomeStrikeout, BatterID: "b4", PitcherID: "rp", OutsRecorded: 1, Pitches: 5}},
			&AtBatEvent{EventHeader: hdr("rp", 2, 3, empty, empty),
				Result: AtBatResult{Outcome: OutcomeStrikeout, BatterID: "b5", PitcherID: "rp", OutsRecorded: 1, Pitches: 4}},
		},
	}
}

func TestBuildBoxScore_InheritedRunner(t *testing.T) {
	box := BuildBoxScore([]HalfInningResult{inheritedRunnerHalf()})

	sp, ok := box.Pitcher("sp")
	if !ok {
		t.Fatalf("no line for the starter")
	}
	if sp.Outs != 1 || sp.IP != "0.1" || sp.R != 1 || sp.ER != 1 || sp.BF != 2 || sp.BB != 1 || sp.H != 1 || sp.Pitches != 10 {
		t.Fatalf("starter line %+v", sp)
	}
	rp, _ := box.Pitcher("rp")
	if rp.Outs != 2 || rp.IP != "0.2" || rp.R != 1 || rp.HR != 1 || rp.SO != 2 {
		t.Fatalf("reliever line %+v", rp)
	}
	if rp.InheritedRunners != 1 || rp.InheritedScored != 1 {
		t.Fatalf("reliever inherited %d, let %d score", rp.InheritedRunners, rp.InheritedScored)
	}

	b1, _ := box.Batter("b1")
	if b1.H != 1 || b1.CS != 1 || b1.AB != 1 {
		t.Fatalf("b1 line %+v", b1)
	}
	b2, _ := box.Batter("b2")
	if b2.AB != 0 || b2.PA != 1 || b2.BB != 1 || b2.R != 1 {
		t.Fatalf("b2 line %+v", b2)
	}
	b3, _ := box.Batter("b3")
	if b3.HR != 1 || b3.RBI != 2 || b3.R != 1 {
		t.Fatalf("b3 line %+v", b3)
	}
	if len(box.Catching) != 1 || box.Catching[0].CS != 1 || box.Catching[0].TeamID != "home" {
		t.Fatalf("catching %+v", box.Catching)
	}
	if tt, _ := box.Team("away"); tt.R != 2 || tt.H != 2 || tt.LOB != 0 {
		t.Fatalf("away totals %+v", tt)
	}
}

func TestBuildBoxScore_PassedBallRunIsUnearned(t *testing.T) {
	h := HalfInningResult{
		Inning: 3, BattingTeamID: "away", FieldingTeamID: "home", Runs: 1,
		Events: []Event{
			&PassedBallEvent{
				EventHeader: hdr("sp", 2, 2, BaseSnapshot{"", "", "r"}, BaseSnapshot{}),
				CatcherID:   "c",
				Advances:    []Advance{{RunnerID: "r", From: Third, To: Home}},
				Scorers:     []ScoredRun{{RunnerID: "r", ResponsiblePitcherID: "sp"}},
			},
			&WildPitchEvent{
				EventHeader: hdr("sp", 2, 2, BaseSnapshot{}, BaseSnapshot{}),
			},
		},
	}
	box := BuildBoxScore([]HalfInningResult{h})
	sp, _ := box.Pitcher("sp")
	if sp.R != 1 || sp.ER != 0 || sp.WP != 1 {
		t.Fatalf("pitcher line %+v", sp)
	}
	if box.Catching[0].PB != 1 {
		t.Fatalf("catcher line %+v", box.Catching[0])
	}
}

func TestBuildBoxScore_ErrorsAndIntentionalWalks(t *testing.T) {
	var empty BaseSnapshot
	h := HalfInningResult{
		BattingTeamID: "away", FieldingTeamID: "home", LeftOnBase: 2,
		Events: []Event{
			&IntentionalWalkEvent{EventHeader: hdr("sp", 0, 0, empty, BaseSnapshot{"b1", "", ""}), BatterID: "b1"},
			&AtBatEvent{EventHeader: hdr("sp", 0, 0, BaseSnapshot{"b1", "", ""}, BaseSnapshot{"b2", "b1", ""}),
				Result: AtBatResult{Outcome: OutcomeReachedOnError, BatterID: "b2", PitcherID: "sp", Error: true, ErrorFielderID: "ss"}},
		},
	}
	box := BuildBoxScore([]HalfInningResult{h})
	b1, _ := box.Batter("b1")
	if b1.BB != 1 || b1.IBB != 1 || b1.AB != 0 {
		t.Fatalf("b1 line %+v", b1)
	}
	b2, _ := box.Batter("b2")
	if b2.ROE != 1 || b2.AB != 1 || b2.H != 0 {
		t.Fatalf("b2 line %+v", b2)
	}
	if box.Errors["ss"] != 1 {
		t.Fatalf("errors %v", box.Errors)
	}
	if tt, _ := box.Team("home"); tt.E != 1 {
		t.Fatalf("home totals %+v", tt)
	}
	if tt, _ := box.Team("away"); tt.LOB != 2 {
		t.Fatalf("away totals %+v", tt)
	}
}

func TestInningsPitched(t *testing.T) {
	for outs, want := range map[int]string{0: "0.0", 2: "0.2", 3: "1.0", 19: "6.1", 27: "9.0"} {
		if got := InningsPitched(outs); got != want {
			t.Fatalf("InningsPitched(%d) = %s, want %s", outs, got, want)
		}
	}
}
