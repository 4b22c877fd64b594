package baseball

import "testing"

func TestForceAdvance(t *testing.T) {
	a, b, c, bat := player("a", 50), player("b", 50), player("c", 50), player("bat", 50)
	tests := []struct {
		name   string
		bases  BaseState
		want   BaseSnapshot
		scorer string
	}{
		{"empty", BaseState{}, BaseSnapshot{"bat", "", ""}, ""},
		{"runner on second holds", BaseState{nil, b, nil}, BaseSnapshot{"bat", "b", ""}, ""},
		{"first and third", BaseState{a, nil, c}, BaseSnapshot{"bat", "a", "c"}, ""},
		{"loaded", BaseState{a, b, c}, BaseSnapshot{"bat", "a", "b"}, "c"},
	}
	for _, tt := range tests {
		bases := tt.bases
		scored := bases.ForceAdvance(bat)
		if got := bases.Snapshot(); got != tt.want {
			t.Fatalf("%s: bases = %v, want %v", tt.name, got, tt.want)
		}
		id := ""
		if scored != nil {
			id = scored.ID
		}
		if id != tt.scorer {
			t.Fatalf("%s: scorer = %q, want %q", tt.name, id, tt.scorer)
		}
	}
}

func TestBaseState_ValidateRejectsDuplicates(t *testing.T) {
	a := player("a", 50)
	if err := (BaseState{a, nil, a}).Validate(); err == nil {
		t.Fatalf("expected error for a runner on two bases")
	}
}

func TestOrigins_Check(t *testing.T) {
	a, b := player("a", 50), player("b", 50)
	bases := BaseState{a, b, nil}
	o := originsFor(bases, "sp")
	if err := o.Check(bases); err != nil {
		t.Fatalf("Check: %v", err)
	}
	delete(o, "b")
	if err := o.Check(bases); err == nil {
		t.Fatalf("expected error for a runner without origin")
	}
	o["b"] = RunnerOrigin{ReachedVia: ViaWalk, ResponsiblePitcherID: "sp"}
	o["ghost"] = RunnerOrigin{ReachedVia: ViaWalk, ResponsiblePitcherID: "sp"}
	if err := o.Check(bases); err == nil {
		t.Fatalf("expected error for an origin without runner")
	}
}

func TestOrigins_Charge(t *testing.T) {
	r := player("r", 50)
	o := Origins{"r": {ReachedVia: ViaWalk, ResponsiblePitcherID: "starter"}}

	sr := o.Charge(r, "reliever", false)
	if sr.ResponsiblePitcherID != "starter" || !sr.Earned {
		t.Fatalf("inherited runner charged %+v", sr)
	}
	if sr := o.Charge(r, "reliever", true); sr.Earned {
		t.Fatalf("run on an error play counted earned")
	}
	o["r"] = RunnerOrigin{ReachedVia: ViaError, ResponsiblePitcherID: "starter"}
	if sr := o.Charge(r, "reliever", false); sr.Earned {
		t.Fatalf("runner who reached on error scored an earned run")
	}
	if sr := (Origins{}).Charge(r, "reliever", false); sr.ResponsiblePitcherID != "reliever" {
		t.Fatalf("batter scoring charged to %q", sr.ResponsiblePitcherID)
	}
}
