package baseball

import (
	"fmt"
	"math/rand"
	"strings"

	"sportsim/internal/prob"
)

type Outcome string

const (
	OutcomeStrikeout       Outcome = "strikeout"
	OutcomeWalk            Outcome = "walk"
	OutcomeHitByPitch      Outcome = "hit_by_pitch"
	OutcomeIntentionalWalk Outcome = "intentional_walk"
	OutcomeSingle          Outcome = "single"
	OutcomeDouble          Outcome = "double"
	OutcomeTriple          Outcome = "triple"
	OutcomeHomeRun         Outcome = "home_run"
	OutcomeGroundout       Outcome = "groundout"
	OutcomeFlyout          Outcome = "flyout"
	OutcomeLineout         Outcome = "lineout"
	OutcomePopup           Outcome = "popup"
	OutcomeDoublePlay      Outcome = "double_play"
	OutcomeTriplePlay      Outcome = "triple_play"
	OutcomeFieldersChoice  Outcome = "fielders_choice"
	OutcomeSacrificeFly    Outcome = "sacrifice_fly"
	OutcomeReachedOnError  Outcome = "reached_on_error"
)

// IsHit reports the four hit outcomes.
func (o Outcome) IsHit() bool {
	switch o {
	case OutcomeSingle, OutcomeDouble, OutcomeTriple, OutcomeHomeRun:
		return true
	}
	return false
}

// IsAtBat reports whether the plate appearance counts as an official at-bat.
func (o Outcome) IsAtBat() bool {
	switch o {
	case OutcomeWalk, OutcomeHitByPitch, OutcomeIntentionalWalk, OutcomeSacrificeFly:
		return false
	}
	return true
}

const (
	BaseStrikeoutRate = 0.22
	BaseWalkRate      = 0.08
	BaseBABIP         = 0.30
	PlatoonEdge       = 4.0

	SingleScoreFromSecond = 0.60
	SingleFirstToThird    = 0.25
	DoubleScoreFromFirst  = 0.90
	DoublePlayRate        = 0.45
	TriplePlayRate        = 0.02
	ThrowHomeRate         = 0.50
	GroundoutAdvanceRate  = 0.50
	TagFromThirdRate      = 0.55
	TagFromSecondRate     = 0.35
	FailedTagUpRate       = 0.02
	LineoutDoubleOffRate  = 0.05
	MinSinglesShare       = 0.30
	MaxHomeRunShare       = 0.40
)

// Out types of a ball in play that did not fall for a hit, with their weights.
var (
	outTypes       = []Outcome{OutcomeGroundout, OutcomeFlyout, OutcomeLineout, OutcomePopup}
	outTypeWeights = []float64{0.45, 0.30, 0.15, 0.10}
)

// AtBatInput is everything the resolver reads. Nothing in it is modified.
type AtBatInput struct {
	Batter      *Player
	Pitcher     *Player
	Defense     Defense
	Ratings     DefenseRatings
	Bases       BaseState
	Origins     Origins
	Inning      int
	Outs        int
	ScoreDiff   int // batting team minus fielding team
	Batting     BattingStrategy
	Degradation float64
	Diagnostics bool
}

// AtBatResult is produced once per plate appearance. Every branch of the
// resolver fills the same fields.
type AtBatResult struct {
	Outcome        Outcome      `json:"outcome"`
	BatterID       string       `json:"batter_id"`
	PitcherID      string       `json:"pitcher_id"`
	Hit            bool         `json:"hit"`
	Runs           int          `json:"runs"`
	EarnedRuns     int          `json:"earned_runs"`
	RBI            int          `json:"rbi"`
	Scorers        []ScoredRun  `json:"scorers,omitempty"`
	OutsRecorded   int          `json:"outs_recorded"`
	RunnersOut     []string     `json:"runners_out,omitempty"`
	BatterReached  ReachedVia   `json:"batter_reached,omitempty"`
	BasesBefore    BaseSnapshot `json:"bases_before"`
	BasesAfter     BaseSnapshot `json:"bases_after"`
	Bases          BaseState    `json:"-"`
	Error          bool         `json:"error,omitempty"`
	ErrorFielderID string       `json:"error_fielder_id,omitempty"`
	GIDP           bool         `json:"gidp,omitempty"`
	SacFly         bool         `json:"sac_fly,omitempty"`
	Pitches        int          `json:"pitches"`
	Text           string       `json:"text"`
	Diagnostics    *Diagnostics `json:"diagnostics,omitempty"`
}

// Diagnostics records the composites and probabilities behind one at-bat.
type Diagnostics struct {
	Batter      BattingComposites  `json:"batter"`
	Pitcher     PitchingComposites `json:"pitcher"`
	Defense     DefenseRatings     `json:"defense"`
	Degradation float64            `json:"degradation"`
	Platoon     float64            `json:"platoon"`
	Strikeout   float64            `json:"p_strikeout"`
	Walk        float64            `json:"p_walk"`
	HitByPitch  float64            `json:"p_hit_by_pitch"`
	BallInPlay  float64            `json:"p_hit,omitempty"`
	HitTypes    [4]float64         `json:"hit_types,omitempty"`
	Decisions   []string           `json:"decisions,omitempty"`
}

// play accumulates one at-bat so each branch records runs, outs and
// advancement the same way.
type play struct {
	in     AtBatInput
	bases  BaseState
	res    AtBatResult
	diag   *Diagnostics
	runner BaserunningStyle
	notes  []string
}

func newPlay(in AtBatInput) *play {
	pl := &play{
		in:     in,
		bases:  in.Bases,
		runner: in.Batting.Baserunning,
		res: AtBatResult{
			BatterID:    in.Batter.ID,
			PitcherID:   in.Pitcher.ID,
			BasesBefore: in.Bases.Snapshot(),
		},
	}
	if in.Diagnostics {
		pl.diag = &Diagnostics{Defense: in.Ratings, Degradation: in.Degradation}
	}
	return pl
}

func (pl *play) outs() int  { return pl.in.Outs + pl.res.OutsRecorded }
func (pl *play) over() bool { return pl.outs() >= 3 }

// score sends runner home. Nothing scores once the third out is made.
func (pl *play) score(runner *Player, rbi bool) {
	if runner == nil || pl.over() {
		return
	}
	sr := pl.in.Origins.Charge(runner, pl.in.Pitcher.ID, pl.res.Error)
	pl.res.Scorers = append(pl.res.Scorers, sr)
	if rbi {
		pl.res.RBI++
	}
	pl.notes = append(pl.notes, runner.DisplayName()+" scores")
}

func (pl *play) out(runner *Player) {
	pl.res.OutsRecorded++
	if runner != nil && runner.ID != pl.in.Batter.ID {
		pl.res.RunnersOut = append(pl.res.RunnersOut, runner.ID)
	}
}

func (pl *play) note(format string, args ...any) {
	if pl.diag != nil {
		pl.diag.Decisions = append(pl.diag.Decisions, fmt.Sprintf(format, args...))
	}
}

// extraBase rolls the runner's speed against a defender, nudged by the
// baserunning style.
func (pl *play) extraBase(rng *rand.Rand, base float64, runner *Player, defender float64) bool {
	p := prob.WSP(base, Batting(runner).Speed-defender) + pl.runner.ExtraBase()
	p = prob.Clamp(p, prob.MinProbability, prob.MaxProbability)
	ok := rng.Float64() < p
	pl.note("%s extra base p=%.3f ok=%v", runner.ID, p, ok)
	return ok
}

func (pl *play) finish(o Outcome, text string) AtBatResult {
	pl.res.Outcome = o
	pl.res.Hit = o.IsHit()
	if pl.over() {
		// nobody reaches on the third out
		pl.res.BatterReached = ""
	}
	pl.res.Bases = pl.bases
	pl.res.BasesAfter = pl.bases.Snapshot()
	pl.res.Runs = len(pl.res.Scorers)
	pl.res.EarnedRuns = 0
	for _, s := range pl.res.Scorers {
		if s.Earned {
			pl.res.EarnedRuns++
		}
	}
	if len(pl.notes) > 0 {
		text += "; " + strings.Join(pl.notes, ", ")
	}
	pl.res.Text = text
	pl.res.Diagnostics = pl.diag
	return pl.res
}

// ResolveAtBat resolves one plate appearance: strikeout, walk or hit by
// pitch first, then a ball in play.
func ResolveAtBat(rng *rand.Rand, in AtBatInput) AtBatResult {
	pl := newPlay(in)
	bc := Batting(in.Batter)
	pc := Pitching(in.Pitcher, in.Degradation)
	platoon := platoonEdge(in.Batter, in.Pitcher)
	contact := bc.Contact + platoon

	kMul, bbMul := in.Batting.Approach.Multipliers()
	hitAdj, swingK, hrMul := in.Batting.Swing.Adjust()

	pK := prob.WSP(BaseStrikeoutRate, pc.Stuff()-contact) * kMul * swingK
	pBB := prob.WSP(BaseWalkRate, bc.Discipline-pc.Control) * bbMul
	pHBP := prob.Clamp(0.008+(NeutralRating-pc.Control)*0.0004, 0.001, 0.03)
	pK = prob.ApplyConsistencyVariance(rng, pK, bc.Consistency)
	pBB = prob.ApplyConsistencyVariance(rng, pBB, bc.Consistency)

	if pl.diag != nil {
		pl.diag.Batter, pl.diag.Pitcher, pl.diag.Platoon = bc, pc, platoon
		pl.diag.Strikeout, pl.diag.Walk, pl.diag.HitByPitch = pK, pBB, pHBP
	}

	name := in.Batter.DisplayName()
	r := rng.Float64()
	switch {
	case r < pK:
		pl.out(in.Batter)
		return pl.finish(OutcomeStrikeout, name+" strikes out")
	case r < pK+pBB:
		pl.forceBatterToFirst(ViaWalk)
		return pl.finish(OutcomeWalk, name+" walks")
	case r < pK+pBB+pHBP:
		pl.forceBatterToFirst(ViaHitByPitch)
		return pl.finish(OutcomeHitByPitch, name+" is hit by a pitch")
	}

	pHit := prob.WSP(BaseBABIP, contact-(pc.Overall()+in.Ratings.Overall)/2) + hitAdj
	pHit = prob.ApplyConsistencyVariance(rng, prob.Clamp(pHit, prob.MinProbability, prob.MaxProbability), bc.Consistency)
	if pl.diag != nil {
		pl.diag.BallInPlay = pHit
	}
	if rng.Float64() < pHit {
		weights := HitTypeWeights(bc, hrMul)
		if pl.diag != nil {
			pl.diag.HitTypes = weights
		}
		hit := prob.WeightedChoice(rng, hitOutcomes, weights[:])
		pl.advanceOnHit(rng, hit)
		return pl.finish(hit, name+" "+hitVerb[hit])
	}
	return pl.resolveOut(rng)
}

var (
	hitOutcomes = []Outcome{OutcomeSingle, OutcomeDouble, OutcomeTriple, OutcomeHomeRun}
	hitVerb     = map[Outcome]string{
		OutcomeSingle: "singles", OutcomeDouble: "doubles",
		OutcomeTriple: "triples", OutcomeHomeRun: "homers",
	}
)

func platoonEdge(batter, pitcher *Player) float64 {
	bh := batter.BatHand()
	if bh == HandSwitch || bh != pitcher.ThrowHand() {
		return PlatoonEdge
	}
	return 0
}

// HitTypeWeights returns single/double/triple/home-run shares. Singles
// never fall below MinSinglesShare and home runs never exceed
// MaxHomeRunShare.
func HitTypeWeights(bc BattingComposites, hrMul float64) [4]float64 {
	d := 0.18 + (bc.Power-NeutralRating)*0.002
	t := 0.025 + (bc.Speed-NeutralRating)*0.0005
	h := (0.09 + (bc.Power-NeutralRating)*0.004) * hrMul
	d, t, h = max(d, 0.01), max(t, 0.002), max(h, 0.005)
	s := max(1-d-t-h, 0)
	total := s + d + t + h
	s, d, t, h = s/total, d/total, t/total, h/total
	if s < MinSinglesShare {
		scale := (1 - MinSinglesShare) / (d + t + h)
		d, t, h = d*scale, t*scale, h*scale
		s = MinSinglesShare
	}
	if h > MaxHomeRunShare {
		s += h - MaxHomeRunShare
		h = MaxHomeRunShare
	}
	return [4]float64{s, d, t, h}
}

func (pl *play) forceBatterToFirst(via ReachedVia) {
	scored := pl.bases.ForceAdvance(pl.in.Batter)
	pl.score(scored, true)
	pl.res.BatterReached = via
}

// advanceOnHit moves runners for a clean hit (or an error treated as a
// single). Runners are processed lead runner first.
func (pl *play) advanceOnHit(rng *rand.Rand, hit Outcome) {
	b := pl.bases
	arm := pl.in.Ratings.OutfieldArm
	rbi := !pl.res.Error
	var next BaseState
	switch hit {
	case OutcomeSingle:
		pl.score(b[Third], rbi)
		if r := b[Second]; r != nil {
			if pl.extraBase(rng, SingleScoreFromSecond, r, arm) {
				pl.score(r, rbi)
			} else {
				next[Third] = r
			}
		}
		if r := b[First]; r != nil {
			if next[Third] == nil && pl.extraBase(rng, SingleFirstToThird, r, arm) {
				next[Third] = r
			} else {
				next[Second] = r
			}
		}
		next[First] = pl.in.Batter
	case OutcomeDouble:
		pl.score(b[Third], rbi)
		pl.score(b[Second], rbi)
		if r := b[First]; r != nil {
			if pl.extraBase(rng, DoubleScoreFromFirst, r, arm) {
				pl.score(r, rbi)
			} else {
				next[Third] = r
			}
		}
		next[Second] = pl.in.Batter
	case OutcomeTriple:
		pl.score(b[Third], rbi)
		pl.score(b[Second], rbi)
		pl.score(b[First], rbi)
		next[Third] = pl.in.Batter
	case OutcomeHomeRun:
		pl.score(b[Third], rbi)
		pl.score(b[Second], rbi)
		pl.score(b[First], rbi)
		pl.score(pl.in.Batter, rbi)
	}
	pl.bases = next
	if hit != OutcomeHomeRun {
		pl.res.BatterReached = ViaHit
	}
}

// resolveOut handles a ball in play that was not a hit: an error first,
// then the out type and its runner logic.
func (pl *play) resolveOut(rng *rand.Rand) AtBatResult {
	name := pl.in.Batter.DisplayName()
	fielder, pos := pl.chooseFielder(rng)
	pErr := prob.Clamp(0.018+(NeutralRating-Fielding(fielder).Hands)*0.0003, 0.004, 0.04)
	pl.note("error p=%.4f fielder=%s", pErr, pos)
	if rng.Float64() < pErr {
		pl.res.Error = true
		if fielder != nil {
			pl.res.ErrorFielderID = fielder.ID
		}
		pl.advanceOnHit(rng, OutcomeSingle)
		pl.res.BatterReached = ViaError
		return pl.finish(OutcomeReachedOnError, fmt.Sprintf("%s reaches on an error by %s", name, string(pos)))
	}

	switch prob.WeightedChoice(rng, outTypes, outTypeWeights) {
	case OutcomeGroundout:
		return pl.groundball(rng)
	case OutcomeFlyout:
		return pl.flyball(rng)
	case OutcomeLineout:
		return pl.lineout(rng)
	default:
		pl.out(pl.in.Batter)
		return pl.finish(OutcomePopup, name+" pops out")
	}
}

// lineout catches the liner; with fewer than two outs the lead runner is
// sometimes caught off base.
func (pl *play) lineout(rng *rand.Rand) AtBatResult {
	name := pl.in.Batter.DisplayName()
	pl.out(pl.in.Batter)
	if pl.in.Outs < 2 && !pl.bases.Empty() && rng.Float64() < LineoutDoubleOffRate {
		lead := pl.leadRunner()
		pl.out(pl.bases[lead])
		pl.notes = append(pl.notes, pl.bases[lead].DisplayName()+" doubled off")
		pl.bases[lead] = nil
		return pl.finish(OutcomeDoublePlay, name+" lines into a double play")
	}
	return pl.finish(OutcomeLineout, name+" lines out")
}

// chooseFielder picks who handled the ball, weighted toward the infield.
func (pl *play) chooseFielder(rng *rand.Rand) (*Player, Position) {
	positions := []Position{Pos1B, Pos2B, Pos3B, PosSS, PosLF, PosCF, PosRF, PosP, PosC}
	weights := []float64{0.14, 0.17, 0.15, 0.19, 0.10, 0.11, 0.10, 0.03, 0.01}
	pos := prob.WeightedChoice(rng, positions, weights)
	return pl.in.Defense[pos], pos
}

func (pl *play) leadRunner() int {
	for base := Third; base >= First; base-- {
		if pl.bases[base] != nil {
			return base
		}
	}
	return -1
}

// leadForced is the furthest base in the chain of runners forced by the
// batter, or -1 with first base open.
func (pl *play) leadForced() int {
	lead := -1
	for base := First; base <= Third; base++ {
		if pl.bases[base] == nil {
			break
		}
		lead = base
	}
	return lead
}

func (pl *play) groundball(rng *rand.Rand) AtBatResult {
	name := pl.in.Batter.DisplayName()
	if pl.in.Outs < 2 && pl.bases[First] != nil {
		if pl.in.Outs == 0 && pl.bases.Count() >= 2 && rng.Float64() < TriplePlayRate {
			pl.triplePlay()
			return pl.finish(OutcomeTriplePlay, name+" grounds into a triple play")
		}
		if pl.in.Outs == 0 && pl.bases[Third] != nil {
			if !pl.wantsThrowHome() {
				pl.doublePlay()
				return pl.finish(OutcomeDoublePlay, name+" grounds into a double play")
			}
			pHome := prob.WSP(ThrowHomeRate, pl.in.Ratings.InfieldArm-Batting(pl.bases[Third]).Speed)
			pl.note("throw home p=%.3f", pHome)
			if pl.throwToPlate(rng.Float64() < pHome) {
				return pl.finish(OutcomeFieldersChoice, name+" grounds into a fielder's choice, runner out at home")
			}
			return pl.finish(OutcomeFieldersChoice, name+" reaches on a fielder's choice, the throw home is late")
		}
		pDP := prob.WSP(DoublePlayRate, pl.in.Ratings.Infield-Batting(pl.in.Batter).Speed)
		pl.note("double play p=%.3f", pDP)
		if rng.Float64() < pDP {
			pl.doublePlay()
			return pl.finish(OutcomeDoublePlay, name+" grounds into a double play")
		}
		if rng.Intn(2) == 0 {
			pl.fieldersChoice()
			return pl.finish(OutcomeFieldersChoice, name+" reaches on a fielder's choice")
		}
	}
	pl.out(pl.in.Batter)
	pl.groundoutAdvance(rng)
	return pl.finish(OutcomeGroundout, name+" grounds out")
}

// wantsThrowHome is the defense's 0-out choice with a runner on third: cut
// the run down late in a close game, otherwise take the sure double play.
func (pl *play) wantsThrowHome() bool {
	return pl.in.Inning >= 7 && abs(pl.in.ScoreDiff) <= 1
}

// throwToPlate plays the throw to the plate. On success the runner from third
// is out and the batter reaches on the fielder's choice; on failure the run
// scores first and every forced runner then moves up with no out recorded.
func (pl *play) throwToPlate(success bool) bool {
	b := pl.bases
	runner := b[Third]
	if success {
		pl.out(runner)
		pl.notes = append(pl.notes, runner.DisplayName()+" out at home")
		b[Third] = nil
		if b[Second] != nil && b[First] != nil {
			b[Third], b[Second] = b[Second], nil
		}
		if b[First] != nil {
			b[Second] = b[First]
		}
		b[First] = pl.in.Batter
		pl.bases = b
		pl.res.BatterReached = ViaFieldersChoice
		return true
	}
	pl.score(runner, true)
	b[Third] = nil
	pl.bases = b
	pl.bases.ForceAdvance(pl.in.Batter)
	pl.res.BatterReached = ViaFieldersChoice
	return false
}

// doublePlay turns two on the force at second: the runner from first and
// the batter are out, the runner from second moves up and a runner on third
// scores unless the play ended the inning.
func (pl *play) doublePlay() {
	b := pl.bases
	pl.out(b[First])
	pl.out(pl.in.Batter)
	pl.res.GIDP = true
	pl.notes = append(pl.notes, b[First].DisplayName()+" forced at second")
	b[First] = nil
	if pl.over() {
		pl.bases = b
		return
	}
	var next BaseState
	next[Third] = b[Second]
	if b[Third] != nil {
		pl.score(b[Third], false)
	}
	pl.bases = next
}

// fieldersChoice retires the lead forced runner; the batter takes first
// and the other forced runners move up. An unforced runner on third holds.
func (pl *play) fieldersChoice() {
	lead := pl.leadForced()
	b := pl.bases
	pl.out(b[lead])
	pl.notes = append(pl.notes, b[lead].DisplayName()+" forced out")
	var next BaseState
	for base := lead - 1; base >= First; base-- {
		next[base+1] = b[base]
	}
	if lead < Third {
		next[Third] = b[Third]
	}
	next[First] = pl.in.Batter
	pl.bases = next
	pl.res.BatterReached = ViaFieldersChoice
}

// triplePlay retires the batter and the two lead runners. A trailing
// runner is left on base.
func (pl *play) triplePlay() {
	pl.out(pl.in.Batter)
	for base := Third; base >= First && pl.res.OutsRecorded < 3; base-- {
		if r := pl.bases[base]; r != nil {
			pl.out(r)
			pl.bases[base] = nil
		}
	}
}

// groundoutAdvance moves runners after the batter is thrown out at first.
func (pl *play) groundoutAdvance(rng *rand.Rand) {
	if pl.over() {
		return
	}
	b := pl.bases
	arm := pl.in.Ratings.InfieldArm
	var next BaseState
	if r := b[Third]; r != nil {
		if b.ForcedFrom(Third) || pl.extraBase(rng, GroundoutAdvanceRate, r, arm) {
			pl.score(r, true)
		} else {
			next[Third] = r
		}
	}
	if r := b[Second]; r != nil {
		if next[Third] == nil && (b.ForcedFrom(Second) || pl.extraBase(rng, GroundoutAdvanceRate, r, arm)) {
			next[Third] = r
		} else {
			next[Second] = r
		}
	}
	if r := b[First]; r != nil {
		if next[Second] == nil {
			next[Second] = r
		} else {
			next[First] = r
		}
	}
	pl.bases = next
}

func (pl *play) flyball(rng *rand.Rand) AtBatResult {
	name := pl.in.Batter.DisplayName()
	pl.out(pl.in.Batter)
	if pl.over() || pl.in.Outs >= 2 || pl.bases.Empty() {
		return pl.finish(OutcomeFlyout, name+" flies out")
	}
	arm := pl.in.Ratings.OutfieldArm
	doubled := false

	if pl.bases[First] != nil || pl.bases[Second] != nil {
		if rng.Float64() < FailedTagUpRate {
			base := Second
			if pl.bases[Second] == nil {
				base = First
			}
			pl.out(pl.bases[base])
			pl.notes = append(pl.notes, pl.bases[base].DisplayName()+" doubled off")
			pl.bases[base] = nil
			doubled = true
		}
	}

	if r := pl.bases[Third]; r != nil && !pl.over() && pl.tagAttempt(r, arm) {
		pl.bases[Third] = nil
		if pl.extraBase(rng, TagFromThirdRate, r, arm) {
			pl.score(r, true)
			pl.res.SacFly = true
		} else {
			pl.out(r)
			pl.notes = append(pl.notes, r.DisplayName()+" thrown out at home")
			doubled = true
		}
	}

	if r := pl.bases[Second]; r != nil && !pl.over() && pl.bases[Third] == nil && pl.tagAttempt(r, arm) {
		pl.bases[Second] = nil
		if pl.extraBase(rng, TagFromSecondRate, r, arm) {
			pl.bases[Third] = r
		} else {
			pl.out(r)
			pl.notes = append(pl.notes, r.DisplayName()+" thrown out at third")
			doubled = true
		}
	}

	switch {
	case pl.res.SacFly:
		return pl.finish(OutcomeSacrificeFly, name+" hits a sacrifice fly")
	case doubled:
		return pl.finish(OutcomeDoublePlay, name+" flies into a double play")
	}
	return pl.finish(OutcomeFlyout, name+" flies out")
}

// tagAttempt decides whether a runner tries to advance on a caught fly.
func (pl *play) tagAttempt(r *Player, arm float64) bool {
	speed := Batting(r).Speed
	switch pl.runner {
	case RunningAggressive:
		return true
	case RunningConservative:
		return speed > arm+5
	default:
		return speed >= arm-5
	}
}
