package baseball

import "sportsim/internal/prob"

type table = prob.Table[Attr]

// Batting weight tables.
var (
	ContactWeights = table{
		{Key: AttrContact, W: 0.50}, {Key: AttrAvoidK, W: 0.25}, {Key: AttrEye, W: 0.10}, {Key: AttrComposure, W: 0.15},
	}
	PowerWeights = table{
		{Key: AttrPower, W: 0.70}, {Key: AttrGap, W: 0.20}, {Key: AttrContact, W: 0.10},
	}
	DisciplineWeights = table{
		{Key: AttrEye, W: 0.65}, {Key: AttrAvoidK, W: 0.20}, {Key: AttrAwareness, W: 0.15},
	}
	SpeedWeights = table{
		{Key: AttrSpeed, W: 0.80}, {Key: AttrBaserunning, W: 0.20},
	}
	StealWeights = table{
		{Key: AttrStealing, W: 0.50}, {Key: AttrSpeed, W: 0.35}, {Key: AttrBaserunning, W: 0.15},
	}
	BaserunningWeights = table{
		{Key: AttrBaserunning, W: 0.50}, {Key: AttrSpeed, W: 0.30}, {Key: AttrAwareness, W: 0.20},
	}
)

// Pitching weight tables.
var (
	VelocityWeights = table{
		{Key: AttrVelocity, W: 0.85}, {Key: AttrComposure, W: 0.15},
	}
	ControlWeights = table{
		{Key: AttrControl, W: 0.75}, {Key: AttrComposure, W: 0.15}, {Key: AttrConsistency, W: 0.10},
	}
	MovementWeights = table{
		{Key: AttrMovement, W: 0.80}, {Key: AttrVelocity, W: 0.20},
	}
	StaminaWeights = table{
		{Key: AttrStamina, W: 0.80}, {Key: AttrDurability, W: 0.20},
	}
	HoldWeights = table{
		{Key: AttrHold, W: 0.60}, {Key: AttrAwareness, W: 0.25}, {Key: AttrReaction, W: 0.15},
	}
)

// Fielding weight tables.
var (
	RangeWeights = table{
		{Key: AttrRange, W: 0.55}, {Key: AttrReaction, W: 0.30}, {Key: AttrAwareness, W: 0.15},
	}
	HandsWeights = table{
		{Key: AttrHands, W: 0.70}, {Key: AttrReaction, W: 0.15}, {Key: AttrConsistency, W: 0.15},
	}
	ArmWeights = table{
		{Key: AttrArmStrength, W: 0.65}, {Key: AttrArmAccuracy, W: 0.35},
	}
	BlockingWeights = table{
		{Key: AttrBlocking, W: 0.60}, {Key: AttrReaction, W: 0.25}, {Key: AttrHands, W: 0.15},
	}
	CatcherArmWeights = table{
		{Key: AttrArmStrength, W: 0.50}, {Key: AttrArmAccuracy, W: 0.35}, {Key: AttrReaction, W: 0.15},
	}
	FieldingWeights = table{
		{Key: AttrRange, W: 0.40}, {Key: AttrHands, W: 0.35}, {Key: AttrArmStrength, W: 0.15}, {Key: AttrArmAccuracy, W: 0.10},
	}
)

// AllWeightTables lists every table by name so tests can check each sums to 1.
var AllWeightTables = map[string]table{
	"contact": ContactWeights, "power": PowerWeights, "discipline": DisciplineWeights,
	"speed": SpeedWeights, "steal": StealWeights, "baserunning": BaserunningWeights,
	"velocity": VelocityWeights, "control": ControlWeights, "movement": MovementWeights,
	"stamina": StaminaWeights, "hold": HoldWeights,
	"range": RangeWeights, "hands": HandsWeights, "arm": ArmWeights,
	"blocking": BlockingWeights, "catcher_arm": CatcherArmWeights, "fielding": FieldingWeights,
}

func composite(p *Player, t table) float64 {
	return prob.Composite(p.Rating, t)
}

type BattingComposites struct {
	Contact     float64 `json:"contact"`
	Power       float64 `json:"power"`
	Discipline  float64 `json:"discipline"`
	Speed       float64 `json:"speed"`
	Steal       float64 `json:"steal"`
	Baserunning float64 `json:"baserunning"`
	Consistency float64 `json:"consistency"`
}

func Batting(p *Player) BattingComposites {
	return BattingComposites{
		Contact:     composite(p, ContactWeights),
		Power:       composite(p, PowerWeights),
		Discipline:  composite(p, DisciplineWeights),
		Speed:       composite(p, SpeedWeights),
		Steal:       composite(p, StealWeights),
		Baserunning: composite(p, BaserunningWeights),
		Consistency: p.Rating(AttrConsistency),
	}
}

// Danger is how threatening a hitter is, used by the intentional-walk check.
func (b BattingComposites) Danger() float64 {
	return (b.Contact + b.Power) / 2
}

type PitchingComposites struct {
	Velocity float64 `json:"velocity"`
	Control  float64 `json:"control"`
	Movement float64 `json:"movement"`
	Stamina  float64 `json:"stamina"`
	Hold     float64 `json:"hold"`
}

// Pitching returns the pitcher's composites scaled down by degradation.
// Stamina is reported undegraded since it drives the fatigue threshold.
func Pitching(p *Player, degradation float64) PitchingComposites {
	m := 1 - degradation
	return PitchingComposites{
		Velocity: composite(p, VelocityWeights) * m,
		Control:  composite(p, ControlWeights) * m,
		Movement: composite(p, MovementWeights) * m,
		Stamina:  composite(p, StaminaWeights),
		Hold:     composite(p, HoldWeights) * m,
	}
}

// Stuff is the velocity/movement blend that drives strikeouts.
func (c PitchingComposites) Stuff() float64 {
	return (c.Velocity + c.Movement) / 2
}

// Overall is the blend used against balls in play.
func (c PitchingComposites) Overall() float64 {
	return (c.Velocity + c.Control + c.Movement) / 3
}

type FieldingComposites struct {
	Range    float64 `json:"range"`
	Hands    float64 `json:"hands"`
	Arm      float64 `json:"arm"`
	Overall  float64 `json:"overall"`
	Blocking float64 `json:"blocking"`
	CArm     float64 `json:"catcher_arm"`
}

func Fielding(p *Player) FieldingComposites {
	if p == nil {
		return FieldingComposites{
			Range: NeutralRating, Hands: NeutralRating, Arm: NeutralRating,
			Overall: NeutralRating, Blocking: NeutralRating, CArm: NeutralRating,
		}
	}
	return FieldingComposites{
		Range:    composite(p, RangeWeights),
		Hands:    composite(p, HandsWeights),
		Arm:      composite(p, ArmWeights),
		Overall:  composite(p, FieldingWeights),
		Blocking: composite(p, BlockingWeights),
		CArm:     composite(p, CatcherArmWeights),
	}
}

// DefenseRatings summarizes an alignment. Empty positions count as neutral.
type DefenseRatings struct {
	Infield         float64 `json:"infield"`
	InfieldArm      float64 `json:"infield_arm"`
	InfieldHands    float64 `json:"infield_hands"`
	OutfieldArm     float64 `json:"outfield_arm"`
	OutfieldRange   float64 `json:"outfield_range"`
	OutfieldHands   float64 `json:"outfield_hands"`
	CatcherArm      float64 `json:"catcher_arm"`
	CatcherBlocking float64 `json:"catcher_blocking"`
	Overall         float64 `json:"overall"`
}

func RateDefense(d Defense) DefenseRatings {
	var r DefenseRatings
	for _, pos := range InfieldPositions {
		f := Fielding(d[pos])
		r.Infield += f.Overall / 4
		r.InfieldArm += f.Arm / 4
		r.InfieldHands += f.Hands / 4
	}
	for _, pos := range OutfieldPositions {
		f := Fielding(d[pos])
		r.OutfieldArm += f.Arm / 3
		r.OutfieldRange += f.Range / 3
		r.OutfieldHands += f.Hands / 3
	}
	c := Fielding(d[PosC])
	r.CatcherArm = c.CArm
	r.CatcherBlocking = c.Blocking
	r.Overall = (r.Infield*4 + (r.OutfieldRange+r.OutfieldHands)/2*3) / 7
	return r
}
