package baseball

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Attr identifies one of a player's 1-100 skill ratings.
type Attr int

const (
	AttrContact Attr = iota
	AttrPower
	AttrEye
	AttrGap
	AttrAvoidK
	AttrSpeed
	AttrStealing
	AttrBaserunning
	AttrBunting
	AttrVelocity
	AttrControl
	AttrMovement
	AttrStamina
	AttrHold
	AttrRange
	AttrHands
	AttrArmStrength
	AttrArmAccuracy
	AttrReaction
	AttrBlocking
	AttrFraming
	AttrConsistency
	AttrComposure
	AttrAwareness
	AttrDurability

	NumAttrs
)

// NeutralRating stands in for any rating a player or fielder lacks.
const NeutralRating = 50.0

var attrNames = [NumAttrs]string{
	"contact", "power", "eye", "gap", "avoid_k", "speed", "stealing",
	"baserunning", "bunting", "velocity", "control", "movement", "stamina",
	"hold", "range", "hands", "arm_strength", "arm_accuracy", "reaction",
	"blocking", "framing", "consistency", "composure", "awareness", "durability",
}

func (a Attr) String() string {
	if a < 0 || a >= NumAttrs {
		return fmt.Sprintf("attr(%d)", int(a))
	}
	return attrNames[a]
}

// ParseAttr maps a config key such as "arm_strength" to its Attr.
func ParseAttr(name string) (Attr, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range attrNames {
		if n == key {
			return Attr(i), nil
		}
	}
	return 0, fmt.Errorf("unknown attribute %q", name)
}

// Ratings holds the raw attributes. A zero entry means "not rated" and
// reads as NeutralRating.
type Ratings [NumAttrs]int

func (r Ratings) Get(a Attr) float64 {
	if a < 0 || a >= NumAttrs || r[a] <= 0 {
		return NeutralRating
	}
	v := r[a]
	if v > 100 {
		v = 100
	}
	return float64(v)
}

type Hand string

const (
	HandLeft   Hand = "L"
	HandRight  Hand = "R"
	HandSwitch Hand = "S"
)

// Player is never mutated by a simulation; fatigue is applied to the
// composites derived from it.
type Player struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Bats    Hand    `json:"bats,omitempty"`
	Throws  Hand    `json:"throws,omitempty"`
	Ratings Ratings `json:"-"`
}

func (p *Player) Rating(a Attr) float64 {
	if p == nil {
		return NeutralRating
	}
	return p.Ratings.Get(a)
}

func (p *Player) DisplayName() string {
	if p == nil {
		return "?"
	}
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// BatHand returns the explicit batting hand or one derived from the ID hash.
func (p *Player) BatHand() Hand {
	if p.Bats != "" {
		return p.Bats
	}
	switch h := idHash(p.ID) % 20; {
	case h < 6:
		return HandLeft
	case h == 19:
		return HandSwitch
	default:
		return HandRight
	}
}

// ThrowHand returns the explicit throwing hand or one derived from the ID hash.
func (p *Player) ThrowHand() Hand {
	if p.Throws != "" {
		return p.Throws
	}
	if (idHash(p.ID)>>8)%4 == 0 {
		return HandLeft
	}
	return HandRight
}

func idHash(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}
