package baseball

import "fmt"

type PitcherRole string

const (
	RoleStarter  PitcherRole = "starter"
	RoleReliever PitcherRole = "reliever"
	RoleCloser   PitcherRole = "closer"
)

type PitcherStatus int

const (
	StatusAvailable PitcherStatus = iota
	StatusActive
	StatusRetired
)

func (s PitcherStatus) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusActive:
		return "active"
	case StatusRetired:
		return "retired"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

type StaffEntry struct {
	Pitcher *Player
	Role    PitcherRole
	Status  PitcherStatus
}

// Staff is every pitcher a team may use in a game, in bullpen preference
// order after the starter. Exactly one entry is active; retired entries
// never return to the mound.
type Staff struct {
	Entries     []StaffEntry
	ActiveIndex int
}

func NewStaff(starter *Player, bullpen []*Player, closerID string) *Staff {
	s := &Staff{Entries: []StaffEntry{{Pitcher: starter, Role: RoleStarter, Status: StatusActive}}}
	for _, p := range bullpen {
		if p == nil || p.ID == starter.ID {
			continue
		}
		role := RoleReliever
		if p.ID == closerID {
			role = RoleCloser
		}
		s.Entries = append(s.Entries, StaffEntry{Pitcher: p, Role: role})
	}
	return s
}

func (s *Staff) Clone() *Staff {
	if s == nil {
		return nil
	}
	c := *s
	c.Entries = append([]StaffEntry(nil), s.Entries...)
	return &c
}

func (s *Staff) Active() *StaffEntry {
	if s == nil || s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Entries) {
		return nil
	}
	return &s.Entries[s.ActiveIndex]
}

func (s *Staff) Find(id string) (int, bool) {
	for i := range s.Entries {
		if s.Entries[i].Pitcher.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Available counts pitchers who have not yet pitched.
func (s *Staff) Available() int {
	n := 0
	for _, e := range s.Entries {
		if e.Status == StatusAvailable {
			n++
		}
	}
	return n
}

func (s *Staff) IsRetired(id string) bool {
	i, ok := s.Find(id)
	return ok && s.Entries[i].Status == StatusRetired
}

// NextReliever is the first available non-closer, or the closer when no
// one else is left.
func (s *Staff) NextReliever() (int, bool) {
	for i, e := range s.Entries {
		if e.Status == StatusAvailable && e.Role != RoleCloser {
			return i, true
		}
	}
	return s.Closer()
}

// Closer returns the closer while still available.
func (s *Staff) Closer() (int, bool) {
	for i, e := range s.Entries {
		if e.Status == StatusAvailable && e.Role == RoleCloser {
			return i, true
		}
	}
	return -1, false
}

// Bring makes entry i the active pitcher and retires the current one.
func (s *Staff) Bring(i int) error {
	if i < 0 || i >= len(s.Entries) {
		return fmt.Errorf("staff index %d: %w", i, ErrUnknownPitcher)
	}
	if s.Entries[i].Status != StatusAvailable {
		return fmt.Errorf("%s: %w", s.Entries[i].Pitcher.ID, ErrPitcherRetired)
	}
	if cur := s.Active(); cur != nil {
		cur.Status = StatusRetired
	}
	s.Entries[i].Status = StatusActive
	s.ActiveIndex = i
	return nil
}
