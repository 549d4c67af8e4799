package player

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SkillLevel is the coarse classification assigned to a club member.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
)

var AllSkillLevels = map[SkillLevel]struct{}{
	SkillBeginner:     {},
	SkillIntermediate: {},
	SkillAdvanced:     {},
}

// ErrDuplicatePlayerID is returned by repositories when a write would violate
// the uniqueness of the externally chosen player identifier.
var ErrDuplicatePlayerID = errors.New("player id already exists")

// Player is one club member. The four counters (SessionsAttended, MVPAwards,
// TotalPoints, TotalSaves) are derived state: they must always equal the
// aggregate over that player's session fact rows and are rewritten in full on
// every stats write.
type Player struct {
	ID               int64
	PlayerID         string
	FullName         string
	Phone            string
	Instagram        string
	Age              int
	SkillLevel       SkillLevel
	SessionsAttended int
	MVPAwards        int
	TotalPoints      int
	TotalSaves       int
	FormSubmissions  int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Totals is the recomputed aggregate over a player's session facts.
type Totals struct {
	SessionsAttended int
	MVPAwards        int
	TotalPoints      int
	TotalSaves       int
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.PlayerID) == "" {
		return fmt.Errorf("player_id is required")
	}
	if strings.TrimSpace(p.FullName) == "" {
		return fmt.Errorf("full_name is required")
	}
	if p.Age < 0 {
		return fmt.Errorf("age cannot be negative")
	}
	if p.SkillLevel != "" {
		if _, ok := AllSkillLevels[p.SkillLevel]; !ok {
			return fmt.Errorf("invalid skill_level: %s", p.SkillLevel)
		}
	}
	return nil
}
