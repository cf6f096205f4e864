package models

import "time"

// Challenge goal types.
const (
	GoalTypeWater    = "water"
	GoalTypeSteps    = "steps"
	GoalTypeCalories = "calories"
	GoalTypeStreak   = "streak"
	GoalTypeCustom   = "custom"
)

// Challenge represents a community nutrition challenge. A challenge is listed
// as active when IsActive is set and the current time falls inside
// [StartDate, EndDate].
type Challenge struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	StartDate   time.Time `gorm:"not null;index" json:"start_date"`
	EndDate     time.Time `gorm:"not null;index" json:"end_date"`
	Goal        string    `json:"goal"`
	GoalType    string    `gorm:"type:varchar(32);not null;default:'custom'" json:"goal_type"`
	GoalValue   int       `gorm:"not null" json:"goal_value"`
	Rewards     string    `json:"rewards,omitempty"`
	IsActive    bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidGoalType reports whether t is one of the recognized goal types.
func ValidGoalType(t string) bool {
	switch t {
	case GoalTypeWater, GoalTypeSteps, GoalTypeCalories, GoalTypeStreak, GoalTypeCustom:
		return true
	}
	return false
}

// ChallengeParticipant tracks a user's membership and progress in a challenge.
// The (ChallengeID, UserID) pair is unique; joining is idempotent.
//
// Completed is only ever set together with CompletedDate, inside the same
// update that raised Progress past the challenge goal.
type ChallengeParticipant struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ChallengeID   uint       `gorm:"not null;uniqueIndex:idx_challenge_participant_pair;index" json:"challenge_id"`
	Challenge     *Challenge `gorm:"foreignKey:ChallengeID" json:"challenge,omitempty"`
	UserID        uint       `gorm:"not null;uniqueIndex:idx_challenge_participant_pair;index" json:"user_id"`
	User          *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	JoinDate      time.Time  `json:"join_date"`
	Progress      int        `gorm:"not null;default:0" json:"progress"`
	Completed     bool       `gorm:"not null;default:false" json:"completed"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
}
