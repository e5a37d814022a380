package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/stitts-dev/gridiron-sim/internal/engine"
)

const (
	MatchStatusRunning   = "running"
	MatchStatusCompleted = "completed"
	MatchStatusFailed    = "failed"
)

// MatchRecord is one simulated match and its final result.
type MatchRecord struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	HomeTeam   string         `gorm:"not null" json:"home_team"`
	AwayTeam   string         `gorm:"not null" json:"away_team"`
	HomeScore  int            `json:"home_score"`
	AwayScore  int            `json:"away_score"`
	Winner     string         `json:"winner,omitempty"`
	Plays      int            `json:"plays"`
	Seed       int64          `json:"seed"`
	Status     string         `gorm:"not null;default:running;index" json:"status"`
	FinalState datatypes.JSON `json:"final_state,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	Scores []ScoreRecord `gorm:"foreignKey:MatchID" json:"scores,omitempty"`
	Drives []DriveRecord `gorm:"foreignKey:MatchID" json:"drives,omitempty"`
}

func (MatchRecord) TableName() string {
	return "matches"
}

// BeforeCreate assigns an ID when the caller did not.
func (m *MatchRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Complete copies a finished match summary onto the record.
func (m *MatchRecord) Complete(s engine.Summary) error {
	state, err := json.Marshal(s.Final)
	if err != nil {
		return fmt.Errorf("failed to marshal final state: %w", err)
	}
	m.HomeScore = s.HomeScore
	m.AwayScore = s.AwayScore
	m.Winner = s.Winner
	m.Plays = s.Plays
	m.FinalState = datatypes.JSON(state)
	m.Status = MatchStatusCompleted
	return nil
}

// Final decodes the stored final match state.
func (m *MatchRecord) Final() (engine.MatchState, error) {
	var state engine.MatchState
	if len(m.FinalState) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(m.FinalState, &state); err != nil {
		return state, fmt.Errorf("failed to unmarshal final state: %w", err)
	}
	return state, nil
}

type PlayRecord struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	MatchID  uuid.UUID `gorm:"type:uuid;not null;index:idx_match_play" json:"match_id"`
	Number   int       `gorm:"not null;index:idx_match_play" json:"number"`
	Quarter  int       `json:"quarter"`
	Clock    float64   `json:"clock"`
	Offense  string    `json:"offense"`
	Defense  string    `json:"defense"`
	Type     string    `gorm:"index" json:"type"`
	Yards    int       `json:"yards"`
	Success  bool      `json:"success"`
	Down     int       `json:"down"`
	YardLine int       `json:"yard_line"`
}

func (PlayRecord) TableName() string {
	return "plays"
}

func NewPlayRecord(e engine.PlayEvent) PlayRecord {
	return PlayRecord{
		MatchID:  e.MatchID,
		Number:   e.Number,
		Quarter:  e.Quarter,
		Clock:    e.Clock,
		Offense:  e.Offense,
		Defense:  e.Defense,
		Type:     string(e.Type),
		Yards:    e.Yards,
		Success:  e.Success,
		Down:     e.Down,
		YardLine: e.YardLine,
	}
}

type ScoreRecord struct {
	ID      uint      `gorm:"primaryKey" json:"-"`
	MatchID uuid.UUID `gorm:"type:uuid;not null;index" json:"match_id"`
	Team    string    `json:"team"`
	Points  int       `json:"points"`
	Type    string    `json:"type"`
	Quarter int       `json:"quarter"`
	Clock   float64   `json:"clock"`
}

func (ScoreRecord) TableName() string {
	return "scores"
}

func NewScoreRecord(e engine.ScoreEvent) ScoreRecord {
	return ScoreRecord{
		MatchID: e.MatchID,
		Team:    e.Team,
		Points:  e.Points,
		Type:    string(e.Type),
		Quarter: e.Quarter,
		Clock:   e.Clock,
	}
}

type DriveRecord struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	MatchID       uuid.UUID `gorm:"type:uuid;not null;index" json:"match_id"`
	Team          string    `json:"team"`
	StartPosition int       `json:"start_position"`
	EndPosition   int       `json:"end_position"`
	Result        string    `json:"result"`
	Points        int       `json:"points"`
	Plays         int       `json:"plays"`
	Timestamp     float64   `json:"timestamp"`
}

func (DriveRecord) TableName() string {
	return "drives"
}

func NewDriveRecord(e engine.DriveEvent) DriveRecord {
	return DriveRecord{
		MatchID:       e.MatchID,
		Team:          e.Team,
		StartPosition: e.StartPosition,
		EndPosition:   e.EndPosition,
		Result:        string(e.Result),
		Points:        e.Points,
		Plays:         e.Plays,
		Timestamp:     e.Timestamp,
	}
}

// AutoMigrate creates or updates every match table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&MatchRecord{}, &PlayRecord{}, &ScoreRecord{}, &DriveRecord{})
}
