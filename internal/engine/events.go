package engine

import (
	"github.com/google/uuid"

	"github.com/stitts-dev/gridiron-sim/internal/tactics"
)

// PlayType is how a snap was used.
type PlayType string

const (
	PlayRun       PlayType = "run"
	PlayShortPass PlayType = "short_pass"
	PlayDeepPass  PlayType = "deep_pass"
	PlayPunt      PlayType = "punt"
	PlayFieldGoal PlayType = "field_goal"
)

func playTypeFor(c tactics.PlayClass) PlayType {
	switch c {
	case tactics.ClassDeepPass:
		return PlayDeepPass
	case tactics.ClassShortPass:
		return PlayShortPass
	}
	return PlayRun
}

// ScoreType names a scoring event.
type ScoreType string

const (
	ScoreTouchdown  ScoreType = "touchdown"
	ScoreExtraPoint ScoreType = "extra_point"
	ScoreFieldGoal  ScoreType = "field_goal"
	ScoreSafety     ScoreType = "safety"
)

// DriveResult is how a possession ended.
type DriveResult string

const (
	DriveTouchdown       DriveResult = "touchdown"
	DriveFieldGoal       DriveResult = "field_goal"
	DriveMissedFieldGoal DriveResult = "missed_field_goal"
	DrivePunt            DriveResult = "punt"
	DriveDowns           DriveResult = "downs"
	DriveSafety          DriveResult = "safety"
	DriveEndOfQuarter    DriveResult = "end_of_quarter"
	DriveEndOfGame       DriveResult = "end_of_game"
)

// PlayEvent is reported once per snap.
type PlayEvent struct {
	MatchID  uuid.UUID `json:"match_id"`
	Number   int       `json:"number"`
	Quarter  int       `json:"quarter"`
	Clock    float64   `json:"clock"`
	Offense  string    `json:"offense"`
	Defense  string    `json:"defense"`
	Type     PlayType  `json:"type"`
	Yards    int       `json:"yards"`
	Success  bool      `json:"success"`
	Down     int       `json:"down"`
	YardLine int       `json:"yard_line"`
}

// ScoreEvent is reported for every point-producing result.
type ScoreEvent struct {
	MatchID uuid.UUID `json:"match_id"`
	Team    string    `json:"team"`
	Points  int       `json:"points"`
	Type    ScoreType `json:"type"`
	Quarter int       `json:"quarter"`
	Clock   float64   `json:"clock"`
}

// DriveEvent is reported when a possession ends.
type DriveEvent struct {
	MatchID       uuid.UUID   `json:"match_id"`
	Team          string      `json:"team"`
	StartPosition int         `json:"start_position"`
	EndPosition   int         `json:"end_position"`
	Result        DriveResult `json:"result"`
	Points        int         `json:"points"`
	Plays         int         `json:"plays"`
	Timestamp     float64     `json:"timestamp"` // seconds elapsed at drive end
}

// Recorder receives match events. It is write-only: nothing it does can
// influence the simulation, and it must not block the play loop.
type Recorder interface {
	RecordPlay(PlayEvent)
	RecordScore(ScoreEvent)
	RecordDrive(DriveEvent)
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) RecordPlay(PlayEvent)   {}
func (NopRecorder) RecordScore(ScoreEvent) {}
func (NopRecorder) RecordDrive(DriveEvent) {}
