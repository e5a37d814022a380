package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gridiron-sim/internal/football"
	"github.com/stitts-dev/gridiron-sim/internal/rng"
	"github.com/stitts-dev/gridiron-sim/internal/tactics"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
)

var ErrMatchOver = errors.New("match is over")

// PlayCall is the entry decision taken before the snap.
type PlayCall string

const (
	CallNormal    PlayCall = "normal"
	CallFieldGoal PlayCall = "field_goal"
	CallPunt      PlayCall = "punt"
)

const (
	fieldGoalRange      = 65
	puntTerritory       = 50
	goForItAggression   = 70.0
	touchdownPoints     = 6
	extraPointPoints    = 1
	fieldGoalPoints     = 3
	safetyPoints        = 2
	minPuntYardLine     = 5
	fieldGoalSnapOffset = 120
)

// Config tunes the numeric model. Zero values take the defaults.
type Config struct {
	FatigueShape    float64
	EnergyIntensity float64
}

func (c Config) withDefaults() Config {
	if c.FatigueShape <= 0 {
		c.FatigueShape = football.DefaultFatigueShape
	}
	if c.EnergyIntensity <= 0 {
		c.EnergyIntensity = football.DefaultEnergyIntensity
	}
	return c
}

// PlayResult is one entry of the play-by-play log.
type PlayResult struct {
	Number   int          `json:"number"`
	Offense  string       `json:"offense"`
	Defense  string       `json:"defense"`
	Call     PlayCall     `json:"call"`
	Type     PlayType     `json:"type"`
	Yards    int          `json:"yards"`
	Success  bool         `json:"success"`
	Duration float64      `json:"duration"`
	Phases   []Phase      `json:"phases"`
	Before   MatchState   `json:"before"`
	After    MatchState   `json:"after"`
	Score    [2]int       `json:"score"`
	Scores   []ScoreEvent `json:"scores,omitempty"`
	Drives   []DriveEvent `json:"drives,omitempty"`
	Outcome  *PlayOutcome `json:"outcome,omitempty"`
}

// PossessionChanged reports whether the ball changed hands on this play.
func (r PlayResult) PossessionChanged() bool {
	for _, d := range r.Drives {
		if d.Result != DriveEndOfGame {
			return true
		}
	}
	return false
}

// Summary is the final state of a completed match.
type Summary struct {
	MatchID   uuid.UUID  `json:"match_id"`
	Home      string     `json:"home"`
	Away      string     `json:"away"`
	HomeScore int        `json:"home_score"`
	AwayScore int        `json:"away_score"`
	Winner    string     `json:"winner,omitempty"`
	Plays     int        `json:"plays"`
	Final     MatchState `json:"final"`
}

type drive struct {
	team       int
	start      int
	plays      int
	points     int
	startClock float64
}

// Match is the simulation context. It exclusively owns the MatchState and
// mutates the teams only through their designated update methods.
type Match struct {
	ID      uuid.UUID
	Teams   [2]*football.Team
	Score   [2]int
	Offense int
	State   MatchState

	cfg      Config
	src      rng.Source
	resolver *Resolver
	recorder Recorder
	log      *logrus.Entry
	drive    drive
	plays    []PlayResult
	finished bool
}

// NewMatch validates both rosters and sets up the opening kickoff with the
// home team on offense. A nil recorder discards events.
func NewMatch(home, away *football.Team, src rng.Source, cfg Config, recorder Recorder) (*Match, error) {
	if home == nil || away == nil {
		return nil, fmt.Errorf("new match: %w", football.ErrEmptyRoster)
	}
	if err := home.Validate(); err != nil {
		return nil, fmt.Errorf("home roster: %w", err)
	}
	if err := away.Validate(); err != nil {
		return nil, fmt.Errorf("away roster: %w", err)
	}
	if src == nil {
		return nil, errors.New("new match: random source is required")
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	cfg = cfg.withDefaults()

	m := &Match{
		ID:       uuid.New(),
		Teams:    [2]*football.Team{home, away},
		State:    NewMatchState(),
		cfg:      cfg,
		src:      src,
		resolver: NewResolver(src, cfg.FatigueShape),
		recorder: recorder,
	}
	m.log = logger.WithMatchContext(m.ID.String(), home.Name, away.Name)
	for _, t := range m.Teams {
		if !t.HasRole(football.RoleKicker) {
			m.log.WithField("team", t.Name).Warn("No kicker on roster, first player will kick")
		}
	}
	m.startDrive()
	return m, nil
}

func (m *Match) offenseTeam() *football.Team { return m.Teams[m.Offense] }
func (m *Match) defenseTeam() *football.Team { return m.Teams[1-m.Offense] }

// Over reports whether the game clock has expired.
func (m *Match) Over() bool {
	return m.State.TimeRemaining <= 0
}

// Plays returns the play-by-play log so far.
func (m *Match) Plays() []PlayResult {
	return m.plays
}

// Step runs one full iteration: decision, execution, clock, quarter
// boundary and the mental/physical update.
func (m *Match) Step() (PlayResult, error) {
	if m.Over() {
		return PlayResult{}, ErrMatchOver
	}
	offense, defense := m.offenseTeam(), m.defenseTeam()
	res := PlayResult{
		Number:  len(m.plays) + 1,
		Offense: offense.Name,
		Defense: defense.Name,
		Before:  m.State,
	}
	m.drive.plays++

	res.Call = m.decide(&res)
	switch res.Call {
	case CallFieldGoal:
		m.attemptFieldGoal(&res)
	case CallPunt:
		m.punt(&res)
	default:
		m.normalPlay(&res)
	}

	m.consumeClock(res.Duration)
	m.checkQuarterBoundary(&res)
	m.updateMentalPhysical(offense, defense, res.Success)
	if m.Over() {
		m.finish(&res)
	}

	res.After = m.State
	res.Score = m.Score
	m.plays = append(m.plays, res)
	m.emit(res)
	return res, nil
}

// Run plays until the clock expires. The last play closes the final drive.
func (m *Match) Run() Summary {
	for !m.Over() {
		if _, err := m.Step(); err != nil {
			break
		}
	}
	return m.Summary()
}

// Summary reports the current result.
func (m *Match) Summary() Summary {
	s := Summary{
		MatchID:   m.ID,
		Home:      m.Teams[0].Name,
		Away:      m.Teams[1].Name,
		HomeScore: m.Score[0],
		AwayScore: m.Score[1],
		Plays:     len(m.plays),
		Final:     m.State,
	}
	switch {
	case m.Score[0] > m.Score[1]:
		s.Winner = s.Home
	case m.Score[1] > m.Score[0]:
		s.Winner = s.Away
	}
	return s
}

func (m *Match) finish(res *PlayResult) {
	if m.finished {
		return
	}
	m.finished = true
	res.Drives = append(res.Drives, m.endDrive(DriveEndOfGame, m.State.OffenseYardLine))
	m.log.WithFields(logrus.Fields{
		"home_score": m.Score[0],
		"away_score": m.Score[1],
		"plays":      len(m.plays),
	}).Debug("Match finished")
}

// decide is the entry decision. Fourth down in field-goal range always
// kicks; deep in own territory always punts; in between, only an
// aggressive offense keeps the ball.
func (m *Match) decide(res *PlayResult) PlayCall {
	if m.State.Down != 4 {
		res.Phases = append(res.Phases, PhaseNormalDown)
		return CallNormal
	}
	res.Phases = append(res.Phases, PhaseSpecialDecision)
	switch yl := m.State.OffenseYardLine; {
	case yl >= fieldGoalRange:
		return CallFieldGoal
	case yl < puntTerritory:
		return CallPunt
	}
	strategy := tactics.Generate(m.offenseTeam(), m.State.Situation(), true, m.scoreDiff(m.Offense))
	if strategy.Axes.Aggression > goForItAggression {
		res.Phases = append(res.Phases, PhaseNormalDown)
		return CallNormal
	}
	return CallPunt
}

func (m *Match) normalPlay(res *PlayResult) {
	out := m.resolver.Resolve(m.offenseTeam(), m.defenseTeam(), &m.State, m.Score[m.Offense], m.Score[1-m.Offense])
	res.Outcome = &out
	res.Type = playTypeFor(out.Class)
	res.Yards = out.Yards
	res.Success = out.Yards > 0
	res.Duration = m.playDuration(out.Class, out.OffenseStrategy.Modifiers.Tempo, out.Yards)

	s := &m.State
	s.OffenseYardLine += out.Yards
	s.YardsToGo -= out.Yards
	s.Down++

	switch {
	case s.OffenseYardLine >= 100:
		m.touchdown(res)
	case s.OffenseYardLine <= 0:
		m.safety(res)
	case s.YardsToGo <= 0:
		s.Down = 1
		s.YardsToGo = firstDownYards
	case s.Down > 4:
		res.Phases = append(res.Phases, PhaseTurnover)
		m.changePossession(res, DriveDowns, s.OffenseYardLine, 100-s.OffenseYardLine)
	}

	m.log.WithFields(logrus.Fields{
		"play":      res.Number,
		"type":      res.Type,
		"yards":     res.Yards,
		"down":      s.Down,
		"to_go":     s.YardsToGo,
		"yard_line": s.OffenseYardLine,
	}).Debug("Play resolved")
}

func (m *Match) touchdown(res *PlayResult) {
	res.Phases = append(res.Phases, PhaseScoring)
	scorer := m.Offense
	m.award(res, scorer, touchdownPoints, ScoreTouchdown)

	kicker := m.Teams[scorer].Kicker()
	p := football.Clamp(0.95*m.kickerSkill(kicker)/100, 0, 1)
	res.Duration += extraPointSeconds
	if m.src.Bernoulli(p) {
		m.award(res, scorer, extraPointPoints, ScoreExtraPoint)
	}
	m.changePossession(res, DriveTouchdown, 100, startingYardLine)
}

// safety: the ball died behind the offense's own goal line.
func (m *Match) safety(res *PlayResult) {
	res.Phases = append(res.Phases, PhaseScoring)
	m.award(res, 1-m.Offense, safetyPoints, ScoreSafety)
	m.changePossession(res, DriveSafety, 0, startingYardLine)
}

func (m *Match) attemptFieldGoal(res *PlayResult) {
	res.Type = PlayFieldGoal
	res.Duration = fieldGoalSeconds

	yl := m.State.OffenseYardLine
	distance := float64(fieldGoalSnapOffset - yl)
	kicker := m.offenseTeam().Kicker()
	p := football.Clamp(m.kickerSkill(kicker)/100-(distance-30)*0.02, 0.3, 0.95)

	made := m.src.Bernoulli(p)
	res.Success = made
	m.log.WithFields(logrus.Fields{
		"distance":    distance,
		"probability": p,
		"made":        made,
	}).Debug("Field goal attempt")

	if made {
		res.Phases = append(res.Phases, PhaseScoring)
		m.award(res, m.Offense, fieldGoalPoints, ScoreFieldGoal)
		m.changePossession(res, DriveFieldGoal, yl, startingYardLine)
		return
	}
	res.Phases = append(res.Phases, PhaseTurnover)
	m.changePossession(res, DriveMissedFieldGoal, yl, 100-yl)
}

func (m *Match) punt(res *PlayResult) {
	res.Type = PlayPunt
	res.Duration = puntSeconds

	yl := m.State.OffenseYardLine
	kicker := m.offenseTeam().Kicker()
	distance := football.Clamp(m.kickerSkill(kicker)*0.6+m.src.Uniform(0, 20), 25, 60)
	next := int(math.Round(math.Max(minPuntYardLine, 100-(float64(yl)+distance))))

	res.Phases = append(res.Phases, PhaseTurnover)
	m.changePossession(res, DrivePunt, yl, next)
}

func (m *Match) kickerSkill(k *football.Player) float64 {
	if k == nil {
		return 0
	}
	return k.EffectiveWithShape(football.AttrKickAccuracy, m.cfg.FatigueShape)
}

func (m *Match) scoreDiff(team int) int {
	return m.Score[team] - m.Score[1-team]
}

func (m *Match) award(res *PlayResult, team, points int, kind ScoreType) {
	m.Score[team] += points
	if team == m.drive.team {
		m.drive.points += points
	}
	ev := ScoreEvent{
		MatchID: m.ID,
		Team:    m.Teams[team].Name,
		Points:  points,
		Type:    kind,
		Quarter: m.State.Quarter,
		Clock:   m.State.QuarterTimeRemaining,
	}
	res.Scores = append(res.Scores, ev)
	m.log.WithFields(logrus.Fields{
		"team":   ev.Team,
		"points": points,
		"type":   kind,
		"score":  fmt.Sprintf("%d-%d", m.Score[0], m.Score[1]),
	}).Debug("Score")
}

// changePossession closes the current drive at endPosition and hands the
// ball to the other team at newYardLine on first and ten.
func (m *Match) changePossession(res *PlayResult, result DriveResult, endPosition, newYardLine int) {
	res.Drives = append(res.Drives, m.endDrive(result, endPosition))
	m.Offense = 1 - m.Offense
	m.State.resetSeries(newYardLine)
	m.startDrive()
}

func (m *Match) startDrive() {
	m.drive = drive{
		team:       m.Offense,
		start:      m.State.OffenseYardLine,
		startClock: m.State.Elapsed(),
	}
	m.Teams[m.Offense].FieldPosition = m.State.OffenseYardLine
}

func (m *Match) endDrive(result DriveResult, endPosition int) DriveEvent {
	return DriveEvent{
		MatchID:       m.ID,
		Team:          m.Teams[m.drive.team].Name,
		StartPosition: m.drive.start,
		EndPosition:   endPosition,
		Result:        result,
		Points:        m.drive.points,
		Plays:         m.drive.plays,
		Timestamp:     m.State.Elapsed(),
	}
}

func (m *Match) emit(res PlayResult) {
	m.recorder.RecordPlay(PlayEvent{
		MatchID:  m.ID,
		Number:   res.Number,
		Quarter:  res.Before.Quarter,
		Clock:    res.Before.QuarterTimeRemaining,
		Offense:  res.Offense,
		Defense:  res.Defense,
		Type:     res.Type,
		Yards:    res.Yards,
		Success:  res.Success,
		Down:     res.Before.Down,
		YardLine: res.Before.OffenseYardLine,
	})
	for _, s := range res.Scores {
		m.recorder.RecordScore(s)
	}
	for _, d := range res.Drives {
		m.recorder.RecordDrive(d)
	}
}
