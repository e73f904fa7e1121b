package model

// Movement compares a team's rank with its rank in the previous snapshot.
type Movement string

const (
	MovementUp   Movement = "up"
	MovementDown Movement = "down"
	MovementSame Movement = "same"
)

// StandingsEntry is one row of a standings table.
type StandingsEntry struct {
	TeamName      string
	Wins          int
	Losses        int
	PointsFor     float64
	PointsAgainst float64
	PointsDiff    float64
	Games         int
	Pool          string
	Rank          int
	Movement      Movement
}

// WinPct is wins over games played; ties stay in the denominator. Zero games gives 0.
func (s StandingsEntry) WinPct() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// AvgPoints is points scored per game, 0 before the first game.
func (s StandingsEntry) AvgPoints() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.PointsFor / float64(s.Games)
}

// GameSide is one team's final score in a game.
type GameSide struct {
	Team   string
	Points float64
}

// GameResult is a completed game between two sides.
type GameResult struct {
	GameID string
	Home   GameSide
	Away   GameSide
}
