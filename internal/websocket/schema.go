package websocket

import "github.com/lectorank/lectorank-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionRefresh Action = "refresh"
	ActionPing    Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError     Event = "error"
	EventStandings Event = "standings"
	EventPong      Event = "pong"
)

// StandingsResponse carries a full leaderboard snapshot. Sent on connect,
// on explicit refresh, and whenever a cast or cancel changes the board.
type StandingsResponse struct {
	Event     Event                    `json:"event"`
	Lecturers []model.LecturerStanding `json:"lecturers"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
