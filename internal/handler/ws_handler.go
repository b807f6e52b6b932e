package handler

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lectorank/lectorank-backend/internal/config"
	"github.com/lectorank/lectorank-backend/internal/middleware"
	"github.com/lectorank/lectorank-backend/internal/service"
	ws "github.com/lectorank/lectorank-backend/internal/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live leaderboard updates over WebSocket.
type WSHandler struct {
	rdb             *redis.Client
	lecturerService *service.LecturerService
	log             zerolog.Logger
	upgrader        websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, lecturerService *service.LecturerService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:             rdb,
		lecturerService: lecturerService,
		log:             log.With().Str("component", "ws_handler").Logger(),
		upgrader:        buildUpgrader(allowedOrigins),
	}
}

// LeaderboardStream godoc
// WS /ws/v1/leaderboard/stream
// Upgrades to WebSocket and pushes a standings snapshot on connect, on
// client refresh, and whenever a cast or cancel is published.
func (h *WSHandler) LeaderboardStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Str("account_id", claims.AccountID.String()).
		Logger()
	wsLog.Info().Msg("Leaderboard stream connected")

	// The pub/sub goroutine and the read loop both write to the
	// connection; gorilla allows one concurrent writer only.
	var writeMu sync.Mutex

	sub := h.rdb.Subscribe(c.Request.Context(), config.CacheKey.LeaderboardChannel())
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range sub.Channel() {
			h.pushStandings(c, conn, &writeMu, wsLog)
		}
	}()

	h.pushStandings(c, conn, &writeMu, wsLog)

	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionRefresh:
			h.pushStandings(c, conn, &writeMu, wsLog)
		case ws.ActionPing:
			writeMu.Lock()
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			writeMu.Unlock()
		default:
			writeMu.Lock()
			ws.WriteError(conn, "unknown action: "+string(msg.Action))
			writeMu.Unlock()
		}
	}

	sub.Close()
	<-done
}

func (h *WSHandler) pushStandings(c *gin.Context, conn *websocket.Conn, writeMu *sync.Mutex, wsLog zerolog.Logger) {
	standings, err := h.lecturerService.ListLecturers(c.Request.Context(), service.ListLecturersParams{
		SortBy: service.SortByVotes,
		Order:  service.OrderDesc,
	})
	if err != nil {
		wsLog.Error().Err(err).Msg("Standings fetch failed")
		writeMu.Lock()
		ws.WriteError(conn, "standings unavailable")
		writeMu.Unlock()
		return
	}

	writeMu.Lock()
	ws.WriteTyped(conn, ws.StandingsResponse{
		Event:     ws.EventStandings,
		Lecturers: standings,
	})
	writeMu.Unlock()
}
