// internal/handlers/match_ws.go
package handlers

import (
	"net/http"
	"os"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/spadearena/spades/internal/auth"
	"github.com/spadearena/spades/internal/middleware"
)

// MatchWSHandler upgrades the connection to a spectator WebSocket for a
// specific match: /match/ws/{match_id}?token=...
//
// The feed carries only public events; seat-private data never reaches
// this endpoint.
func MatchWSHandler(logger *logrus.Logger, s *Server) http.HandlerFunc {
	authRequired := strings.EqualFold(os.Getenv("AUTH_REQUIRED"), "true")

	return func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/match/ws/")
		if i := strings.IndexByte(idStr, '/'); i >= 0 {
			idStr = idStr[:i]
		}
		matchID, err := uuid.Parse(idStr)
		if err != nil {
			http.Error(w, "invalid match_id (/match/ws/{match_id})", http.StatusBadRequest)
			return
		}
		if _, ok := s.Matches.Get(matchID); !ok {
			http.Error(w, "match not found", http.StatusNotFound)
			return
		}

		if authRequired {
			sub, err := auth.AuthenticateSpectatorToken(r.URL.Query().Get("token"))
			if err != nil || sub != matchID.String() {
				http.Error(w, "invalid spectator token", http.StatusUnauthorized)
				return
			}
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"spectate"},
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.Warnf("WebSocket accept error for match %s: %v", matchID, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler exit")
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)

		f := s.feedFor(matchID)
		replay, ch := f.subscribe()
		defer f.unsubscribe(ch)

		ctx := r.Context()
		for _, ev := range replay {
			if err := wsjson.Write(ctx, c, ev); err != nil {
				middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, err)
				return
			}
		}
		for {
			select {
			case <-ctx.Done():
				middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, nil)
				c.Close(websocket.StatusNormalClosure, "client gone")
				return
			case ev := <-ch:
				if err := wsjson.Write(ctx, c, ev); err != nil {
					middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, err)
					return
				}
			}
		}
	}
}
