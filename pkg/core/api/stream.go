/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	streamBufferSize = 64
	streamPingPeriod = 30 * time.Second
	streamWriteWait  = 10 * time.Second
)

// handleLogStream upgrades the connection and pushes each new log record
// to the client as JSON until the client disconnects.
func (s *APIServer) handleLogStream(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return s.checkWebSocketOrigin(r)
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("remote_addr", r.RemoteAddr).
			Str("origin", r.Header.Get("Origin")).
			Msg("Failed to upgrade to WebSocket")

		return
	}

	s.logger.Info().
		Str("remote_addr", r.RemoteAddr).
		Msg("Log stream client connected")

	defer func() {
		s.logger.Debug().
			Str("remote_addr", r.RemoteAddr).
			Msg("Closing log stream connection")
		conn.Close()
	}()

	records, cancelSub := s.core.SubscribeLogs(streamBufferSize)
	defer cancelSub()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go watchClientClose(conn, cancel)

	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case rec, ok := <-records:
			if !ok {
				return
			}

			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))

			if err := conn.WriteJSON(rec); err != nil {
				s.logger.Debug().
					Err(err).
					Str("remote_addr", r.RemoteAddr).
					Msg("Log stream write failed")

				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))

			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// watchClientClose drains client frames so close frames are processed and
// cancels the stream once the connection drops.
func watchClientClose(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// checkWebSocketOrigin validates the upgrade origin against the CORS
// configuration. Absent origins (non-browser clients) are allowed.
func (s *APIServer) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if len(s.corsConfig.AllowedOrigins) == 0 {
		return true
	}

	for _, allowed := range s.corsConfig.AllowedOrigins {
		if allowed == origin || allowed == "*" {
			return true
		}
	}

	return false
}
