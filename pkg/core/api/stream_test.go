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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
	"github.com/carverauto/cloudpulse/pkg/store"
)

func wsURL(t *testing.T, srv *httptest.Server, path string) string {
	t.Helper()

	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestLogStreamPushesRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	core := NewMockCoreService(ctrl)

	st := store.New(100)
	subscribed := make(chan struct{})

	core.EXPECT().SubscribeLogs(streamBufferSize).
		DoAndReturn(func(buffer int) (<-chan models.LogRecord, func()) {
			ch, cancel := st.SubscribeLogs(buffer)
			close(subscribed)

			return ch, cancel
		})

	server := NewAPIServer(core, models.CORSConfig{}, logger.NewTestLogger())
	srv := httptest.NewServer(server.Router())
	defer srv.Close()

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(t, srv, "/api/logs/stream"), nil)
	require.NoError(t, err)

	defer conn.Close()

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-subscribed:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never subscribed to the log stream")
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	st.AppendLog(models.LogRecord{
		ID:        "first",
		Level:     models.LogLevelInfo,
		Message:   "Health check passed",
		Service:   "api-gateway",
		Timestamp: now,
	})
	st.AppendLog(models.LogRecord{
		ID:        "second",
		Level:     models.LogLevelError,
		Message:   "Database connection failed",
		Service:   "database",
		Timestamp: now.Add(time.Second),
	})

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))

	var rec models.LogRecord
	require.NoError(t, conn.ReadJSON(&rec))
	assert.Equal(t, "first", rec.ID)
	assert.Equal(t, models.LogLevelInfo, rec.Level)

	require.NoError(t, conn.ReadJSON(&rec))
	assert.Equal(t, "second", rec.ID)
	assert.Equal(t, models.LogLevelError, rec.Level)
	assert.Equal(t, "database", rec.Service)
}

func TestLogStreamRejectsUnpermittedOrigin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	core := NewMockCoreService(ctrl)

	corsConfig := models.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}
	server := NewAPIServer(core, corsConfig, logger.NewTestLogger())
	srv := httptest.NewServer(server.Router())
	defer srv.Close()

	header := http.Header{}
	header.Set("Origin", "http://evil.example")

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(t, srv, "/api/logs/stream"), header)
	require.Error(t, err)

	if conn != nil {
		conn.Close()
	}

	if resp != nil {
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	}
}

func TestCheckWebSocketOrigin(t *testing.T) {
	server := &APIServer{
		corsConfig: models.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		logger:     logger.NewTestLogger(),
	}

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"no origin header", "", true},
		{"allowed origin", "http://localhost:3000", true},
		{"unpermitted origin", "http://evil.example", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/logs/stream", http.NoBody)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}

			assert.Equal(t, tc.want, server.checkWebSocketOrigin(req))
		})
	}
}
