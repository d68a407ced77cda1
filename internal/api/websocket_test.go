package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zerim-todo/internal/config"
	"zerim-todo/internal/events"
	"zerim-todo/internal/logging"
	"zerim-todo/internal/store"
	"zerim-todo/internal/tasks"
	"zerim-todo/internal/templates"
	"zerim-todo/internal/timetracking"
)

func TestWebSocketEventFeed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := logging.NewLogger(logging.ERROR, true)
	memStore := store.NewMemoryStore()
	taskService := tasks.NewService(memStore)

	hub := events.NewHub(logger)
	go hub.Run(ctx)

	router := NewRouter(Deps{
		Config:       config.DefaultConfig(),
		Logger:       logger,
		Store:        memStore,
		Tasks:        taskService,
		Templates:    templates.NewService(memStore, taskService),
		TimeTracking: timetracking.NewService(memStore),
		Hub:          hub,
	})
	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	defer func() { _ = conn.Close() }()

	// The welcome event confirms the client is registered before any task
	// activity happens.
	var welcome events.Event
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, "connection", welcome.Type)
	assert.Equal(t, "connected", welcome.Action)

	created := doJSON(t, http.MethodPost, server.URL+"/api/tasks", map[string]interface{}{
		"title": "broadcast me",
	})
	require.Equal(t, http.StatusCreated, created.StatusCode)
	_ = created.Body.Close()

	var event events.Event
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "task", event.Type)
	assert.Equal(t, events.ActionCreated, event.Action)
	assert.NotEmpty(t, event.TaskID)
}
