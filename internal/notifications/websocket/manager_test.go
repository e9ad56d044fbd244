package websocket

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
	"go.uber.org/zap"

	"carbon-scribe/project-portal/boundary-importer/internal/notifications"
)

func newTestServer(t *testing.T) (*Manager, *httptest.Server) {
	t.Helper()
	m := NewManager(zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = m.HandleConnection(w, r)
	}))
	t.Cleanup(func() {
		srv.Close()
		m.Close()
	})
	return m, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestManager_NotifyReachesClient(t *testing.T) {
	m, srv := newTestServer(t)
	conn := dial(t, srv)

	require.Eventually(t, func() bool { return m.GetConnectionCount() == 1 }, time.Second, 10*time.Millisecond)

	m.Notify(context.Background(), notifications.Event{Title: notifications.TitleImportSuccess, Detail: "field.kml"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg notifications.WebSocketMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, notifications.MessageTypeImport, msg.Type)
	assert.Equal(t, "import success", msg.Payload.Title)
	assert.Equal(t, "field.kml", msg.Payload.Detail)
}

func TestManager_ClientDisconnectUnregisters(t *testing.T) {
	m, srv := newTestServer(t)
	conn := dial(t, srv)

	require.Eventually(t, func() bool { return m.GetConnectionCount() == 1 }, time.Second, 10*time.Millisecond)
	conn.Close()

	assert.Eventually(t, func() bool { return m.GetConnectionCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestManager_NotifyWithoutClients(t *testing.T) {
	m, _ := newTestServer(t)

	assert.NotPanics(t, func() {
		m.Notify(context.Background(), notifications.Event{Title: notifications.TitleError, Detail: "boom"})
	})
}
