package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/projecthub/internal/app/models"
)

type fakeAuthorizer struct {
	allowed map[int64]bool
}

func (f fakeAuthorizer) CanAccessGroup(_ context.Context, groupID, _ int64, _ models.Role) (bool, error) {
	return f.allowed[groupID], nil
}

type countingObserver struct {
	connected, disconnected, emitted atomic.Int64
}

func (o *countingObserver) ClientConnected()    { o.connected.Add(1) }
func (o *countingObserver) ClientDisconnected() { o.disconnected.Add(1) }
func (o *countingObserver) EventEmitted(string) { o.emitted.Add(1) }

type testServer struct {
	hub      *Hub
	server   *httptest.Server
	observer *countingObserver
}

func newTestServer(t *testing.T, allowedGroups map[int64]bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	obs := &countingObserver{}
	hub := NewHub(zerolog.Nop(), obs)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	handler := NewHandler(hub, fakeAuthorizer{allowed: allowedGroups}, []string{"*"}, zerolog.Nop())
	r := gin.New()
	// identity normally comes from the JWT middleware
	r.GET("/ws", func(c *gin.Context) {
		c.Set("userID", int64(7))
		c.Set("roleType", c.Query("role"))
		c.Next()
	}, handler.HandleConnection)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return &testServer{hub: hub, server: srv, observer: obs}
}

func (ts *testServer) dial(t *testing.T, role string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.server.URL, "http") + "/ws?role=" + role
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Frame{Event: event, Data: raw}))
}

func read(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var f Frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestRoomNames(t *testing.T) {
	assert.Equal(t, "user:student:5", UserRoom(models.RoleStudent, 5))
	assert.Equal(t, "user:faculty:3", UserRoom(models.RoleFaculty, 3))
	assert.Equal(t, "group:12", GroupRoom(12))
}

func TestJoinUserAndReceiveNotification(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := ts.dial(t, "student")

	send(t, conn, ActionJoinUser, map[string]any{"userId": 7, "userRole": "student"})
	joined := read(t, conn)
	assert.Equal(t, EventJoined, joined.Event)

	ts.hub.Emit(UserRoom(models.RoleStudent, 7), EventNotification, map[string]any{
		"title": "Group Invitation", "message": "You have been invited", "link": "/dashboard/student/invitations",
	})

	f := read(t, conn)
	assert.Equal(t, EventNotification, f.Event)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(f.Data, &payload))
	assert.Equal(t, "Group Invitation", payload["title"])
	assert.Len(t, payload, 3)
}

func TestJoinUserRejectsOtherIdentity(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := ts.dial(t, "student")

	send(t, conn, ActionJoinUser, map[string]any{"userId": 8, "userRole": "student"})
	f := read(t, conn)
	assert.Equal(t, EventError, f.Event)
	assert.Equal(t, 0, ts.hub.RoomSize(UserRoom(models.RoleStudent, 8)))

	// same id under another role is another account
	send(t, conn, ActionJoinUser, map[string]any{"userId": 7, "userRole": "faculty"})
	assert.Equal(t, EventError, read(t, conn).Event)
}

func TestJoinGroupAuthorizationAndLeave(t *testing.T) {
	ts := newTestServer(t, map[int64]bool{12: true})
	conn := ts.dial(t, "faculty")

	send(t, conn, ActionJoinGroup, map[string]any{"groupId": 13})
	assert.Equal(t, EventError, read(t, conn).Event)

	send(t, conn, ActionJoinGroup, map[string]any{"groupId": 12})
	assert.Equal(t, EventJoined, read(t, conn).Event)
	assert.Equal(t, 1, ts.hub.RoomSize(GroupRoom(12)))

	ts.hub.Emit(GroupRoom(12), EventDiscussionMessage, map[string]any{"message_id": 1, "content": "hello"})
	assert.Equal(t, EventDiscussionMessage, read(t, conn).Event)

	send(t, conn, ActionLeaveGroup, map[string]any{"groupId": 12})
	assert.Eventually(t, func() bool { return ts.hub.RoomSize(GroupRoom(12)) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestUnknownEventAndMalformedFrame(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := ts.dial(t, "admin")

	send(t, conn, "join:everything", map[string]any{})
	assert.Equal(t, EventError, read(t, conn).Event)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	assert.Equal(t, EventError, read(t, conn).Event)
}

func TestDisconnectRemovesClientFromAllRooms(t *testing.T) {
	ts := newTestServer(t, map[int64]bool{1: true, 2: true})
	conn := ts.dial(t, "admin")

	send(t, conn, ActionJoinGroup, map[string]any{"groupId": 1})
	read(t, conn)
	send(t, conn, ActionJoinGroup, map[string]any{"groupId": 2})
	read(t, conn)
	require.Equal(t, 1, ts.hub.ClientCount())

	conn.Close()
	assert.Eventually(t, func() bool {
		return ts.hub.ClientCount() == 0 && ts.hub.RoomSize(GroupRoom(1)) == 0 && ts.hub.RoomSize(GroupRoom(2)) == 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(1), ts.observer.disconnected.Load())
}

func TestUnauthenticatedUpgradeRejected(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.server.URL + "/ws?role=nobody")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSlowClientIsDropped(t *testing.T) {
	hub := NewHub(zerolog.Nop(), nil)
	client := &Client{hub: hub, send: make(chan []byte, 1), userID: 1, role: models.RoleStudent}
	require.True(t, hub.registerClient(client))
	hub.Join(client, "group:1")

	hub.deliver(outbound{room: "group:1", event: "x", data: []byte("1")})
	hub.deliver(outbound{room: "group:1", event: "x", data: []byte("2")})

	assert.Equal(t, 0, hub.ClientCount())
	assert.Equal(t, 0, hub.RoomSize("group:1"))
	<-client.send
	_, open := <-client.send
	assert.False(t, open)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:3000"})
	req := httptest.NewRequest("GET", "/ws", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://evil.example")
	assert.False(t, check(req))

	assert.True(t, originChecker(nil)(req))
}
