package streaming

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snow-avocado/brokerage-api/schwab"
)

// mockStreamerServer is a minimal Schwab streaming server for tests: it
// upgrades one connection, captures every frame the client sends, and
// lets the test push arbitrary frames back at the client.
type mockStreamerServer struct {
	server   *httptest.Server
	upgrader websocket.Upgrader

	conn     *websocket.Conn
	received chan map[string]interface{}
}

func newMockStreamerServer(t *testing.T) *mockStreamerServer {
	t.Helper()
	m := &mockStreamerServer{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		received: make(chan map[string]interface{}, 16),
	}
	m.server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.server.Close)
	return m
}

func (m *mockStreamerServer) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	m.conn = conn
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var frame map[string]interface{}
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}
		m.received <- frame
	}
}

func (m *mockStreamerServer) wsURL() string {
	return "ws" + strings.TrimPrefix(m.server.URL, "http") + "/"
}

func (m *mockStreamerServer) sendJSON(t *testing.T, v interface{}) {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, m.conn.WriteMessage(websocket.TextMessage, payload))
}

func loginAck(requestID string, code int) map[string]interface{} {
	return map[string]interface{}{
		"response": []map[string]interface{}{
			{
				"service":   "ADMIN",
				"command":   "LOGIN",
				"requestid": requestID,
				"content":   map[string]interface{}{"code": code, "msg": "ok"},
			},
		},
	}
}

type fakeTokenSource struct{ token string }

func (f fakeTokenSource) CurrentAccessToken() (string, error) { return f.token, nil }

func requestIDOf(t *testing.T, frame map[string]interface{}) float64 {
	t.Helper()
	requests := frame["requests"].([]interface{})
	require.Len(t, requests, 1)
	req := requests[0].(map[string]interface{})
	return req["requestid"].(float64)
}

func startActiveSession(t *testing.T) (*Session, *Receiver, *mockStreamerServer) {
	t.Helper()
	server := newMockStreamerServer(t)
	info := schwab.StreamerInfo{
		StreamerSocketURL:      server.wsURL(),
		SchwabClientCustomerID: "cust-1",
		SchwabClientCorrelID:   "correl-1",
		SchwabClientChannel:    "IO",
		SchwabClientFunctionID: "APIAPP",
	}
	session := NewSession(info, fakeTokenSource{token: "tok"}, nil)

	receiver, err := session.Start(context.Background())
	require.NoError(t, err)

	loginFrame := <-server.received
	reqID := requestIDOf(t, loginFrame)
	assert.Equal(t, float64(0), reqID)

	server.sendJSON(t, loginAck("0", 0))

	require.Eventually(t, func() bool { return session.IsActive() }, time.Second, 5*time.Millisecond)

	return session, receiver, server
}

func TestSession_StartSendsLoginAndBecomesActive(t *testing.T) {
	session, receiver, _ := startActiveSession(t)
	defer session.Stop()
	defer receiver.Close()

	assert.Equal(t, StateActive, session.State())
}

func TestSession_RequestIDsStrictlyIncreasing(t *testing.T) {
	session, receiver, server := startActiveSession(t)
	defer session.Stop()
	defer receiver.Close()

	req1 := LevelOneEquities([]string{"AAPL"}, nil, CommandSubs)
	req2 := LevelOneEquities([]string{"MSFT"}, nil, CommandAdd)
	require.NoError(t, session.Send([]StreamRequest{req1, req2}))

	frame1 := <-server.received
	frame2 := <-server.received
	assert.Equal(t, float64(1), requestIDOf(t, frame1))
	assert.Equal(t, float64(2), requestIDOf(t, frame2))
}

func TestSession_LedgerAddThenSubsOverwrites(t *testing.T) {
	session, receiver, _ := startActiveSession(t)
	defer session.Stop()
	defer receiver.Close()

	add := StreamRequest{Service: ServiceLevelOneEquities, Command: CommandAdd, Keys: []string{"AAPL"}, Fields: []string{"1", "2"}}
	require.NoError(t, session.Send([]StreamRequest{add}))
	fields, ok := session.ledger.fieldsFor(ServiceLevelOneEquities, "AAPL")
	require.True(t, ok)
	assert.Equal(t, []string{"1", "2"}, fields)

	subs := StreamRequest{Service: ServiceLevelOneEquities, Command: CommandSubs, Keys: []string{"AAPL"}, Fields: []string{"5"}}
	require.NoError(t, session.Send([]StreamRequest{subs}))
	fields, ok = session.ledger.fieldsFor(ServiceLevelOneEquities, "AAPL")
	require.True(t, ok)
	assert.Equal(t, []string{"5"}, fields)
}

func TestSession_LedgerAddTwiceUnionsDedupSorts(t *testing.T) {
	session, receiver, _ := startActiveSession(t)
	defer session.Stop()
	defer receiver.Close()

	first := StreamRequest{Service: ServiceLevelOneEquities, Command: CommandAdd, Keys: []string{"AAPL"}, Fields: []string{"3", "1"}}
	require.NoError(t, session.Send([]StreamRequest{first}))

	second := StreamRequest{Service: ServiceLevelOneEquities, Command: CommandAdd, Keys: []string{"AAPL"}, Fields: []string{"1", "2"}}
	require.NoError(t, session.Send([]StreamRequest{second}))

	fields, ok := session.ledger.fieldsFor(ServiceLevelOneEquities, "AAPL")
	require.True(t, ok)
	assert.Equal(t, []string{"1", "2", "3"}, fields)
}

func TestSession_DataFrameDeliveredToReceiver(t *testing.T) {
	session, receiver, server := startActiveSession(t)
	defer session.Stop()

	server.sendJSON(t, map[string]interface{}{
		"data": []map[string]interface{}{
			{
				"service": "LEVELONE_EQUITIES",
				"command": "SUBS",
				"content": []map[string]interface{}{
					{"key": "AAPL", "1": 100.0},
				},
			},
		},
	})

	select {
	case msg := <-receiver.Messages():
		require.Equal(t, KindLevelOneEquity, msg.Kind)
		assert.Equal(t, "AAPL", msg.LevelOneEquity.Symbol)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for data frame")
	}
}

// TestSession_ReceiverCloseStopsReader verifies that once a consumer
// signals it is done reading, the reader goroutine exits at its next
// delivery attempt instead of blocking on a full channel forever.
func TestSession_ReceiverCloseStopsReader(t *testing.T) {
	session, receiver, server := startActiveSession(t)
	defer session.Stop()

	receiver.Close()

	server.sendJSON(t, map[string]interface{}{
		"data": []map[string]interface{}{
			{
				"service": "LEVELONE_EQUITIES",
				"command": "SUBS",
				"content": []map[string]interface{}{
					{"key": "AAPL", "1": 100.0},
				},
			},
		},
	})

	require.Eventually(t, func() bool {
		_, ok := <-receiver.Messages()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestSession_SendBeforeStartFails(t *testing.T) {
	info := schwab.StreamerInfo{StreamerSocketURL: "ws://unused"}
	session := NewSession(info, fakeTokenSource{token: "tok"}, nil)

	err := session.Send([]StreamRequest{LevelOneEquities([]string{"AAPL"}, nil, CommandSubs)})
	require.Error(t, err)

	var notConnected *StreamNotConnectedError
	require.ErrorAs(t, err, &notConnected)
}

// TestSession_ConcurrentSendDoesNotCorruptFrames exercises many
// goroutines calling Send at once: gorilla/websocket allows only one
// writer at a time, so without writeMu serializing the underlying
// conn.WriteMessage calls, interleaved writes would corrupt the frame
// boundary and the server would see a non-JSON or truncated payload.
func TestSession_ConcurrentSendDoesNotCorruptFrames(t *testing.T) {
	session, receiver, server := startActiveSession(t)
	defer session.Stop()
	defer receiver.Close()

	const goroutines = 20
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		symbol := fmt.Sprintf("SYM%d", i)
		go func() {
			defer wg.Done()
			req := LevelOneEquities([]string{symbol}, nil, CommandAdd)
			assert.NoError(t, session.Send([]StreamRequest{req}))
		}()
	}
	wg.Wait()

	seen := make(map[float64]bool, goroutines)
	for i := 0; i < goroutines; i++ {
		select {
		case frame := <-server.received:
			reqID := requestIDOf(t, frame)
			assert.False(t, seen[reqID], "duplicate or corrupted request id %v", reqID)
			seen[reqID] = true
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for frame %d/%d", i+1, goroutines)
		}
	}
	assert.Len(t, seen, goroutines)
}

func TestSession_SendAfterStopFails(t *testing.T) {
	session, receiver, _ := startActiveSession(t)
	defer receiver.Close()

	require.NoError(t, session.Stop())

	err := session.Send([]StreamRequest{LevelOneEquities([]string{"AAPL"}, nil, CommandSubs)})
	require.Error(t, err)

	var notConnected *StreamNotConnectedError
	require.ErrorAs(t, err, &notConnected)
}
