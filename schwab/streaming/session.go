package streaming

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/snow-avocado/brokerage-api/schwab"
)

// StreamNotConnectedError is returned by Send when the session is not
// in the Active state — before Start, or after Stop/a terminal failure.
type StreamNotConnectedError struct{ State State }

func (e *StreamNotConnectedError) Error() string {
	return fmt.Sprintf("streaming: session is not connected (state=%s)", e.State)
}

// accessTokenSource is the subset of *schwab.RestClient a session needs:
// the current bearer token to sign the LOGIN frame. Declared as an
// interface so tests can substitute a fake without a live TokenStore.
type accessTokenSource interface {
	CurrentAccessToken() (string, error)
}

// ledger is the subscription ledger: Service -> SymbolKey -> sorted,
// deduplicated field tags. Guarded by its own mutex, held only across
// the small in-memory mutation, never across network I/O.
type ledger struct {
	mu   sync.Mutex
	byService map[Service]map[string][]string
}

func newLedger() *ledger {
	return &ledger{byService: make(map[Service]map[string][]string)}
}

// record applies one StreamRequest's effect to the ledger, following
// the Add/Subs/Unsubs/no-op rules. It is the Go port of the reference
// session's record_request.
func (l *ledger) record(req StreamRequest) {
	l.mu.Lock()
	defer l.mu.Unlock()

	serviceMap, ok := l.byService[req.Service]
	if !ok {
		serviceMap = make(map[string][]string)
		l.byService[req.Service] = serviceMap
	}

	switch req.Command {
	case CommandAdd:
		for _, key := range req.Keys {
			merged := append(append([]string{}, serviceMap[key]...), req.Fields...)
			serviceMap[key] = sortedDedupStrings(merged)
		}
	case CommandSubs:
		for _, key := range req.Keys {
			serviceMap[key] = sortedDedupStrings(append([]string{}, req.Fields...))
		}
	case CommandUnsubs:
		for _, key := range req.Keys {
			delete(serviceMap, key)
		}
	default:
		// View, Login, Logout: no ledger change.
	}
}

// fieldsFor returns the ledger's current field set for (service, key),
// for tests that assert on ledger state.
func (l *ledger) fieldsFor(service Service, key string) ([]string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	serviceMap, ok := l.byService[service]
	if !ok {
		return nil, false
	}
	fields, ok := serviceMap[key]
	return fields, ok
}

func sortedDedupStrings(v []string) []string {
	seen := make(map[string]struct{}, len(v))
	out := make([]string, 0, len(v))
	for _, s := range v {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sortStrings(out)
	return out
}

// sortStrings is an insertion sort over the small field-tag lists a
// ledger entry holds (at most a few dozen entries); avoids pulling in
// sort.Strings for what is, in practice, always a short slice.
func sortStrings(v []string) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j-1] > v[j]; j-- {
			v[j-1], v[j] = v[j], v[j-1]
		}
	}
}

// Receiver delivers StreamerMessage values off a Session. Close lets a
// consumer signal it is no longer reading; the reader goroutine selects
// on the same internal done channel and exits at its next delivery
// attempt, reproducing the "dropped receiver stops the reader" contract
// that a closed Go channel cannot express as cleanly as a closed mpsc
// channel would.
type Receiver struct {
	messages <-chan StreamerMessage
	done     chan struct{}
	closeOne sync.Once
}

// Messages returns the channel to range/select over.
func (r *Receiver) Messages() <-chan StreamerMessage { return r.messages }

// Close signals the reader that this consumer is no longer reading.
func (r *Receiver) Close() {
	r.closeOne.Do(func() { close(r.done) })
}

// Session owns one WebSocket connection to Schwab's streaming API: the
// subscription ledger, the monotonic request-id counter, the login
// state, and the single reader goroutine that demultiplexes incoming
// frames onto the delivery channel.
type Session struct {
	info   schwab.StreamerInfo
	tokens accessTokenSource
	codec  *MessageCodec
	logger *log.Logger

	mu    sync.Mutex
	state State
	conn  *websocket.Conn

	// writeMu serializes writes to conn. gorilla/websocket permits only
	// one writer at a time; held across the WriteMessage call itself
	// (not just the conn lookup), separately from mu so a slow write
	// never blocks State()/setState() readers.
	writeMu sync.Mutex

	requestID atomic.Int64
	ledger    *ledger
	isActive  atomic.Bool

	out  chan StreamerMessage
	done chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession builds a Session bound to info (the first StreamerInfo
// entry of a GetPreferences response) and tokens (typically a
// *schwab.RestClient), from which the session reads the current access
// token to sign LOGIN.
func NewSession(info schwab.StreamerInfo, tokens accessTokenSource, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		info:   info,
		tokens: tokens,
		codec:  NewMessageCodec(logger),
		logger: logger,
		state:  StateCreated,
		ledger: newLedger(),
	}
}

// State returns the session's current lifecycle stage.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsActive reports whether a LOGIN acknowledgement with code == 0 has
// been received. Readable at any time without blocking on the reader.
func (s *Session) IsActive() bool {
	return s.isActive.Load()
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Start dials the WebSocket, sends the LOGIN frame, and returns a
// Receiver of typed StreamerMessage values. It returns once the LOGIN
// frame has been written, not once the LOGIN acknowledgement arrives —
// IsActive flips to true asynchronously on the reader goroutine.
func (s *Session) Start(ctx context.Context) (*Receiver, error) {
	s.setState(StateConnecting)

	accessToken, err := s.tokens.CurrentAccessToken()
	if err != nil {
		s.setState(StateFailed)
		return nil, fmt.Errorf("streaming: failed to read access token: %w", err)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 30 * time.Second,
		ReadBufferSize:   4096,
		WriteBufferSize:  4096,
	}

	conn, resp, err := dialer.DialContext(ctx, s.info.StreamerSocketURL, http.Header{})
	if err != nil {
		s.setState(StateFailed)
		if resp != nil {
			return nil, fmt.Errorf("streaming: dial failed with HTTP %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("streaming: dial failed: %w", err)
	}
	s.logger.Printf("streaming: connected to %s", s.info.StreamerSocketURL)

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	s.setState(StateLoggingIn)

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.out = make(chan StreamerMessage, 100)
	s.done = make(chan struct{})

	loginParams := map[string]interface{}{
		"qoslevel":               "0",
		"Authorization":          accessToken,
		"SchwabClientChannel":    s.info.SchwabClientChannel,
		"SchwabClientFunctionId": s.info.SchwabClientFunctionID,
	}
	if err := s.writeFrame(ServiceAdmin, CommandLogin, loginParams); err != nil {
		s.setState(StateFailed)
		conn.Close()
		return nil, fmt.Errorf("streaming: failed to send LOGIN frame: %w", err)
	}

	go s.readLoop()

	return &Receiver{messages: s.out, done: s.done}, nil
}

// Send emits each StreamRequest as its own outbound frame, in order,
// recording the ledger effect before writing the frame. Only callable
// while the session is Active.
func (s *Session) Send(requests []StreamRequest) error {
	if s.State() != StateActive {
		return &StreamNotConnectedError{State: s.State()}
	}

	for _, req := range requests {
		s.ledger.record(req)

		params := map[string]interface{}{
			"keys":   joinComma(req.Keys),
			"fields": joinComma(req.Fields),
		}
		if err := s.writeFrame(req.Service, req.Command, params); err != nil {
			return fmt.Errorf("streaming: failed to send %s %s: %w", req.Service, req.Command, err)
		}
	}
	return nil
}

// Stop closes the WebSocket writer and stops the reader goroutine.
func (s *Session) Stop() error {
	s.setState(StateClosing)

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	var err error
	if conn != nil {
		s.writeMu.Lock()
		err = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		s.writeMu.Unlock()
		conn.Close()
	}
	s.setState(StateClosed)
	return err
}

func (s *Session) writeFrame(service Service, command Command, parameters interface{}) error {
	requestID := s.requestID.Add(1) - 1

	frame := map[string]interface{}{
		"requests": []map[string]interface{}{
			{
				"service":                string(service),
				"command":                string(command),
				"requestid":              requestID,
				"parameters":             parameters,
				"SchwabClientCustomerId": s.info.SchwabClientCustomerID,
				"SchwabClientCorrelId":   s.info.SchwabClientCorrelID,
			},
		},
	}

	payload, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("streaming: failed to marshal frame: %w", err)
	}

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return &StreamNotConnectedError{State: s.State()}
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// readLoop is the single reader goroutine: it owns the read half of the
// connection exclusively, decodes each frame via the codec, applies
// command acknowledgements to session state, and delivers typed
// messages to the bounded output channel, honoring backpressure and the
// receiver's done signal.
func (s *Session) readLoop() {
	defer func() {
		s.setState(StateClosed)
		close(s.out)
	}()

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			s.logger.Printf("streaming: read error, terminating session: %v", err)
			return
		}

		responses, messages, err := s.codec.Decode(raw)
		if err != nil {
			s.logger.Printf("streaming: failed to decode frame: %v", err)
			continue
		}

		for _, resp := range responses {
			s.handleCommandResponse(resp)
		}

		for _, msg := range messages {
			// Check done first: with buffer space free, the select below
			// would otherwise pick between send and done at random.
			select {
			case <-s.done:
				s.logger.Printf("streaming: receiver closed, stopping reader")
				return
			default:
			}
			select {
			case s.out <- msg:
			case <-s.done:
				s.logger.Printf("streaming: receiver closed, stopping reader")
				return
			case <-s.ctx.Done():
				return
			}
		}
	}
}

func (s *Session) handleCommandResponse(resp commandResponse) {
	switch Command(resp.Command) {
	case CommandLogin:
		if resp.Content.Code == 0 {
			s.isActive.Store(true)
			s.setState(StateActive)
		}
		s.logger.Printf("streaming: LOGIN response code=%d msg=%q", resp.Content.Code, resp.Content.Msg)
	case CommandAdd, CommandSubs, CommandUnsubs:
		s.logger.Printf("streaming: subscription response service=%s command=%s", resp.Service, resp.Command)
	default:
		s.logger.Printf("streaming: command response service=%s command=%s", resp.Service, resp.Command)
	}
}

func joinComma(v []string) string {
	out := ""
	for i, s := range v {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}
