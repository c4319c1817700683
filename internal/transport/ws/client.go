package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"suspects/internal/app"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10 // must stay below pongWait
	maxMessageSize = 4096
	sendBufferSize = 256
)

// command handles one client message type. The payload may be empty.
type command func(c *Client, payload json.RawMessage) error

var commands = map[MessageType]command{
	MsgJoinLobby:    (*Client).joinLobby,
	MsgStartGame:    (*Client).startGame,
	MsgCastVote:     (*Client).castVote,
	MsgAdvancePhase: (*Client).advancePhase,
	MsgResetRoom:    (*Client).resetRoom,
	MsgPing:         (*Client).ping,
}

// Client is one player's WebSocket connection to a room
type Client struct {
	conn     *websocket.Conn
	session  *app.GameSession
	playerID string
	limiter  *rate.Limiter // nil disables rate limiting
	logger   *slog.Logger

	outbox chan []byte
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewClient wires a connection to a session
func NewClient(conn *websocket.Conn, session *app.GameSession, playerID string, limiter *rate.Limiter, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		session:  session,
		playerID: playerID,
		limiter:  limiter,
		logger:   logger.With("roomCode", session.GetRoomCode(), "playerID", playerID),
		outbox:   make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
	}
}

func (c *Client) GetPlayerID() string {
	return c.playerID
}

// Send queues a message for the write pump. A slow reader loses messages
// rather than stalling the room's event loop.
func (c *Client) Send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.outbox <- data:
	default:
		c.logger.Warn("outbox full, dropping message", "queued", len(c.outbox))
	}
	return nil
}

// Close is idempotent
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	close(c.done)
	c.writeClose()
	return c.conn.Close()
}

// Run blocks until the connection ends
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer c.leave()

	c.conn.SetReadLimit(maxMessageSize)
	c.extendReadDeadline()
	c.conn.SetPongHandler(func(string) error {
		c.extendReadDeadline()
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("connection lost", "error", err)
			}
			return
		}

		if c.limiter != nil && !c.limiter.Allow() {
			c.reply(MsgError, &ErrorPayload{Code: ErrCodeRateLimited, Message: "Too many messages"})
			continue
		}

		c.dispatch(data)
	}
}

// leave detaches the client from its session. A newer connection for the
// same player keeps the seat.
func (c *Client) leave() {
	if c.session.UnregisterClient(c.playerID, c) {
		c.session.DisconnectPlayer(c.playerID)
	}
	c.Close()
}

func (c *Client) extendReadDeadline() {
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case first := <-c.outbox:
			if err := c.writeBatch(first); err != nil {
				c.logger.Debug("write failed", "error", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// writeBatch sends first plus whatever is already queued as one text frame,
// one JSON document per line
func (c *Client) writeBatch(first []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	w, err := c.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}
	w.Write(first)

	for n := len(c.outbox); n > 0; n-- {
		w.Write([]byte{'\n'})
		w.Write(<-c.outbox)
	}

	return w.Close()
}

// writeClose says goodbye; gorilla allows control frames alongside the write pump
func (c *Client) writeClose() {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

func (c *Client) dispatch(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.reply(MsgError, &ErrorPayload{Code: ErrCodeInvalidMessage, Message: "Invalid message format"})
		return
	}

	handle, ok := commands[msg.Type]
	if !ok {
		c.reply(MsgError, &ErrorPayload{Code: ErrCodeInvalidMessage, Message: "Unknown message type"})
		return
	}

	if err := handle(c, msg.Payload); err != nil {
		c.logger.Debug("command rejected", "type", msg.Type, "error", err)
		c.reply(MsgError, errorPayload(err))
	}
}

func (c *Client) joinLobby(raw json.RawMessage) error {
	var payload JoinLobbyPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &payloadError{message: "Invalid payload"}
	}

	if _, err := c.session.AddPlayer(c.playerID, payload.Nickname, payload.Color, payload.Wallet); err != nil {
		return err
	}

	c.sendConnected()
	return nil
}

func (c *Client) castVote(raw json.RawMessage) error {
	var payload CastVotePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &payloadError{message: "Invalid payload"}
	}
	if !payload.Kind.IsValid() || payload.Target == "" {
		return &payloadError{message: "Vote kind and target are required"}
	}

	return c.session.CastVote(payload.Kind, c.playerID, payload.Target)
}

func (c *Client) startGame(json.RawMessage) error {
	return c.session.StartGame(c.playerID)
}

func (c *Client) advancePhase(json.RawMessage) error {
	return c.session.AdvancePhase(c.playerID)
}

// resetRoom empties the roster; this connection stays open and may join again
func (c *Client) resetRoom(json.RawMessage) error {
	c.session.Reset()
	return nil
}

func (c *Client) ping(json.RawMessage) error {
	c.reply(MsgPong, nil)
	return nil
}

// sendConnected confirms the seat and carries this player's view of the room
func (c *Client) sendConnected() {
	c.reply(MsgConnected, &ConnectedPayload{
		PlayerID:  c.playerID,
		GameID:    c.session.GetRoomCode(),
		GameState: c.session.GetGameState(c.playerID),
	})
}

func (c *Client) reply(msgType MessageType, payload interface{}) {
	if err := c.Send(NewServerMessage(msgType, payload)); err != nil {
		c.logger.Error("failed to encode reply", "type", msgType, "error", err)
	}
}
