package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

const maxMessageSize = 1 << 16

// WSChannel carries binary messages over a WebSocket connection.
type WSChannel struct {
	conn         *websocket.Conn
	writeTimeout time.Duration
}

func NewWSChannel(conn *websocket.Conn, writeTimeout time.Duration) *WSChannel {
	conn.SetReadLimit(maxMessageSize)
	return &WSChannel{conn: conn, writeTimeout: writeTimeout}
}

// DialWS connects to a host listening at url.
func DialWS(ctx context.Context, url string, writeTimeout time.Duration) (*WSChannel, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return NewWSChannel(conn, writeTimeout), nil
}

// AcceptWS upgrades an incoming HTTP request.
func AcceptWS(w http.ResponseWriter, r *http.Request, writeTimeout time.Duration) (*WSChannel, error) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return nil, fmt.Errorf("accept: %w", err)
	}
	return NewWSChannel(conn, writeTimeout), nil
}

func (c *WSChannel) Send(b []byte) error {
	ctx := context.Background()
	if c.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.writeTimeout)
		defer cancel()
	}
	return wsError(c.conn.Write(ctx, websocket.MessageBinary, b))
}

func (c *WSChannel) Receive(ctx context.Context) ([]byte, error) {
	_, b, err := c.conn.Read(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, wsError(err)
	}
	return b, nil
}

func (c *WSChannel) Close() error {
	err := c.conn.Close(websocket.StatusNormalClosure, "")
	if err != nil && websocket.CloseStatus(err) == -1 && !errors.Is(err, net.ErrClosed) {
		_ = c.conn.CloseNow()
		return err
	}
	return nil
}

func wsError(err error) error {
	if err == nil {
		return nil
	}
	if websocket.CloseStatus(err) != -1 || errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return err
}
