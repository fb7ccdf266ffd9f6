// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import (
	"context"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketConnector reaches the server over Twitch's WSS chat gateway
// (wss://irc-ws.chat.twitch.tv:443), for environments where a raw TCP
// connection is blocked but HTTPS isn't.
type WebSocketConnector struct {
	URL     string
	Timeout time.Duration
}

// Connect implements Connector.
func (c WebSocketConnector) Connect(ctx context.Context) (net.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: c.timeout()}
	ws, _, err := dialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		return nil, IOError{Cause: err}
	}
	return newWSConn(ws), nil
}

func (c WebSocketConnector) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultDialTimeout
	}
	return c.Timeout
}

// wsConn adapts a *websocket.Conn's message framing to the net.Conn byte
// stream the Decoder and Encoder expect, so the rest of the client never
// needs to know the transport is a WebSocket rather than a TCP socket.
type wsConn struct {
	ws *websocket.Conn

	mu  sync.Mutex
	buf []byte
}

func newWSConn(ws *websocket.Conn) *wsConn {
	return &wsConn{ws: ws}
}

// Read implements io.Reader, pulling one WebSocket text message at a time
// and doling it out across possibly-multiple Read calls. Twitch always
// terminates the text it puts in a frame with CRLF; a frame missing one
// gets one appended so the Decoder's ReadString('\n') never stalls on it.
func (c *wsConn) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.buf) == 0 {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return 0, err
		}
		if !strings.HasSuffix(string(data), "\n") {
			data = append(data, '\r', '\n')
		}
		c.buf = data
	}

	n := copy(p, c.buf)
	c.buf = c.buf[n:]
	return n, nil
}

// Write implements io.Writer, sending p as a single WebSocket text message.
func (c *wsConn) Write(p []byte) (int, error) {
	if err := c.ws.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsConn) Close() error { return c.ws.Close() }

func (c *wsConn) LocalAddr() net.Addr  { return c.ws.LocalAddr() }
func (c *wsConn) RemoteAddr() net.Addr { return c.ws.RemoteAddr() }

func (c *wsConn) SetDeadline(t time.Time) error {
	if err := c.ws.SetReadDeadline(t); err != nil {
		return err
	}
	return c.ws.SetWriteDeadline(t)
}

func (c *wsConn) SetReadDeadline(t time.Time) error  { return c.ws.SetReadDeadline(t) }
func (c *wsConn) SetWriteDeadline(t time.Time) error { return c.ws.SetWriteDeadline(t) }
