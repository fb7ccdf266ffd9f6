// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"

	"github.com/partyline/twitchirc/internal/taskgroup"
)

// DefaultTLSAddress and DefaultAddress are Twitch's standard chat gateway
// endpoints.
const (
	DefaultTLSAddress = "irc.chat.twitch.tv:6697"
	DefaultAddress    = "irc.chat.twitch.tv:6667"
)

// Config configures a Client. Fields affecting the dial process are only
// consulted when Connector is nil.
type Config struct {
	// Server is the "host:port" to dial. Defaults to DefaultTLSAddress when
	// TLS is true, DefaultAddress otherwise.
	Server string
	// TLS dials over TLS when Connector is nil. Left at its zero value
	// (false), the client dials plain TCP.
	TLS bool
	// TLSConfig is an optional *tls.Config for the TLS dial.
	TLSConfig *tls.Config
	// Connector overrides how the client obtains its byte stream. Set this
	// to use a WebSocketConnector or SOCKSConnector instead of raw TCP/TLS.
	Connector Connector

	// Nick is the connection's nickname. For an anonymous, read-only
	// connection, use one of Twitch's "justinfanNNNNN" names and leave
	// Token empty.
	Nick string
	// Token is the account's OAuth token, in "oauth:..." form. Empty sends
	// no PASS; whether the connection is anonymous is decided by Nick.
	Token string
	// Capabilities are the IRCv3 capabilities to request at registration.
	// Defaults to membership+tags+commands if nil.
	Capabilities []Capability
	// UseSASL negotiates SASL PLAIN instead of a plain PASS, when
	// CapabilitySASL is included in Capabilities.
	UseSASL bool

	// Logger receives structured connection/protocol events. Defaults to a
	// logrus.Logger with the teacher's nested-field formatter.
	Logger *logrus.Logger
}

func (cfg *Config) setDefaults() {
	if cfg.Capabilities == nil {
		cfg.Capabilities = []Capability{CapabilityMembership, CapabilityTags, CapabilityCommands}
	}
	if cfg.Server == "" {
		if cfg.TLS {
			cfg.Server = DefaultTLSAddress
		} else {
			cfg.Server = DefaultAddress
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
		cfg.Logger.SetFormatter(&nested.Formatter{
			HideKeys:    true,
			FieldsOrder: []string{"component", "channel", "nick"},
		})
	}
}

func (cfg Config) isValid() error {
	if cfg.Nick == "" {
		return InvalidConfigError{Reason: "empty nick"}
	}
	if cfg.Connector == nil && cfg.Server == "" {
		return InvalidConfigError{Reason: "empty server"}
	}
	return nil
}

func (cfg Config) connector() Connector {
	if cfg.Connector != nil {
		return cfg.Connector
	}
	if cfg.TLS {
		return TLSConnector{Address: cfg.Server, Config: cfg.TLSConfig}
	}
	return TCPConnector{Address: cfg.Server}
}

func (cfg Config) handshakeConfig() HandshakeConfig {
	return HandshakeConfig{
		Nick:         cfg.Nick,
		Token:        cfg.Token,
		Capabilities: cfg.Capabilities,
		UseSASL:      cfg.UseSASL,
	}
}

// Client is a single Twitch IRC chat connection: dial, register, then read
// and send typed commands against it until Close or a fatal error.
//
// Client plays the role the teacher's Client does in conn.go/client.go,
// but delegates I/O to Decoder/Encoder, registration to DoHandshake, and
// its background goroutines to a taskgroup.Group instead of embedding
// them as Client methods directly.
type Client struct {
	config Config
	log    *logrus.Entry

	mu         sync.RWMutex
	conn       net.Conn
	dec        *Decoder
	enc        *Encoder
	dispatcher *Dispatcher
	supervisor *Supervisor
	identity   Identity
	missed     []IrcMessage

	group  *taskgroup.Group
	cancel context.CancelFunc
}

// New validates config and returns a Client ready to Connect.
func New(config Config) (*Client, error) {
	config.setDefaults()
	if err := config.isValid(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		log:    config.Logger.WithField("component", "client"),
	}, nil
}

// Identity returns the identity the handshake produced. Only valid after
// Connect returns successfully.
func (c *Client) Identity() Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.identity
}

// Missed returns the frames read during the handshake that weren't part of
// registration itself (e.g. a JOIN echoed back before 001 arrived).
func (c *Client) Missed() []IrcMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.missed
}

// Connect dials the server, completes registration, and starts the
// background read/keepalive loops. It blocks until ctx is canceled or a
// background task returns an error (a dropped connection, a protocol
// timeout, or a server RECONNECT).
func (c *Client) Connect(ctx context.Context) error {
	conn, err := c.config.connector().Connect(ctx)
	if err != nil {
		return fmt.Errorf("connecting: %w", err)
	}

	dec := NewDecoder(conn)
	enc := NewEncoder(conn)

	identity, missed, err := DoHandshake(ctx, dec, enc, c.config.handshakeConfig())
	if err != nil {
		conn.Close()
		return fmt.Errorf("handshake: %w", err)
	}
	c.log.WithField("nick", identity.Nick()).Info("registered")

	dispatcher := NewDispatcher(dec)
	supervisor := NewSupervisor()
	dispatcher.OnFrame = func(cmd AllCommands) {
		supervisor.Activity()
		c.log.WithField("kind", cmd.Kind.String()).Debug("received frame")
	}

	c.mu.Lock()
	c.conn = conn
	c.dec = dec
	c.enc = enc
	c.dispatcher = dispatcher
	c.supervisor = supervisor
	c.identity = identity
	c.missed = missed
	c.mu.Unlock()

	defer conn.Close()

	group, gctx := taskgroup.New(ctx)
	c.mu.Lock()
	c.group = group
	c.cancel = func() { group.Cancel() }
	c.mu.Unlock()

	group.Go(func(ctx context.Context) error { return dispatcher.Pump(ctx) })
	group.Go(func(ctx context.Context) error { return supervisor.Run(ctx) })
	group.Go(func(ctx context.Context) error { return c.pingLoop(ctx, enc, supervisor) })
	// Closing the connection on cancel unblocks Pump's pending read.
	group.Go(func(ctx context.Context) error {
		<-ctx.Done()
		conn.Close()
		return nil
	})

	_ = gctx
	return group.Wait()
}

// pingLoop answers the Supervisor's self-initiated keepalive requests with
// an actual PING to the server.
func (c *Client) pingLoop(ctx context.Context, enc *Encoder, sup *Supervisor) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sup.PingRequests():
			if err := enc.Encode(PingCommand{Token: "tmi.twitch.tv"}); err != nil {
				return err
			}
		}
	}
}

// Close stops the client's background loops and closes the connection.
func (c *Client) Close() error {
	c.mu.RLock()
	cancel := c.cancel
	conn := c.conn
	c.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		return conn.Close()
	}
	return nil
}

// Send writes a single command to the connection.
func (c *Client) Send(cmd Encodable) error {
	c.mu.RLock()
	enc := c.enc
	c.mu.RUnlock()
	if enc == nil {
		return ErrNotConnected
	}
	return enc.Encode(cmd)
}

// Join joins a channel.
func (c *Client) Join(channel string) error {
	return c.Send(JoinCommand{Channel: channel})
}

// Part leaves a channel.
func (c *Client) Part(channel string) error {
	return c.Send(PartCommand{Channel: channel})
}

// Say sends a chat message to a channel.
func (c *Client) Say(channel, message string) error {
	return c.Send(PrivmsgCommand{Channel: channel, Message: message})
}

// Chat returns a ChatCommands helper scoped to channel, for moderation
// slash-commands (ban, timeout, raid, and similar).
func (c *Client) Chat(channel string) ChatCommands {
	return NewChatCommands(channel)
}

// WaitFor blocks until a frame of the given kind arrives, or ctx is done.
// Connect must have already started the client's background loops.
func (c *Client) WaitFor(ctx context.Context, kind CommandKind) (AllCommands, error) {
	c.mu.RLock()
	dispatcher := c.dispatcher
	c.mu.RUnlock()
	if dispatcher == nil {
		return AllCommands{}, ErrNotConnected
	}
	return dispatcher.WaitFor(ctx, kind)
}

// ErrNotConnected is returned by Client methods that require an active
// connection.
var ErrNotConnected = newSentinel("client is not connected")
