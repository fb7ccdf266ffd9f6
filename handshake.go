// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/emersion/go-sasl"
)

// HandshakeConfig configures the PASS/CAP/NICK registration sequence, per
// spec.md §4.6. Mirrors the write order of the teacher's internalConnect
// (conn.go): capabilities first, then PASS, then NICK.
type HandshakeConfig struct {
	// Nick is the connection's nickname. For anonymous connections this is
	// one of Twitch's "justinfanNNNNN" names.
	Nick string
	// Token is the OAuth token, in "oauth:..." form. Empty sends no PASS;
	// whether the identity is anonymous is decided by Nick alone.
	Token string
	// Capabilities are the IRCv3 capabilities to request.
	Capabilities []Capability
	// UseSASL negotiates SASL PLAIN instead of a plain PASS exchange, when
	// CapabilitySASL is present in Capabilities and Token is set.
	UseSASL bool
}

// wantsSASL reports whether cfg is configured to authenticate over SASL.
func (cfg HandshakeConfig) wantsSASL() bool {
	if !cfg.UseSASL || cfg.Token == "" {
		return false
	}
	for _, c := range cfg.Capabilities {
		if c == CapabilitySASL {
			return true
		}
	}
	return false
}

// DoHandshake drives registration against dec/enc to completion. It returns
// the resulting Identity and any frames it read along the way that aren't
// part of registration itself (so a caller doesn't lose, say, a JOIN
// echoed back before 001 arrives).
//
// DoHandshake owns dec and enc for its duration; the caller must not read
// from dec concurrently until this returns.
func DoHandshake(ctx context.Context, dec *Decoder, enc *Encoder, cfg HandshakeConfig) (Identity, []IrcMessage, error) {
	h := &handshakeState{
		dec:  dec,
		enc:  enc,
		cfg:  cfg,
		caps: NewYourCapabilities(),
	}
	return h.run(ctx)
}

type handshakeState struct {
	dec *Decoder
	enc *Encoder
	cfg HandshakeConfig

	caps   YourCapabilities
	global *GlobalUserState
	missed []IrcMessage

	// capDone is true once the server has ACKed the CAP REQ (or no
	// capabilities were requested at all; a NAK ends the handshake with
	// InvalidCapabilityError). authDone is true once SASL has
	// either succeeded or was never attempted. CAP END is only sent once
	// both are true, per the IRCv3 capability negotiation spec.
	capDone  bool
	authDone bool

	// ready is true once 001 has arrived. When tags or commands were
	// requested, 001 alone isn't enough to resolve a Full identity — Twitch
	// sends 001/002-376 before GLOBALUSERSTATE — so the loop keeps reading
	// until GLOBALUSERSTATE arrives instead of returning early.
	ready bool
}

// wantsFullIdentity reports whether the requested capabilities entitle the
// connection to a GLOBALUSERSTATE, and so to an Identity::Full.
func (cfg HandshakeConfig) wantsFullIdentity() bool {
	for _, c := range cfg.Capabilities {
		if c == CapabilityTags || c == CapabilityCommands {
			return true
		}
	}
	return false
}

func (h *handshakeState) run(ctx context.Context) (Identity, []IrcMessage, error) {
	if len(h.cfg.Capabilities) > 0 {
		names := make([]string, len(h.cfg.Capabilities))
		for i, c := range h.cfg.Capabilities {
			names[i] = string(c)
		}
		if err := h.enc.Encode(CapReqCommand{Capabilities: names}); err != nil {
			return nil, nil, err
		}
	} else {
		h.capDone = true
	}

	if h.cfg.Token != "" && !h.cfg.wantsSASL() {
		if err := h.enc.Encode(PassCommand{Token: h.cfg.Token}); err != nil {
			return nil, nil, err
		}
	}
	if err := h.enc.Encode(NickCommand{Nick: h.cfg.Nick}); err != nil {
		return nil, nil, err
	}
	h.authDone = !h.cfg.wantsSASL()

	for {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		msg, err := h.dec.ReadMessage()
		if err != nil {
			return nil, nil, err
		}

		switch msg.CommandString() {
		case CmdNotice:
			if identity, done, err := h.onNotice(msg); done {
				return identity, h.missed, err
			}
		case CmdCap:
			if err := h.onCap(msg); err != nil {
				return nil, nil, err
			}
		case CmdReconnect:
			return nil, nil, ErrShouldReconnect
		case CmdPing:
			if err := h.onPing(msg); err != nil {
				return nil, nil, err
			}
		case CmdGlobalUserState:
			h.onGlobalUserState(msg)
			if h.ready && h.global != nil {
				return h.identity(), h.missed, nil
			}
		case CmdIrcReady:
			h.ready = true
			if h.global != nil || !h.cfg.wantsFullIdentity() {
				return h.identity(), h.missed, nil
			}
		default:
			h.missed = append(h.missed, msg.IntoOwned())
		}
	}
}

func (h *handshakeState) onNotice(msg IrcMessage) (Identity, bool, error) {
	notice, err := NewNotice(msg)
	if err != nil {
		h.missed = append(h.missed, msg.IntoOwned())
		return nil, false, nil
	}
	if text, ok := notice.Message(); ok && isAuthFailureNotice(text) {
		return nil, true, ErrBadPass
	}
	h.missed = append(h.missed, msg.IntoOwned())
	return nil, false, nil
}

func (h *handshakeState) onCap(msg IrcMessage) error {
	cap, err := NewCap(msg)
	if err != nil {
		h.missed = append(h.missed, msg.IntoOwned())
		return nil
	}

	switch {
	case cap.IsACK():
		if names, ok := cap.Capabilities(); ok {
			for _, name := range strings.Fields(names) {
				h.caps.Ack(Capability(name))
			}
		}
		h.capDone = true
		if h.cfg.wantsSASL() && h.caps.Has(CapabilitySASL) {
			if err := h.runSASL(); err != nil {
				return err
			}
		}
		h.authDone = true
	case cap.IsNAK():
		names, _ := cap.Capabilities()
		return InvalidCapabilityError{Capability: names}
	default:
		h.missed = append(h.missed, msg.IntoOwned())
		return nil
	}

	if h.capDone && h.authDone {
		return h.enc.Encode(RawCommand("CAP END"))
	}
	return nil
}

func (h *handshakeState) onPing(msg IrcMessage) error {
	ping, err := NewPing(msg)
	if err != nil {
		h.missed = append(h.missed, msg.IntoOwned())
		return nil
	}
	return h.enc.Encode(PongCommand{Token: ping.Token()})
}

func (h *handshakeState) onGlobalUserState(msg IrcMessage) {
	g, err := NewGlobalUserState(msg)
	if err != nil {
		h.missed = append(h.missed, msg.IntoOwned())
		return
	}
	owned := g.IntoOwned()
	h.global = &owned
}

func (h *handshakeState) identity() Identity {
	if h.global != nil {
		return NewFullIdentity(h.cfg.Nick, h.caps, *h.global)
	}
	if isAnonymousNick(h.cfg.Nick) {
		return NewAnonymousIdentity(h.cfg.Nick, h.caps)
	}
	return NewBasicIdentity(h.cfg.Nick, h.caps)
}

// isAnonymousNick reports whether nick is one of Twitch's read-only
// "justinfanNNNNN" anonymous identities.
func isAnonymousNick(nick string) bool {
	return strings.HasPrefix(nick, "justinfan")
}

// runSASL drives the AUTHENTICATE exchange to completion, per IRCv3's SASL
// extension. Twitch only supports the PLAIN mechanism.
func (h *handshakeState) runSASL() error {
	if err := h.enc.Encode(RawCommand("AUTHENTICATE PLAIN")); err != nil {
		return err
	}
	if err := h.waitAuthenticateContinuation(); err != nil {
		return err
	}

	password := strings.TrimPrefix(h.cfg.Token, "oauth:")
	client := sasl.NewPlainClient("", h.cfg.Nick, password)
	_, initial, err := client.Start()
	if err != nil {
		return err
	}

	encoded := base64.StdEncoding.EncodeToString(initial)
	if err := h.enc.Encode(RawCommand("AUTHENTICATE " + encoded)); err != nil {
		return err
	}
	return h.waitSASLResult()
}

// waitAuthenticateContinuation blocks until the server's "AUTHENTICATE +"
// continuation request arrives, buffering anything else it reads along the
// way onto the missed list.
func (h *handshakeState) waitAuthenticateContinuation() error {
	for {
		msg, err := h.dec.ReadMessage()
		if err != nil {
			return err
		}
		if msg.CommandString() == CmdAuthenticate {
			return nil
		}
		h.missed = append(h.missed, msg.IntoOwned())
	}
}

// waitSASLResult blocks for the numeric reply that ends SASL negotiation.
func (h *handshakeState) waitSASLResult() error {
	for {
		msg, err := h.dec.ReadMessage()
		if err != nil {
			return err
		}
		switch msg.CommandString() {
		case CmdSaslSuccess:
			return nil
		case CmdSaslFail:
			return ErrBadPass
		default:
			h.missed = append(h.missed, msg.IntoOwned())
		}
	}
}

// isAuthFailureNotice reports whether text is one of the NOTICE messages
// Twitch sends to reject bad credentials.
func isAuthFailureNotice(text string) bool {
	switch text {
	case "Login authentication failed", "Improperly formatted auth", "Invalid NICK":
		return true
	}
	return strings.Contains(text, "authentication failed") || strings.Contains(text, "Login unsuccessful")
}
