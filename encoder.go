// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import (
	"io"
	"strings"
)

// MaxMessageLength is the maximum encoded line length, excluding the
// trailing CRLF, per RFC2812 section 2.3. A line with a tags section gets
// an additional maxTagLength budget, same as the teacher's Event.Bytes.
const MaxMessageLength = 510

const maxTagLength = 511

// Encodable is anything that can render itself as a single IRC line body,
// without the trailing CRLF.
type Encodable interface {
	Encode() string
}

// RawCommand is a pre-built command line the caller assembled by hand.
type RawCommand string

// Encode returns r unchanged (CRLF is still stripped by Encoder.Encode).
func (r RawCommand) Encode() string { return string(r) }

// Encoder writes Encodable commands to an underlying connection as
// CRLF-terminated lines.
type Encoder struct {
	w io.Writer
}

// NewEncoder wraps w for writing IRC commands.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode renders cmd and writes it followed by CRLF.
func (e *Encoder) Encode(cmd Encodable) error {
	line := stripCRLF(cmd.Encode())
	if _, err := io.WriteString(e.w, line); err != nil {
		return IOError{Cause: err}
	}
	if _, err := io.WriteString(e.w, "\r\n"); err != nil {
		return IOError{Cause: err}
	}
	return nil
}

// EncodeRaw writes line verbatim (any embedded CR/LF is stripped first).
func (e *Encoder) EncodeRaw(line string) error {
	return e.Encode(RawCommand(line))
}

func stripCRLF(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\r' || s[i] == '\n' {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// buildLine assembles an IRC line from its parts and enforces the length
// budget, mirroring the teacher's Event.Bytes truncation behavior.
func buildLine(tagsStr, command string, params []string, trailing string, hasTrailing bool) string {
	var b strings.Builder
	if tagsStr != "" {
		b.WriteByte('@')
		b.WriteString(tagsStr)
		b.WriteByte(' ')
	}
	b.WriteString(command)
	for _, p := range params {
		b.WriteByte(' ')
		b.WriteString(p)
	}
	if hasTrailing {
		b.WriteString(" :")
		b.WriteString(trailing)
	}

	line := stripCRLF(b.String())
	limit := MaxMessageLength
	if tagsStr != "" {
		limit += maxTagLength + 1
	}
	if len(line) > limit {
		line = line[:limit]
	}
	return line
}

// normalizeChannel ensures channel carries its leading '#'.
func normalizeChannel(channel string) string {
	if strings.HasPrefix(channel, "#") {
		return channel
	}
	return "#" + channel
}

// PassCommand sends the connection password / OAuth token.
type PassCommand struct{ Token string }

func (c PassCommand) Encode() string { return buildLine("", "PASS", []string{c.Token}, "", false) }

// NickCommand sets the connection's nickname.
type NickCommand struct{ Nick string }

func (c NickCommand) Encode() string { return buildLine("", "NICK", []string{c.Nick}, "", false) }

// CapReqCommand requests one or more IRCv3 capabilities.
type CapReqCommand struct{ Capabilities []string }

func (c CapReqCommand) Encode() string {
	return buildLine("", CmdCap, []string{"REQ"}, strings.Join(c.Capabilities, " "), true)
}

// JoinCommand joins a channel.
type JoinCommand struct{ Channel string }

func (c JoinCommand) Encode() string {
	return buildLine("", CmdJoin, []string{normalizeChannel(c.Channel)}, "", false)
}

// PartCommand leaves a channel.
type PartCommand struct{ Channel string }

func (c PartCommand) Encode() string {
	return buildLine("", CmdPart, []string{normalizeChannel(c.Channel)}, "", false)
}

// PrivmsgCommand sends a chat message to a channel.
type PrivmsgCommand struct {
	Channel string
	Message string
}

func (c PrivmsgCommand) Encode() string {
	return buildLine("", CmdPrivmsg, []string{normalizeChannel(c.Channel)}, c.Message, true)
}

// PingCommand probes the server (or answers its probe) with a token.
type PingCommand struct{ Token string }

func (c PingCommand) Encode() string { return buildLine("", CmdPing, nil, c.Token, true) }

// PongCommand answers a server PING, echoing its token.
type PongCommand struct{ Token string }

func (c PongCommand) Encode() string { return buildLine("", CmdPong, nil, c.Token, true) }

// WhisperCommand sends a private, channel-less message to another user.
type WhisperCommand struct {
	Target  string
	Message string
}

func (c WhisperCommand) Encode() string {
	return buildLine("", CmdWhisper, []string{c.Target}, c.Message, true)
}

// ReplyCommand sends a channel message threaded as a reply to an earlier
// message, via the client-only "reply-parent-msg-id" tag.
type ReplyCommand struct {
	Channel         string
	ParentMessageID string
	Message         string
}

func (c ReplyCommand) Encode() string {
	return buildLine("reply-parent-msg-id="+c.ParentMessageID, CmdPrivmsg,
		[]string{normalizeChannel(c.Channel)}, c.Message, true)
}
