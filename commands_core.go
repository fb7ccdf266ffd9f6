// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import "strings"

// hasBadge reports whether the comma-separated "badges" tag (e.g.
// "broadcaster/1,subscriber/12") contains an entry for name.
func hasBadge(t Tags, name string) bool {
	badges, ok := t.Get("badges")
	if !ok {
		return false
	}
	for _, part := range strings.Split(badges, ",") {
		key := part
		if slash := strings.IndexByte(part, '/'); slash >= 0 {
			key = part[:slash]
		}
		if key == name {
			return true
		}
	}
	return false
}

// Privmsg is a channel or direct chat message. See spec.md §4.3.
type Privmsg struct {
	IrcMessage
	Channel     Index
	Name        Index
	MessageData Index
}

// NewPrivmsg validates msg as a PRIVMSG frame.
func NewPrivmsg(msg IrcMessage) (Privmsg, error) {
	if msg.CommandString() != CmdPrivmsg {
		return Privmsg{}, InvalidCommandError{Expected: CmdPrivmsg, Got: msg.CommandString()}
	}
	if _, ok := msg.PrefixNick(); !ok {
		return Privmsg{}, ErrExpectedNick
	}
	channel, ok := msg.ArgIndex(0)
	if !ok {
		return Privmsg{}, ExpectedArgError{Pos: 0}
	}
	if msg.Data == nil {
		return Privmsg{}, ErrExpectedData
	}
	return Privmsg{IrcMessage: msg, Channel: channel, Name: msg.Prefix.Nick, MessageData: *msg.Data}, nil
}

// ChannelName returns the channel the message was sent to, e.g. "#museun".
func (p Privmsg) ChannelName() string { return p.Channel.Slice(p.Raw) }

// Nick returns the sender's nickname.
func (p Privmsg) Nick() string { return p.Name.Slice(p.Raw) }

// Message returns the raw message body, including any CTCP ACTION framing.
func (p Privmsg) Message() string { return p.MessageData.Slice(p.Raw) }

// IsAction reports whether the body is a CTCP ACTION (/me) message.
func (p Privmsg) IsAction() bool {
	body := p.Message()
	return len(body) > 8 && strings.HasPrefix(body, "\x01ACTION ") && strings.HasSuffix(body, "\x01")
}

// ActionMessage returns the body with CTCP ACTION framing stripped, or the
// plain body if it isn't an action.
func (p Privmsg) ActionMessage() string {
	if !p.IsAction() {
		return p.Message()
	}
	body := p.Message()
	return body[8 : len(body)-1]
}

// Bits returns the "bits" tag, if the message included a bits cheer.
func (p Privmsg) Bits() (int, bool) { return GetParsed[int](p.TagsView(), "bits") }

// Color returns the sender's chat color, if set.
func (p Privmsg) Color() (string, bool) {
	v, ok := p.TagsView().Get("color")
	return v, ok && v != ""
}

// DisplayName returns the sender's display name, if set.
func (p Privmsg) DisplayName() (string, bool) { return p.TagsView().Get("display-name") }

// Emotes returns the raw "emotes" tag value.
func (p Privmsg) Emotes() (string, bool) { return p.TagsView().Get("emotes") }

// Badges returns the raw "badges" tag value.
func (p Privmsg) Badges() (string, bool) { return p.TagsView().Get("badges") }

// RoomID returns the "room-id" tag, identifying the channel by id.
func (p Privmsg) RoomID() (string, bool) { return p.TagsView().Get("room-id") }

// UserID returns the sender's user id.
func (p Privmsg) UserID() (string, bool) { return p.TagsView().Get("user-id") }

// TMISentTS returns the server-side send timestamp, in unix milliseconds.
func (p Privmsg) TMISentTS() (int64, bool) { return GetParsed[int64](p.TagsView(), "tmi-sent-ts") }

// IsModerator reports the "mod" tag.
func (p Privmsg) IsModerator() bool { return p.TagsView().GetAsBool("mod") }

// IsSubscriber reports the "subscriber" tag.
func (p Privmsg) IsSubscriber() bool { return p.TagsView().GetAsBool("subscriber") }

// IsTurbo reports the "turbo" tag.
func (p Privmsg) IsTurbo() bool { return p.TagsView().GetAsBool("turbo") }

// IsBroadcaster reports a "broadcaster" badge.
func (p Privmsg) IsBroadcaster() bool { return hasBadge(p.TagsView(), "broadcaster") }

// IsStaff reports a "staff" badge.
func (p Privmsg) IsStaff() bool { return hasBadge(p.TagsView(), "staff") }

// IsVIP reports a "vip" badge.
func (p Privmsg) IsVIP() bool { return hasBadge(p.TagsView(), "vip") }

// IsGlobalModerator reports a "global_mod" badge.
func (p Privmsg) IsGlobalModerator() bool { return hasBadge(p.TagsView(), "global_mod") }

// IntoOwned promotes p to have no lifetime dependence on its source buffer.
func (p Privmsg) IntoOwned() Privmsg {
	p.IrcMessage = p.IrcMessage.IntoOwned()
	return p
}

// Ping is a server keepalive probe the client must answer with Pong.
type Ping struct {
	IrcMessage
	TokenData Index
}

// NewPing validates msg as a PING frame.
func NewPing(msg IrcMessage) (Ping, error) {
	if msg.CommandString() != CmdPing {
		return Ping{}, InvalidCommandError{Expected: CmdPing, Got: msg.CommandString()}
	}
	if msg.Data == nil {
		return Ping{}, ErrExpectedData
	}
	return Ping{IrcMessage: msg, TokenData: *msg.Data}, nil
}

// Token returns the value the client must echo back in a PONG.
func (p Ping) Token() string { return p.TokenData.Slice(p.Raw) }

// IntoOwned promotes p to have no lifetime dependence on its source buffer.
func (p Ping) IntoOwned() Ping {
	p.IrcMessage = p.IrcMessage.IntoOwned()
	return p
}

// Pong is a response to a client- or server-initiated PING.
type Pong struct {
	IrcMessage
	TokenData *Index
}

// NewPong validates msg as a PONG frame.
func NewPong(msg IrcMessage) (Pong, error) {
	if msg.CommandString() != CmdPong {
		return Pong{}, InvalidCommandError{Expected: CmdPong, Got: msg.CommandString()}
	}
	return Pong{IrcMessage: msg, TokenData: msg.Data}, nil
}

// Token returns the echoed token, if any.
func (p Pong) Token() (string, bool) {
	if p.TokenData == nil {
		return "", false
	}
	return p.TokenData.Slice(p.Raw), true
}

// IntoOwned promotes p to have no lifetime dependence on its source buffer.
func (p Pong) IntoOwned() Pong {
	p.IrcMessage = p.IrcMessage.IntoOwned()
	return p
}

// Notice is a server informational/error message, e.g. auth failures.
type Notice struct {
	IrcMessage
	Channel     *Index
	MessageData *Index
}

// NewNotice validates msg as a NOTICE frame.
func NewNotice(msg IrcMessage) (Notice, error) {
	if msg.CommandString() != CmdNotice {
		return Notice{}, InvalidCommandError{Expected: CmdNotice, Got: msg.CommandString()}
	}
	n := Notice{IrcMessage: msg, MessageData: msg.Data}
	if idx, ok := msg.ArgIndex(0); ok {
		n.Channel = &idx
	}
	return n, nil
}

// ChannelName returns the channel the notice concerns, if any.
func (n Notice) ChannelName() (string, bool) {
	if n.Channel == nil {
		return "", false
	}
	return n.Channel.Slice(n.Raw), true
}

// Message returns the notice text.
func (n Notice) Message() (string, bool) {
	if n.MessageData == nil {
		return "", false
	}
	return n.MessageData.Slice(n.Raw), true
}

// IntoOwned promotes n to have no lifetime dependence on its source buffer.
func (n Notice) IntoOwned() Notice {
	n.IrcMessage = n.IrcMessage.IntoOwned()
	return n
}

// Whisper is a private, channel-less message between two users.
type Whisper struct {
	IrcMessage
	Name        Index
	MessageData Index
}

// NewWhisper validates msg as a WHISPER frame.
func NewWhisper(msg IrcMessage) (Whisper, error) {
	if msg.CommandString() != CmdWhisper {
		return Whisper{}, InvalidCommandError{Expected: CmdWhisper, Got: msg.CommandString()}
	}
	if _, ok := msg.PrefixNick(); !ok {
		return Whisper{}, ErrExpectedNick
	}
	if msg.Data == nil {
		return Whisper{}, ErrExpectedData
	}
	return Whisper{IrcMessage: msg, Name: msg.Prefix.Nick, MessageData: *msg.Data}, nil
}

// Nick returns the sender's nickname.
func (w Whisper) Nick() string { return w.Name.Slice(w.Raw) }

// Message returns the whisper body.
func (w Whisper) Message() string { return w.MessageData.Slice(w.Raw) }

// IntoOwned promotes w to have no lifetime dependence on its source buffer.
func (w Whisper) IntoOwned() Whisper {
	w.IrcMessage = w.IrcMessage.IntoOwned()
	return w
}

// Reconnect signals that the server is about to go down for maintenance
// and the client should reconnect.
type Reconnect struct {
	IrcMessage
}

// NewReconnect validates msg as a RECONNECT frame.
func NewReconnect(msg IrcMessage) (Reconnect, error) {
	if msg.CommandString() != CmdReconnect {
		return Reconnect{}, InvalidCommandError{Expected: CmdReconnect, Got: msg.CommandString()}
	}
	return Reconnect{IrcMessage: msg}, nil
}

// IntoOwned promotes r to have no lifetime dependence on its source buffer.
func (r Reconnect) IntoOwned() Reconnect {
	r.IrcMessage = r.IrcMessage.IntoOwned()
	return r
}
