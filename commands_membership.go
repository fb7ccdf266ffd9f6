// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import "strconv"

// Join announces a user (usually the client itself) joining a channel.
type Join struct {
	IrcMessage
	Name    Index
	Channel Index
}

// NewJoin validates msg as a JOIN frame.
func NewJoin(msg IrcMessage) (Join, error) {
	if msg.CommandString() != CmdJoin {
		return Join{}, InvalidCommandError{Expected: CmdJoin, Got: msg.CommandString()}
	}
	if _, ok := msg.PrefixNick(); !ok {
		return Join{}, ErrExpectedNick
	}
	channel, ok := msg.ArgIndex(0)
	if !ok {
		return Join{}, ExpectedArgError{Pos: 0}
	}
	return Join{IrcMessage: msg, Name: msg.Prefix.Nick, Channel: channel}, nil
}

// Nick returns the joining user's nickname.
func (j Join) Nick() string { return j.Name.Slice(j.Raw) }

// ChannelName returns the channel joined.
func (j Join) ChannelName() string { return j.Channel.Slice(j.Raw) }

// IntoOwned promotes j to have no lifetime dependence on its source buffer.
func (j Join) IntoOwned() Join {
	j.IrcMessage = j.IrcMessage.IntoOwned()
	return j
}

// Part announces a user leaving a channel.
type Part struct {
	IrcMessage
	Name    Index
	Channel Index
}

// NewPart validates msg as a PART frame.
func NewPart(msg IrcMessage) (Part, error) {
	if msg.CommandString() != CmdPart {
		return Part{}, InvalidCommandError{Expected: CmdPart, Got: msg.CommandString()}
	}
	if _, ok := msg.PrefixNick(); !ok {
		return Part{}, ErrExpectedNick
	}
	channel, ok := msg.ArgIndex(0)
	if !ok {
		return Part{}, ExpectedArgError{Pos: 0}
	}
	return Part{IrcMessage: msg, Name: msg.Prefix.Nick, Channel: channel}, nil
}

// Nick returns the departing user's nickname.
func (p Part) Nick() string { return p.Name.Slice(p.Raw) }

// ChannelName returns the channel left.
func (p Part) ChannelName() string { return p.Channel.Slice(p.Raw) }

// IntoOwned promotes p to have no lifetime dependence on its source buffer.
func (p Part) IntoOwned() Part {
	p.IrcMessage = p.IrcMessage.IntoOwned()
	return p
}

// Names is a single RPL_NAMREPLY (353) line, listing some of a channel's
// members. A channel's full membership list is usually split across
// several of these, terminated by RPL_ENDOFNAMES (366).
type Names struct {
	IrcMessage
	Channel    Index
	MembersRaw *Index
}

// NewNames validates msg as a 353 frame.
func NewNames(msg IrcMessage) (Names, error) {
	if msg.CommandString() != CmdNames {
		return Names{}, InvalidCommandError{Expected: CmdNames, Got: msg.CommandString()}
	}
	// args are "<client> = #channel"; the channel is the last arg.
	args := msg.ArgsList()
	if len(args) < 2 {
		return Names{}, ExpectedArgError{Pos: len(args)}
	}
	channel, ok := msg.ArgIndex(len(args) - 1)
	if !ok {
		return Names{}, ExpectedArgError{Pos: len(args) - 1}
	}
	return Names{IrcMessage: msg, Channel: channel, MembersRaw: msg.Data}, nil
}

// ChannelName returns the channel this page of names belongs to.
func (n Names) ChannelName() string { return n.Channel.Slice(n.Raw) }

// Members returns the nicknames listed on this page.
func (n Names) Members() []string {
	if n.MembersRaw == nil {
		return nil
	}
	return splitFields(n.MembersRaw.Slice(n.Raw))
}

func splitFields(s string) []string {
	var out []string
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}

// IntoOwned promotes n to have no lifetime dependence on its source buffer.
func (n Names) IntoOwned() Names {
	n.IrcMessage = n.IrcMessage.IntoOwned()
	return n
}

// Mode is a channel mode change, e.g. granting or revoking moderator
// status ("+o"/"-o").
type Mode struct {
	IrcMessage
	Channel    Index
	ModeString Index
	TargetUser *Index
}

// NewMode validates msg as a MODE frame.
func NewMode(msg IrcMessage) (Mode, error) {
	if msg.CommandString() != CmdMode {
		return Mode{}, InvalidCommandError{Expected: CmdMode, Got: msg.CommandString()}
	}
	channel, ok := msg.ArgIndex(0)
	if !ok {
		return Mode{}, ExpectedArgError{Pos: 0}
	}
	modeStr, ok := msg.ArgIndex(1)
	if !ok {
		return Mode{}, ExpectedArgError{Pos: 1}
	}
	m := Mode{IrcMessage: msg, Channel: channel, ModeString: modeStr}
	if user, ok := msg.ArgIndex(2); ok {
		m.TargetUser = &user
	}
	return m, nil
}

// ChannelName returns the channel the mode change applies to.
func (m Mode) ChannelName() string { return m.Channel.Slice(m.Raw) }

// Modes returns the raw mode string, e.g. "+o".
func (m Mode) Modes() string { return m.ModeString.Slice(m.Raw) }

// TargetUserName returns the user the mode change targets, if any.
func (m Mode) TargetUserName() (string, bool) {
	if m.TargetUser == nil {
		return "", false
	}
	return m.TargetUser.Slice(m.Raw), true
}

// IsModeGrant reports whether this is a "+o" grant rather than a "-o" revoke.
func (m Mode) IsModeGrant() bool {
	s := m.Modes()
	return len(s) > 0 && s[0] == '+'
}

// IntoOwned promotes m to have no lifetime dependence on its source buffer.
func (m Mode) IntoOwned() Mode {
	m.IrcMessage = m.IrcMessage.IntoOwned()
	return m
}

// RoomState carries a channel's current chat settings, sent on join and
// whenever a setting changes. Fields absent from a given ROOMSTATE are
// carried over from the last one seen for the channel (see spec.md §4.3);
// that merge is the caller's responsibility, this type only reflects what
// was present on the wire.
type RoomState struct {
	IrcMessage
	Channel Index
}

// NewRoomState validates msg as a ROOMSTATE frame.
func NewRoomState(msg IrcMessage) (RoomState, error) {
	if msg.CommandString() != CmdRoomState {
		return RoomState{}, InvalidCommandError{Expected: CmdRoomState, Got: msg.CommandString()}
	}
	channel, ok := msg.ArgIndex(0)
	if !ok {
		return RoomState{}, ExpectedArgError{Pos: 0}
	}
	return RoomState{IrcMessage: msg, Channel: channel}, nil
}

// ChannelName returns the channel this state applies to.
func (r RoomState) ChannelName() string { return r.Channel.Slice(r.Raw) }

// IsEmoteOnly reports the "emote-only" tag, if present on this message.
func (r RoomState) IsEmoteOnly() (bool, bool) {
	v, ok := r.TagsView().Get("emote-only")
	if !ok {
		return false, false
	}
	return v == "1", true
}

// IsR9k reports the "r9k" tag, if present on this message.
func (r RoomState) IsR9k() (bool, bool) {
	v, ok := r.TagsView().Get("r9k")
	if !ok {
		return false, false
	}
	return v == "1", true
}

// IsSubscribersOnly reports the "subs-only" tag, if present on this message.
func (r RoomState) IsSubscribersOnly() (bool, bool) {
	v, ok := r.TagsView().Get("subs-only")
	if !ok {
		return false, false
	}
	return v == "1", true
}

// FollowersOnlyMinutes reports the "followers-only" tag's duration: -1 means
// followers-only is disabled, 0 means any follower may chat immediately,
// and a positive value is the minimum follow age in minutes.
func (r RoomState) FollowersOnlyMinutes() (int, bool) {
	return GetParsed[int](r.TagsView(), "followers-only")
}

// IsFollowersOnly reports whether followers-only mode is enabled at all,
// tolerating Twitch's occasional "-1.0"-style decimal encoding by truncating
// at the first '.'. The second result is false when the tag is absent or its
// value does not parse as an integer.
func (r RoomState) IsFollowersOnly() (bool, bool) {
	v, ok := r.TagsView().Get("followers-only")
	if !ok {
		return false, false
	}
	end := len(v)
	for i, c := range v {
		if c == '.' {
			end = i
			break
		}
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil {
		return false, false
	}
	return n >= 0, true
}

// SlowModeSeconds reports the "slow" tag: the cooldown between messages, in
// seconds, or 0 if slow mode is off.
func (r RoomState) SlowModeSeconds() (int, bool) {
	return GetParsed[int](r.TagsView(), "slow")
}

// IsSlowMode reports whether slow mode is enabled at all.
func (r RoomState) IsSlowMode() (bool, bool) {
	n, ok := r.SlowModeSeconds()
	if !ok {
		return false, false
	}
	return n > 0, true
}

// RoomID returns the "room-id" tag.
func (r RoomState) RoomID() (string, bool) { return r.TagsView().Get("room-id") }

// IntoOwned promotes r to have no lifetime dependence on its source buffer.
func (r RoomState) IntoOwned() RoomState {
	r.IrcMessage = r.IrcMessage.IntoOwned()
	return r
}

// UserState carries the client's own badges/permissions for a channel, sent
// on join and after sending a PRIVMSG.
type UserState struct {
	IrcMessage
	Channel Index
}

// NewUserState validates msg as a USERSTATE frame.
func NewUserState(msg IrcMessage) (UserState, error) {
	if msg.CommandString() != CmdUserState {
		return UserState{}, InvalidCommandError{Expected: CmdUserState, Got: msg.CommandString()}
	}
	channel, ok := msg.ArgIndex(0)
	if !ok {
		return UserState{}, ExpectedArgError{Pos: 0}
	}
	return UserState{IrcMessage: msg, Channel: channel}, nil
}

// ChannelName returns the channel this state applies to.
func (u UserState) ChannelName() string { return u.Channel.Slice(u.Raw) }

// DisplayName returns the client's display name in this channel.
func (u UserState) DisplayName() (string, bool) { return u.TagsView().Get("display-name") }

// IsModerator reports the "mod" tag.
func (u UserState) IsModerator() bool { return u.TagsView().GetAsBool("mod") }

// IsSubscriber reports the "subscriber" tag.
func (u UserState) IsSubscriber() bool { return u.TagsView().GetAsBool("subscriber") }

// Badges returns the raw "badges" tag value.
func (u UserState) Badges() (string, bool) { return u.TagsView().Get("badges") }

// IntoOwned promotes u to have no lifetime dependence on its source buffer.
func (u UserState) IntoOwned() UserState {
	u.IrcMessage = u.IrcMessage.IntoOwned()
	return u
}

// GlobalUserState is sent once at login, carrying the client's
// account-wide badges and default color. Per spec.md §4.3, Twitch has been
// observed to send this with no tags at all; HasTags distinguishes that
// degenerate shape from "tags present but empty".
type GlobalUserState struct {
	IrcMessage
}

// NewGlobalUserState validates msg as a GLOBALUSERSTATE frame.
func NewGlobalUserState(msg IrcMessage) (GlobalUserState, error) {
	if msg.CommandString() != CmdGlobalUserState {
		return GlobalUserState{}, InvalidCommandError{Expected: CmdGlobalUserState, Got: msg.CommandString()}
	}
	return GlobalUserState{IrcMessage: msg}, nil
}

// UserID returns the "user-id" tag.
func (g GlobalUserState) UserID() (string, bool) { return g.TagsView().Get("user-id") }

// DisplayName returns the "display-name" tag.
func (g GlobalUserState) DisplayName() (string, bool) { return g.TagsView().Get("display-name") }

// Color returns the "color" tag.
func (g GlobalUserState) Color() (string, bool) { return g.TagsView().Get("color") }

// Badges returns the raw "badges" tag value.
func (g GlobalUserState) Badges() (string, bool) { return g.TagsView().Get("badges") }

// EmoteSets returns the "emote-sets" tag, a comma-separated list of ids.
func (g GlobalUserState) EmoteSets() (string, bool) { return g.TagsView().Get("emote-sets") }

// IntoOwned promotes g to have no lifetime dependence on its source buffer.
func (g GlobalUserState) IntoOwned() GlobalUserState {
	g.IrcMessage = g.IrcMessage.IntoOwned()
	return g
}
