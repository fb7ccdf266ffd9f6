// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

// CommandKind discriminates the concrete type AllCommands wraps.
type CommandKind int

// Known command kinds. KindUnknown covers any command FromIRC doesn't
// recognize, or one that failed its typed validation.
const (
	KindUnknown CommandKind = iota
	KindPrivmsg
	KindPing
	KindPong
	KindJoin
	KindPart
	KindNotice
	KindCap
	KindHostTarget
	KindRoomState
	KindUserState
	KindGlobalUserState
	KindUserNotice
	KindWhisper
	KindClearChat
	KindClearMsg
	KindReconnect
	KindNames
	KindMode
)

// String returns the kind's name as a capitalized Go-style word (e.g.
// "Privmsg", "Names"), not the IRC command token it was built from.
func (k CommandKind) String() string {
	switch k {
	case KindPrivmsg:
		return "Privmsg"
	case KindPing:
		return "Ping"
	case KindPong:
		return "Pong"
	case KindJoin:
		return "Join"
	case KindPart:
		return "Part"
	case KindNotice:
		return "Notice"
	case KindCap:
		return "Cap"
	case KindHostTarget:
		return "HostTarget"
	case KindRoomState:
		return "RoomState"
	case KindUserState:
		return "UserState"
	case KindGlobalUserState:
		return "GlobalUserState"
	case KindUserNotice:
		return "UserNotice"
	case KindWhisper:
		return "Whisper"
	case KindClearChat:
		return "ClearChat"
	case KindClearMsg:
		return "ClearMsg"
	case KindReconnect:
		return "Reconnect"
	case KindNames:
		return "Names"
	case KindMode:
		return "Mode"
	default:
		return "Unknown"
	}
}

// AllCommands is the sum type over every recognized Twitch IRC command,
// plus an Unknown fallback carrying the raw frame. It stands in for Rust's
// tagged union: Kind says which of the typed commands is populated, and the
// As* accessors hand back the concrete value.
type AllCommands struct {
	Kind    CommandKind
	Message IrcMessage

	command any
}

// FromIRC classifies msg into its typed command, dispatching on the command
// token. A recognized command whose required fields fail to validate still
// falls back to KindUnknown rather than erroring, since the caller already
// has a structurally valid IrcMessage to work with via Message.
func FromIRC(msg IrcMessage) AllCommands {
	switch msg.CommandString() {
	case CmdPrivmsg:
		if c, err := NewPrivmsg(msg); err == nil {
			return AllCommands{Kind: KindPrivmsg, Message: msg, command: c}
		}
	case CmdPing:
		if c, err := NewPing(msg); err == nil {
			return AllCommands{Kind: KindPing, Message: msg, command: c}
		}
	case CmdPong:
		if c, err := NewPong(msg); err == nil {
			return AllCommands{Kind: KindPong, Message: msg, command: c}
		}
	case CmdJoin:
		if c, err := NewJoin(msg); err == nil {
			return AllCommands{Kind: KindJoin, Message: msg, command: c}
		}
	case CmdPart:
		if c, err := NewPart(msg); err == nil {
			return AllCommands{Kind: KindPart, Message: msg, command: c}
		}
	case CmdNotice:
		if c, err := NewNotice(msg); err == nil {
			return AllCommands{Kind: KindNotice, Message: msg, command: c}
		}
	case CmdCap:
		if c, err := NewCap(msg); err == nil {
			return AllCommands{Kind: KindCap, Message: msg, command: c}
		}
	case CmdHostTarget:
		if c, err := NewHostTarget(msg); err == nil {
			return AllCommands{Kind: KindHostTarget, Message: msg, command: c}
		}
	case CmdRoomState:
		if c, err := NewRoomState(msg); err == nil {
			return AllCommands{Kind: KindRoomState, Message: msg, command: c}
		}
	case CmdUserState:
		if c, err := NewUserState(msg); err == nil {
			return AllCommands{Kind: KindUserState, Message: msg, command: c}
		}
	case CmdGlobalUserState:
		if c, err := NewGlobalUserState(msg); err == nil {
			return AllCommands{Kind: KindGlobalUserState, Message: msg, command: c}
		}
	case CmdUserNotice:
		if c, err := NewUserNotice(msg); err == nil {
			return AllCommands{Kind: KindUserNotice, Message: msg, command: c}
		}
	case CmdWhisper:
		if c, err := NewWhisper(msg); err == nil {
			return AllCommands{Kind: KindWhisper, Message: msg, command: c}
		}
	case CmdClearChat:
		if c, err := NewClearChat(msg); err == nil {
			return AllCommands{Kind: KindClearChat, Message: msg, command: c}
		}
	case CmdClearMsg:
		if c, err := NewClearMsg(msg); err == nil {
			return AllCommands{Kind: KindClearMsg, Message: msg, command: c}
		}
	case CmdReconnect:
		if c, err := NewReconnect(msg); err == nil {
			return AllCommands{Kind: KindReconnect, Message: msg, command: c}
		}
	case CmdNames:
		if c, err := NewNames(msg); err == nil {
			return AllCommands{Kind: KindNames, Message: msg, command: c}
		}
	case CmdMode:
		if c, err := NewMode(msg); err == nil {
			return AllCommands{Kind: KindMode, Message: msg, command: c}
		}
	}
	return AllCommands{Kind: KindUnknown, Message: msg}
}

// IntoOwned promotes a to have no lifetime dependence on its source buffer.
// The wrapped typed command, if any, is promoted along with it.
func (a AllCommands) IntoOwned() AllCommands {
	a.Message = a.Message.IntoOwned()
	switch c := a.command.(type) {
	case Privmsg:
		a.command = c.IntoOwned()
	case Ping:
		a.command = c.IntoOwned()
	case Pong:
		a.command = c.IntoOwned()
	case Join:
		a.command = c.IntoOwned()
	case Part:
		a.command = c.IntoOwned()
	case Notice:
		a.command = c.IntoOwned()
	case Cap:
		a.command = c.IntoOwned()
	case HostTarget:
		a.command = c.IntoOwned()
	case RoomState:
		a.command = c.IntoOwned()
	case UserState:
		a.command = c.IntoOwned()
	case GlobalUserState:
		a.command = c.IntoOwned()
	case UserNotice:
		a.command = c.IntoOwned()
	case Whisper:
		a.command = c.IntoOwned()
	case ClearChat:
		a.command = c.IntoOwned()
	case ClearMsg:
		a.command = c.IntoOwned()
	case Reconnect:
		a.command = c.IntoOwned()
	case Names:
		a.command = c.IntoOwned()
	case Mode:
		a.command = c.IntoOwned()
	}
	return a
}

// AsPrivmsg returns the wrapped Privmsg, if Kind == KindPrivmsg.
func (a AllCommands) AsPrivmsg() (Privmsg, bool) { c, ok := a.command.(Privmsg); return c, ok }

// AsPing returns the wrapped Ping, if Kind == KindPing.
func (a AllCommands) AsPing() (Ping, bool) { c, ok := a.command.(Ping); return c, ok }

// AsPong returns the wrapped Pong, if Kind == KindPong.
func (a AllCommands) AsPong() (Pong, bool) { c, ok := a.command.(Pong); return c, ok }

// AsJoin returns the wrapped Join, if Kind == KindJoin.
func (a AllCommands) AsJoin() (Join, bool) { c, ok := a.command.(Join); return c, ok }

// AsPart returns the wrapped Part, if Kind == KindPart.
func (a AllCommands) AsPart() (Part, bool) { c, ok := a.command.(Part); return c, ok }

// AsNotice returns the wrapped Notice, if Kind == KindNotice.
func (a AllCommands) AsNotice() (Notice, bool) { c, ok := a.command.(Notice); return c, ok }

// AsCap returns the wrapped Cap, if Kind == KindCap.
func (a AllCommands) AsCap() (Cap, bool) { c, ok := a.command.(Cap); return c, ok }

// AsHostTarget returns the wrapped HostTarget, if Kind == KindHostTarget.
func (a AllCommands) AsHostTarget() (HostTarget, bool) {
	c, ok := a.command.(HostTarget)
	return c, ok
}

// AsRoomState returns the wrapped RoomState, if Kind == KindRoomState.
func (a AllCommands) AsRoomState() (RoomState, bool) { c, ok := a.command.(RoomState); return c, ok }

// AsUserState returns the wrapped UserState, if Kind == KindUserState.
func (a AllCommands) AsUserState() (UserState, bool) { c, ok := a.command.(UserState); return c, ok }

// AsGlobalUserState returns the wrapped GlobalUserState, if
// Kind == KindGlobalUserState.
func (a AllCommands) AsGlobalUserState() (GlobalUserState, bool) {
	c, ok := a.command.(GlobalUserState)
	return c, ok
}

// AsUserNotice returns the wrapped UserNotice, if Kind == KindUserNotice.
func (a AllCommands) AsUserNotice() (UserNotice, bool) { c, ok := a.command.(UserNotice); return c, ok }

// AsWhisper returns the wrapped Whisper, if Kind == KindWhisper.
func (a AllCommands) AsWhisper() (Whisper, bool) { c, ok := a.command.(Whisper); return c, ok }

// AsClearChat returns the wrapped ClearChat, if Kind == KindClearChat.
func (a AllCommands) AsClearChat() (ClearChat, bool) { c, ok := a.command.(ClearChat); return c, ok }

// AsClearMsg returns the wrapped ClearMsg, if Kind == KindClearMsg.
func (a AllCommands) AsClearMsg() (ClearMsg, bool) { c, ok := a.command.(ClearMsg); return c, ok }

// AsReconnect returns the wrapped Reconnect, if Kind == KindReconnect.
func (a AllCommands) AsReconnect() (Reconnect, bool) { c, ok := a.command.(Reconnect); return c, ok }

// AsNames returns the wrapped Names, if Kind == KindNames.
func (a AllCommands) AsNames() (Names, bool) { c, ok := a.command.(Names); return c, ok }

// AsMode returns the wrapped Mode, if Kind == KindMode.
func (a AllCommands) AsMode() (Mode, bool) { c, ok := a.command.(Mode); return c, ok }

// CommandVisitor dispatches on an AllCommands' concrete kind. Implementers
// that only care about a handful of kinds still must provide every method;
// embed a type that no-ops the rest if that's cumbersome.
type CommandVisitor interface {
	VisitPrivmsg(Privmsg)
	VisitPing(Ping)
	VisitPong(Pong)
	VisitJoin(Join)
	VisitPart(Part)
	VisitNotice(Notice)
	VisitCap(Cap)
	VisitHostTarget(HostTarget)
	VisitRoomState(RoomState)
	VisitUserState(UserState)
	VisitGlobalUserState(GlobalUserState)
	VisitUserNotice(UserNotice)
	VisitWhisper(Whisper)
	VisitClearChat(ClearChat)
	VisitClearMsg(ClearMsg)
	VisitReconnect(Reconnect)
	VisitNames(Names)
	VisitMode(Mode)
	VisitUnknown(IrcMessage)
}

// NoopCommandVisitor implements CommandVisitor with no-op methods, so
// callers that only care about one or two kinds can embed it and override
// just those.
type NoopCommandVisitor struct{}

func (NoopCommandVisitor) VisitPrivmsg(Privmsg)                 {}
func (NoopCommandVisitor) VisitPing(Ping)                       {}
func (NoopCommandVisitor) VisitPong(Pong)                       {}
func (NoopCommandVisitor) VisitJoin(Join)                       {}
func (NoopCommandVisitor) VisitPart(Part)                       {}
func (NoopCommandVisitor) VisitNotice(Notice)                   {}
func (NoopCommandVisitor) VisitCap(Cap)                         {}
func (NoopCommandVisitor) VisitHostTarget(HostTarget)           {}
func (NoopCommandVisitor) VisitRoomState(RoomState)             {}
func (NoopCommandVisitor) VisitUserState(UserState)             {}
func (NoopCommandVisitor) VisitGlobalUserState(GlobalUserState) {}
func (NoopCommandVisitor) VisitUserNotice(UserNotice)           {}
func (NoopCommandVisitor) VisitWhisper(Whisper)                 {}
func (NoopCommandVisitor) VisitClearChat(ClearChat)             {}
func (NoopCommandVisitor) VisitClearMsg(ClearMsg)               {}
func (NoopCommandVisitor) VisitReconnect(Reconnect)             {}
func (NoopCommandVisitor) VisitNames(Names)                     {}
func (NoopCommandVisitor) VisitMode(Mode)                       {}
func (NoopCommandVisitor) VisitUnknown(IrcMessage)              {}

// Accept dispatches a to the matching method of v.
func (a AllCommands) Accept(v CommandVisitor) {
	switch a.Kind {
	case KindPrivmsg:
		v.VisitPrivmsg(a.command.(Privmsg))
	case KindPing:
		v.VisitPing(a.command.(Ping))
	case KindPong:
		v.VisitPong(a.command.(Pong))
	case KindJoin:
		v.VisitJoin(a.command.(Join))
	case KindPart:
		v.VisitPart(a.command.(Part))
	case KindNotice:
		v.VisitNotice(a.command.(Notice))
	case KindCap:
		v.VisitCap(a.command.(Cap))
	case KindHostTarget:
		v.VisitHostTarget(a.command.(HostTarget))
	case KindRoomState:
		v.VisitRoomState(a.command.(RoomState))
	case KindUserState:
		v.VisitUserState(a.command.(UserState))
	case KindGlobalUserState:
		v.VisitGlobalUserState(a.command.(GlobalUserState))
	case KindUserNotice:
		v.VisitUserNotice(a.command.(UserNotice))
	case KindWhisper:
		v.VisitWhisper(a.command.(Whisper))
	case KindClearChat:
		v.VisitClearChat(a.command.(ClearChat))
	case KindClearMsg:
		v.VisitClearMsg(a.command.(ClearMsg))
	case KindReconnect:
		v.VisitReconnect(a.command.(Reconnect))
	case KindNames:
		v.VisitNames(a.command.(Names))
	case KindMode:
		v.VisitMode(a.command.(Mode))
	default:
		v.VisitUnknown(a.Message)
	}
}
