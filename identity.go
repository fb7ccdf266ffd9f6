// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import cmap "github.com/orcaman/concurrent-map"

// Capability is an IRCv3 capability name, e.g. "twitch.tv/tags".
type Capability string

// The three Twitch-specific capabilities a client can request during
// negotiation.
const (
	CapabilityMembership Capability = "twitch.tv/membership"
	CapabilityTags       Capability = "twitch.tv/tags"
	CapabilityCommands   Capability = "twitch.tv/commands"
)

// CapabilitySASL is the IRCv3 capability that must be requested and ACKed
// before AUTHENTICATE is legal.
const CapabilitySASL Capability = "sasl"

// YourCapabilities is the set of capabilities the server acknowledged for
// a connection. Backed by a concurrent map since it's read from the
// read-loop goroutine and queried from caller goroutines concurrently,
// the same sharing the teacher's state.enabledCap requires.
type YourCapabilities struct {
	acked cmap.ConcurrentMap
}

// NewYourCapabilities returns an empty capability set.
func NewYourCapabilities() YourCapabilities {
	return YourCapabilities{acked: cmap.New()}
}

// Ack records cap as acknowledged by the server.
func (y YourCapabilities) Ack(cap Capability) {
	y.acked.Set(string(cap), struct{}{})
}

// Has reports whether cap was acknowledged.
func (y YourCapabilities) Has(cap Capability) bool {
	return y.acked.Has(string(cap))
}

// Len returns the number of acknowledged capabilities.
func (y YourCapabilities) Len() int {
	return y.acked.Count()
}

// List returns the acknowledged capabilities in no particular order.
func (y YourCapabilities) List() []Capability {
	keys := y.acked.Keys()
	out := make([]Capability, len(keys))
	for i, k := range keys {
		out[i] = Capability(k)
	}
	return out
}

// Identity is what the handshake hands back: who the connection is, and
// what the server granted it. The three concrete shapes mirror the three
// ways a Twitch connection can come up, per the registration sequence in
// spec.md §4.6.
type Identity interface {
	// Nick returns the connection's nickname.
	Nick() string
	// IsAnonymous reports whether the connection is one of Twitch's
	// unauthenticated "justinfanNNNNN" read-only identities.
	IsAnonymous() bool
	// Capabilities returns the capabilities the server acknowledged.
	Capabilities() YourCapabilities
}

// AnonymousIdentity is an unauthenticated, read-only connection (Twitch's
// "justinfanNNNNN" nicks).
type AnonymousIdentity struct {
	nick string
	caps YourCapabilities
}

// NewAnonymousIdentity constructs an AnonymousIdentity.
func NewAnonymousIdentity(nick string, caps YourCapabilities) AnonymousIdentity {
	return AnonymousIdentity{nick: nick, caps: caps}
}

func (a AnonymousIdentity) Nick() string                  { return a.nick }
func (a AnonymousIdentity) IsAnonymous() bool             { return true }
func (a AnonymousIdentity) Capabilities() YourCapabilities { return a.caps }

// BasicIdentity is an authenticated connection that requested neither the
// tags nor the commands capability, so the handshake does not wait for a
// GLOBALUSERSTATE and has no badge/color information about itself.
type BasicIdentity struct {
	nick string
	caps YourCapabilities
}

// NewBasicIdentity constructs a BasicIdentity.
func NewBasicIdentity(nick string, caps YourCapabilities) BasicIdentity {
	return BasicIdentity{nick: nick, caps: caps}
}

func (b BasicIdentity) Nick() string                  { return b.nick }
func (b BasicIdentity) IsAnonymous() bool             { return false }
func (b BasicIdentity) Capabilities() YourCapabilities { return b.caps }

// FullIdentity is an authenticated connection that requested the tags or
// commands capability, carrying the GLOBALUSERSTATE the server sent at login.
type FullIdentity struct {
	nick   string
	caps   YourCapabilities
	global GlobalUserState
}

// NewFullIdentity constructs a FullIdentity.
func NewFullIdentity(nick string, caps YourCapabilities, global GlobalUserState) FullIdentity {
	return FullIdentity{nick: nick, caps: caps, global: global}
}

func (f FullIdentity) Nick() string                  { return f.nick }
func (f FullIdentity) IsAnonymous() bool             { return false }
func (f FullIdentity) Capabilities() YourCapabilities { return f.caps }

// GlobalUserState returns the login-time GLOBALUSERSTATE this identity was
// built from.
func (f FullIdentity) GlobalUserState() GlobalUserState { return f.global }

// UserID returns the account's numeric id.
func (f FullIdentity) UserID() (string, bool) { return f.global.UserID() }

// DisplayName returns the account's display name.
func (f FullIdentity) DisplayName() (string, bool) { return f.global.DisplayName() }

// Color returns the account's default chat color.
func (f FullIdentity) Color() (string, bool) { return f.global.Color() }
