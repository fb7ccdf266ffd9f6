// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import "strconv"

// DefaultSlowModeSeconds is Twitch's default cooldown when /slow is sent
// with no explicit duration.
const DefaultSlowModeSeconds = 120

// MaxMarkerLength is the maximum byte length of a stream marker
// description.
const MaxMarkerLength = 140

// ChatCommands builds the slash-command PRIVMSG bodies Twitch interprets as
// channel moderation actions, scoped to one channel. Mirrors the teacher's
// Commands helper (commands.go), which wraps a *Client with convenience
// methods instead of hand-built Events.
type ChatCommands struct {
	Channel string
}

// NewChatCommands scopes a ChatCommands helper to channel.
func NewChatCommands(channel string) ChatCommands {
	return ChatCommands{Channel: normalizeChannel(channel)}
}

func (c ChatCommands) message(body string) PrivmsgCommand {
	return PrivmsgCommand{Channel: c.Channel, Message: body}
}

// Ban permanently bans user, with an optional reason.
func (c ChatCommands) Ban(user, reason string) Encodable {
	if reason == "" {
		return c.message("/ban " + user)
	}
	return c.message("/ban " + user + " " + reason)
}

// Unban lifts a ban on user.
func (c ChatCommands) Unban(user string) Encodable { return c.message("/unban " + user) }

// Timeout bans user for the given duration in seconds, with an optional
// reason. A non-positive seconds uses Twitch's own default.
func (c ChatCommands) Timeout(user string, seconds int, reason string) Encodable {
	body := "/timeout " + user
	if seconds > 0 {
		body += " " + strconv.Itoa(seconds)
	}
	if reason != "" {
		body += " " + reason
	}
	return c.message(body)
}

// Untimeout lifts an active timeout on user.
func (c ChatCommands) Untimeout(user string) Encodable { return c.message("/untimeout " + user) }

// Clear wipes the channel's chat history for all viewers.
func (c ChatCommands) Clear() Encodable { return c.message("/clear") }

// Color sets the client's chat name color.
func (c ChatCommands) Color(color string) Encodable { return c.message("/color " + color) }

// Commercial runs an ad break of the given length in seconds (one of
// Twitch's supported durations; a non-positive value uses Twitch's default).
func (c ChatCommands) Commercial(seconds int) Encodable {
	if seconds <= 0 {
		return c.message("/commercial")
	}
	return c.message("/commercial " + strconv.Itoa(seconds))
}

// Disconnect disconnects the client from chat.
func (c ChatCommands) Disconnect() Encodable { return c.message("/disconnect") }

// EmoteOnly restricts the channel to emote-only messages.
func (c ChatCommands) EmoteOnly() Encodable { return c.message("/emoteonly") }

// EmoteOnlyOff lifts emote-only mode.
func (c ChatCommands) EmoteOnlyOff() Encodable { return c.message("/emoteonlyoff") }

// FollowersOnly restricts chat to followers of at least minutes' standing.
// A non-positive minutes enables followers-only with no minimum.
func (c ChatCommands) FollowersOnly(minutes int) Encodable {
	if minutes <= 0 {
		return c.message("/followers")
	}
	return c.message("/followers " + strconv.Itoa(minutes))
}

// FollowersOnlyOff lifts followers-only mode.
func (c ChatCommands) FollowersOnlyOff() Encodable { return c.message("/followersoff") }

// Host starts hosting target.
func (c ChatCommands) Host(target string) Encodable {
	return c.message("/host " + stripChannelPrefix(target))
}

// Unhost stops hosting.
func (c ChatCommands) Unhost() Encodable { return c.message("/unhost") }

// Marker drops a stream marker with the given description, truncated to
// MaxMarkerLength bytes without splitting a UTF-8 rune.
func (c ChatCommands) Marker(description string) Encodable {
	return c.message("/marker " + truncateUTF8(description, MaxMarkerLength))
}

// Me sends message as a CTCP ACTION (/me).
func (c ChatCommands) Me(message string) Encodable { return c.message("/me " + message) }

// Mod grants user moderator status.
func (c ChatCommands) Mod(user string) Encodable { return c.message("/mod " + user) }

// Unmod revokes user's moderator status.
func (c ChatCommands) Unmod(user string) Encodable { return c.message("/unmod " + user) }

// Mods requests the channel's moderator list (delivered as a NOTICE).
func (c ChatCommands) Mods() Encodable { return c.message("/mods") }

// UniqueChat enables unique-chat (r9k) mode.
func (c ChatCommands) UniqueChat() Encodable { return c.message("/uniquechat") }

// UniqueChatOff disables unique-chat (r9k) mode.
func (c ChatCommands) UniqueChatOff() Encodable { return c.message("/uniquechatoff") }

// Raid starts raiding target.
func (c ChatCommands) Raid(target string) Encodable {
	return c.message("/raid " + stripChannelPrefix(target))
}

// Unraid cancels a pending raid.
func (c ChatCommands) Unraid() Encodable { return c.message("/unraid") }

// Slow enables slow mode with the given cooldown in seconds. A
// non-positive value uses DefaultSlowModeSeconds.
func (c ChatCommands) Slow(seconds int) Encodable {
	if seconds <= 0 {
		seconds = DefaultSlowModeSeconds
	}
	return c.message("/slow " + strconv.Itoa(seconds))
}

// SlowOff disables slow mode.
func (c ChatCommands) SlowOff() Encodable { return c.message("/slowoff") }

// SubscribersOnly restricts chat to subscribers.
func (c ChatCommands) SubscribersOnly() Encodable { return c.message("/subscribers") }

// SubscribersOnlyOff lifts subscribers-only mode.
func (c ChatCommands) SubscribersOnlyOff() Encodable { return c.message("/subscribersoff") }

// VIP grants user VIP status.
func (c ChatCommands) VIP(user string) Encodable { return c.message("/vip " + user) }

// Unvip revokes user's VIP status.
func (c ChatCommands) Unvip(user string) Encodable { return c.message("/unvip " + user) }

// VIPs requests the channel's VIP list (delivered as a NOTICE).
func (c ChatCommands) VIPs() Encodable { return c.message("/vips") }

func stripChannelPrefix(s string) string {
	if len(s) > 0 && s[0] == '#' {
		return s[1:]
	}
	return s
}

// truncateUTF8 truncates s to at most n bytes without splitting a
// multi-byte rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && isUTF8Continuation(s[n]) {
		n--
	}
	return s[:n]
}

func isUTF8Continuation(b byte) bool { return b&0xC0 == 0x80 }
