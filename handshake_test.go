// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc_test

import (
	"bufio"
	"context"
	"encoding/base64"
	"io"
	"net"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/partyline/twitchirc"
)

// handshakeHarness wires DoHandshake's client side to an in-memory net.Pipe,
// letting each spec play the server side: read the lines the client sent,
// and script the server's replies.
type handshakeHarness struct {
	serverR *bufio.Reader
	serverW net.Conn

	result chan handshakeOutcome
}

type handshakeOutcome struct {
	identity Identity
	missed   []IrcMessage
	err      error
}

func newHandshakeHarness(cfg HandshakeConfig) *handshakeHarness {
	client, server := net.Pipe()
	h := &handshakeHarness{
		serverR: bufio.NewReader(server),
		serverW: server,
		result:  make(chan handshakeOutcome, 1),
	}

	dec := NewDecoder(client)
	enc := NewEncoder(client)

	go func() {
		identity, missed, err := DoHandshake(context.Background(), dec, enc, cfg)
		h.result <- handshakeOutcome{identity: identity, missed: missed, err: err}
	}()

	return h
}

// recvLine reads the next CRLF-terminated line the client sent, with a
// generous timeout since net.Pipe is synchronous and a stuck handshake
// would otherwise hang the suite forever.
func (h *handshakeHarness) recvLine() string {
	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := h.serverR.ReadString('\n')
		done <- result{line: line, err: err}
	}()
	select {
	case r := <-done:
		Expect(r.err).NotTo(HaveOccurred())
		return r.line
	case <-time.After(time.Second):
		Fail("timed out waiting for client to send a line")
		return ""
	}
}

func (h *handshakeHarness) send(line string) {
	_, err := io.WriteString(h.serverW, line)
	Expect(err).NotTo(HaveOccurred())
}

func (h *handshakeHarness) outcome() handshakeOutcome {
	select {
	case o := <-h.result:
		return o
	case <-time.After(time.Second):
		Fail("timed out waiting for DoHandshake to return")
		return handshakeOutcome{}
	}
}

var _ = Describe("DoHandshake", func() {
	It("registers anonymously when no capabilities or token are configured", func() {
		h := newHandshakeHarness(HandshakeConfig{Nick: "justinfan12345"})

		Expect(h.recvLine()).To(Equal("NICK justinfan12345\r\n"))
		h.send(":tmi.twitch.tv 001 justinfan12345 :Welcome, GLHF!\r\n")

		out := h.outcome()
		Expect(out.err).NotTo(HaveOccurred())
		Expect(out.identity.IsAnonymous()).To(BeTrue())
		Expect(out.identity.Nick()).To(Equal("justinfan12345"))
	})

	It("classifies a justinfan nick as anonymous even with a token set", func() {
		h := newHandshakeHarness(HandshakeConfig{Nick: "justinfan1234", Token: "justinfan1234"})

		Expect(h.recvLine()).To(Equal("PASS justinfan1234\r\n"))
		Expect(h.recvLine()).To(Equal("NICK justinfan1234\r\n"))
		h.send(":tmi.twitch.tv 001 justinfan1234 :Welcome, GLHF!\r\n")

		out := h.outcome()
		Expect(out.err).NotTo(HaveOccurred())
		Expect(out.identity.IsAnonymous()).To(BeTrue())
	})

	It("sends PASS before NICK for a plain-password login", func() {
		h := newHandshakeHarness(HandshakeConfig{Nick: "museun", Token: "oauth:abc123"})

		Expect(h.recvLine()).To(Equal("PASS oauth:abc123\r\n"))
		Expect(h.recvLine()).To(Equal("NICK museun\r\n"))
		h.send(":tmi.twitch.tv 001 museun :Welcome, GLHF!\r\n")

		out := h.outcome()
		Expect(out.err).NotTo(HaveOccurred())
		Expect(out.identity.IsAnonymous()).To(BeFalse())
		Expect(out.identity).To(BeAssignableToTypeOf(BasicIdentity{}))
	})

	It("requests capabilities and waits for CAP END before 001 is meaningful", func() {
		caps := []Capability{CapabilityMembership, CapabilityTags, CapabilityCommands}
		h := newHandshakeHarness(HandshakeConfig{Nick: "museun", Token: "oauth:abc123", Capabilities: caps})

		Expect(h.recvLine()).To(Equal("CAP REQ :twitch.tv/membership twitch.tv/tags twitch.tv/commands\r\n"))
		Expect(h.recvLine()).To(Equal("PASS oauth:abc123\r\n"))
		Expect(h.recvLine()).To(Equal("NICK museun\r\n"))

		h.send(":tmi.twitch.tv CAP * ACK :twitch.tv/membership twitch.tv/tags twitch.tv/commands\r\n")
		Expect(h.recvLine()).To(Equal("CAP END\r\n"))

		// Real Twitch ordering: 001 (and 002-376) arrive before
		// GLOBALUSERSTATE. The handshake must not resolve Basic/Anonymous
		// on 001 alone when tags/commands were requested — it keeps
		// reading until GLOBALUSERSTATE arrives.
		h.send(":tmi.twitch.tv 001 museun :Welcome, GLHF!\r\n")
		h.send("@user-id=1234;display-name=museun;color=#FF0000 :tmi.twitch.tv GLOBALUSERSTATE\r\n")

		out := h.outcome()
		Expect(out.err).NotTo(HaveOccurred())
		full, ok := out.identity.(FullIdentity)
		Expect(ok).To(BeTrue())
		Expect(full.Capabilities().Has(CapabilityTags)).To(BeTrue())
		name, ok := full.DisplayName()
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("museun"))
	})

	It("answers a PING during registration without disturbing the sequence", func() {
		h := newHandshakeHarness(HandshakeConfig{Nick: "museun", Token: "oauth:abc123"})

		Expect(h.recvLine()).To(Equal("PASS oauth:abc123\r\n"))
		Expect(h.recvLine()).To(Equal("NICK museun\r\n"))

		h.send("PING :tmi.twitch.tv\r\n")
		Expect(h.recvLine()).To(Equal("PONG :tmi.twitch.tv\r\n"))

		h.send(":tmi.twitch.tv 001 museun :Welcome, GLHF!\r\n")
		out := h.outcome()
		Expect(out.err).NotTo(HaveOccurred())
	})

	It("fails fast on a bad-credentials NOTICE", func() {
		h := newHandshakeHarness(HandshakeConfig{Nick: "museun", Token: "oauth:badtoken"})

		Expect(h.recvLine()).To(Equal("PASS oauth:badtoken\r\n"))
		Expect(h.recvLine()).To(Equal("NICK museun\r\n"))

		h.send(":tmi.twitch.tv NOTICE * :Login authentication failed\r\n")

		out := h.outcome()
		Expect(out.err).To(MatchError(ErrBadPass))
	})

	It("surfaces a server RECONNECT as ErrShouldReconnect", func() {
		h := newHandshakeHarness(HandshakeConfig{Nick: "museun"})

		Expect(h.recvLine()).To(Equal("NICK museun\r\n"))
		h.send(":tmi.twitch.tv RECONNECT\r\n")

		out := h.outcome()
		Expect(out.err).To(MatchError(ErrShouldReconnect))
	})

	It("buffers unrelated frames seen during registration into missed", func() {
		h := newHandshakeHarness(HandshakeConfig{Nick: "museun"})

		Expect(h.recvLine()).To(Equal("NICK museun\r\n"))
		h.send(":museun!museun@tmi.twitch.tv JOIN #museun\r\n")
		h.send(":tmi.twitch.tv 001 museun :Welcome, GLHF!\r\n")

		out := h.outcome()
		Expect(out.err).NotTo(HaveOccurred())
		Expect(out.missed).To(HaveLen(1))
		Expect(out.missed[0].CommandString()).To(Equal("JOIN"))
	})

	It("completes SASL PLAIN before sending CAP END", func() {
		caps := []Capability{CapabilityTags, CapabilitySASL}
		h := newHandshakeHarness(HandshakeConfig{
			Nick: "museun", Token: "oauth:abc123", Capabilities: caps, UseSASL: true,
		})

		Expect(h.recvLine()).To(Equal("CAP REQ :twitch.tv/tags sasl\r\n"))
		Expect(h.recvLine()).To(Equal("NICK museun\r\n"))

		h.send(":tmi.twitch.tv CAP * ACK :twitch.tv/tags sasl\r\n")
		Expect(h.recvLine()).To(Equal("AUTHENTICATE PLAIN\r\n"))

		h.send("AUTHENTICATE +\r\n")

		authLine := h.recvLine()
		Expect(authLine).To(HavePrefix("AUTHENTICATE "))
		payload, err := base64.StdEncoding.DecodeString(strings.TrimSuffix(strings.TrimPrefix(authLine, "AUTHENTICATE "), "\r\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(payload)).To(Equal("\x00museun\x00abc123"))

		h.send(":tmi.twitch.tv 903 museun :successfully authenticated\r\n")
		Expect(h.recvLine()).To(Equal("CAP END\r\n"))

		// twitch.tv/tags was requested, so 001 alone doesn't resolve the
		// identity — GLOBALUSERSTATE, which arrives after it, does.
		h.send(":tmi.twitch.tv 001 museun :Welcome, GLHF!\r\n")
		h.send("@user-id=1234;display-name=museun;color=#FF0000 :tmi.twitch.tv GLOBALUSERSTATE\r\n")
		out := h.outcome()
		Expect(out.err).NotTo(HaveOccurred())
		Expect(out.identity.IsAnonymous()).To(BeFalse())
		Expect(out.identity).To(BeAssignableToTypeOf(FullIdentity{}))
	})
})
