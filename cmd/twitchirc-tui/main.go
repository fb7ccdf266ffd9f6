// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

// Command twitchirc-tui is a full-screen Bubble Tea chat viewer: a scrolling
// message pane and a single-line input, for one channel at a time.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/partyline/twitchirc"
)

var (
	cfgFile string
	channel string

	rootCmd = &cobra.Command{
		Use:   "twitchirc-tui",
		Short: "A full-screen viewer for a single Twitch chat channel",
		RunE:  run,
	}
)

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "path to config.yaml (searches the usual locations if empty)")
	rootCmd.Flags().StringVar(&channel, "channel", "", "channel to view (overrides the first channel in the config file)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	file, err := twitchirc.LoadFileConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	secret, err := twitchirc.LoadSecretConfig()
	if err != nil {
		return fmt.Errorf("loading secrets: %w", err)
	}

	target := channel
	if target == "" && len(file.Channels) > 0 {
		target = file.Channels[0]
	}
	if target == "" {
		return fmt.Errorf("no channel configured: set channels in the config file or pass --channel")
	}

	client, err := twitchirc.New(twitchirc.BuildClientConfig(file, secret))
	if err != nil {
		return fmt.Errorf("building client: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connErr := make(chan error, 1)
	go func() { connErr <- client.Connect(ctx) }()

	if err := client.Join(target); err != nil {
		return fmt.Errorf("joining %s: %w", target, err)
	}

	m := newModel(client, target)
	p := tea.NewProgram(m, tea.WithAltScreen())

	go pumpMessages(ctx, client, p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

type chatLine struct {
	nick, body string
	action     bool
}

func (l chatLine) String() string {
	if l.action {
		return actionStyle.Render(fmt.Sprintf("* %s %s", l.nick, l.body))
	}
	return fmt.Sprintf("%s: %s", nickStyle.Render(l.nick), l.body)
}

var (
	nickStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	actionStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("99"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("57")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	inputStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	maxScrollback = 500
)

type chatMsg chatLine

type model struct {
	client  *twitchirc.Client
	channel string

	lines  []chatLine
	input  strings.Builder
	height int
	width  int
}

func newModel(client *twitchirc.Client, channel string) model {
	return model{client: client, channel: channel}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case chatMsg:
		m.lines = append(m.lines, chatLine(msg))
		if len(m.lines) > maxScrollback {
			m.lines = m.lines[len(m.lines)-maxScrollback:]
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.String())
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			return m, m.send(text)
		case tea.KeyBackspace:
			s := m.input.String()
			if len(s) > 0 {
				m.input.Reset()
				m.input.WriteString(s[:len(s)-1])
			}
			return m, nil
		case tea.KeyRunes, tea.KeySpace:
			m.input.WriteString(string(msg.Runes))
			if msg.Type == tea.KeySpace {
				m.input.WriteRune(' ')
			}
			return m, nil
		}
	}
	return m, nil
}

func (m model) send(text string) tea.Cmd {
	return func() tea.Msg {
		for _, part := range twitchirc.SplitMessage(m.channel, text) {
			_ = m.client.Send(part)
		}
		return nil
	}
}

func (m model) View() string {
	header := headerStyle.Render(fmt.Sprintf("twitchirc — #%s", strings.TrimPrefix(m.channel, "#")))

	bodyHeight := m.height - 4
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	visible := m.lines
	if len(visible) > bodyHeight {
		visible = visible[len(visible)-bodyHeight:]
	}
	var b strings.Builder
	for _, l := range visible {
		b.WriteString(l.String())
		b.WriteString("\n")
	}

	input := inputStyle.Width(m.width - 2).Render("> " + m.input.String())
	return lipgloss.JoinVertical(lipgloss.Left, header, b.String(), input)
}

// pumpMessages forwards incoming PRIVMSGs from the client to the running
// Bubble Tea program until ctx is cancelled.
func pumpMessages(ctx context.Context, client *twitchirc.Client, p *tea.Program) {
	for {
		cmd, err := client.WaitFor(ctx, twitchirc.KindPrivmsg)
		if err != nil {
			return
		}
		pm, ok := cmd.AsPrivmsg()
		if !ok {
			continue
		}
		if pm.IsAction() {
			p.Send(chatMsg{nick: pm.Nick(), body: pm.ActionMessage(), action: true})
		} else {
			p.Send(chatMsg{nick: pm.Nick(), body: pm.Message()})
		}
	}
}
