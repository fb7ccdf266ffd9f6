// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

// Command twitchirc-chat is a small interactive console client: it joins
// the configured channels, prints incoming chat wrapped to the terminal
// width, and sends whatever you type, prefixed with "#channel " to target
// a channel other than the first one joined.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"

	"github.com/partyline/twitchirc"
)

var (
	cfgFile     string
	wrapWidth   uint
	extraChans  []string
	rootCmd     = &cobra.Command{
		Use:   "twitchirc-chat",
		Short: "An interactive console client for Twitch chat",
		RunE:  run,
	}
)

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "path to config.yaml (searches the usual locations if empty)")
	rootCmd.Flags().UintVar(&wrapWidth, "width", 100, "wrap incoming chat lines to this many columns")
	rootCmd.Flags().StringSliceVar(&extraChans, "channel", nil, "channel to join, in addition to any in the config file")
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

	channels := append(append([]string{}, file.Channels...), extraChans...)
	if len(channels) == 0 {
		return fmt.Errorf("no channels configured: set channels in the config file or pass --channel")
	}

	client, err := twitchirc.New(twitchirc.BuildClientConfig(file, secret))
	if err != nil {
		return fmt.Errorf("building client: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	connErr := make(chan error, 1)
	go func() { connErr <- client.Connect(ctx) }()

	for _, ch := range channels {
		if err := client.Join(ch); err != nil {
			return fmt.Errorf("joining %s: %w", ch, err)
		}
	}
	fmt.Fprintf(os.Stderr, "joined: %s\n", strings.Join(channels, ", "))

	go printIncoming(ctx, client)
	go readAndSend(ctx, client, channels[0])

	select {
	case <-ctx.Done():
		return nil
	case err := <-connErr:
		return err
	}
}

func printIncoming(ctx context.Context, client *twitchirc.Client) {
	for {
		cmd, err := client.WaitFor(ctx, twitchirc.KindPrivmsg)
		if err != nil {
			return
		}
		p, ok := cmd.AsPrivmsg()
		if !ok {
			continue
		}
		body := p.Message()
		if p.IsAction() {
			body = "* " + p.Nick() + " " + p.ActionMessage()
		} else {
			body = p.Nick() + ": " + body
		}
		fmt.Println(wordwrap.WrapString(fmt.Sprintf("[%s] %s", p.ChannelName(), body), wrapWidth))
	}
}

func readAndSend(ctx context.Context, client *twitchirc.Client, defaultChannel string) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "/quit") {
			os.Exit(0)
		}

		channel, message := defaultChannel, line
		if strings.HasPrefix(line, "#") {
			if target, rest, ok := strings.Cut(line, " "); ok {
				channel, message = target, rest
			}
		}

		for _, part := range twitchirc.SplitMessage(channel, message) {
			if err := client.Send(part); err != nil {
				fmt.Fprintln(os.Stderr, "send error:", err)
				return
			}
		}
	}
}
