// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileConfigFromExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "nick: museun\nchannels:\n  - museun\n  - otherchannel\nuse_sasl: true\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := LoadFileConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "museun", cfg.Nick)
	assert.Equal(t, []string{"museun", "otherchannel"}, cfg.Channels)
	assert.True(t, cfg.UseSASL)
	assert.Equal(t, []string{"twitch.tv/membership", "twitch.tv/tags", "twitch.tv/commands"}, cfg.Capabilities)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFileConfigMissingExplicitPathErrors(t *testing.T) {
	_, err := LoadFileConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoadFileConfigWithNoFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFileConfig("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"twitch.tv/membership", "twitch.tv/tags", "twitch.tv/commands"}, cfg.Capabilities)
}

func TestBuildClientConfigMergesFileAndSecret(t *testing.T) {
	file := FileConfig{
		Nick:         "museun",
		Capabilities: []string{"twitch.tv/tags", "sasl"},
		UseSASL:      true,
	}
	secret := SecretConfig{OAuthToken: "oauth:abc123"}

	cfg := BuildClientConfig(file, secret)
	assert.Equal(t, "museun", cfg.Nick)
	assert.Equal(t, "oauth:abc123", cfg.Token)
	assert.Equal(t, []Capability{CapabilityTags, CapabilitySASL}, cfg.Capabilities)
	assert.True(t, cfg.UseSASL)
}

func TestLoadSecretConfigReadsEnvironment(t *testing.T) {
	t.Setenv("TWITCHIRC_OAUTH_TOKEN", "oauth:fromenv")
	t.Setenv("TWITCHIRC_CLIENT_ID", "client-123")

	sec, err := LoadSecretConfig()
	require.NoError(t, err)
	assert.Equal(t, "oauth:fromenv", sec.OAuthToken)
	assert.Equal(t, "client-123", sec.ClientID)
}
