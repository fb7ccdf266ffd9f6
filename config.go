// Copyright (c) the twitchirc authors. All rights reserved. Use of this
// source code is governed by the MIT license that can be found in the
// LICENSE file.

package twitchirc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// FileConfig is the YAML-driven behavior configuration: which channels to
// join and what to request at registration. Secrets never live here — see
// SecretConfig — so this file is safe to commit.
type FileConfig struct {
	Nick         string   `mapstructure:"nick"`
	Channels     []string `mapstructure:"channels"`
	Capabilities []string `mapstructure:"capabilities"`
	UseSASL      bool     `mapstructure:"use_sasl"`
	LogLevel     string   `mapstructure:"log_level"`
}

// LoadFileConfig reads behavior config from path, falling back to the same
// search order ircpush's root command uses: an explicit path, then
// ./config.yaml next to the executable, then ~/.twitchirc, then
// /etc/twitchirc/config.yaml. An empty path skips straight to the fallback
// search.
func LoadFileConfig(path string) (FileConfig, error) {
	v := viper.New()
	v.SetDefault("capabilities", []string{"twitch.tv/membership", "twitch.tv/tags", "twitch.tv/commands"})
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("TWITCHIRC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return FileConfig{}, fmt.Errorf("reading config file %q: %w", path, err)
		}
	} else if !tryConfigSearchPath(v) {
		// No config file anywhere in the search path; defaults and any
		// TWITCHIRC_* env overrides still apply.
	}

	var cfg FileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return FileConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func tryConfigSearchPath(v *viper.Viper) bool {
	candidates := make([]string, 0, 3)
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".twitchirc"))
	}
	candidates = append(candidates, "/etc/twitchirc/config.yaml")

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err == nil {
			return true
		}
	}
	return false
}

// SecretConfig is the account credential, loaded from the environment (and
// optionally a .env file) rather than a committed YAML file.
type SecretConfig struct {
	OAuthToken string `envconfig:"OAUTH_TOKEN"`
	ClientID   string `envconfig:"CLIENT_ID"`
}

// LoadSecretConfig loads .env (if present; its absence is not an error) and
// then decodes TWITCHIRC_* environment variables into a SecretConfig.
func LoadSecretConfig() (SecretConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return SecretConfig{}, fmt.Errorf("loading .env: %w", err)
	}

	var sec SecretConfig
	if err := envconfig.Process("twitchirc", &sec); err != nil {
		return SecretConfig{}, fmt.Errorf("decoding secrets: %w", err)
	}
	return sec, nil
}

// capabilityList converts FileConfig's string capability list to typed
// Capability values, for handing to Config.
func (f FileConfig) capabilityList() []Capability {
	out := make([]Capability, len(f.Capabilities))
	for i, c := range f.Capabilities {
		out[i] = Capability(c)
	}
	return out
}

// BuildClientConfig merges a FileConfig and SecretConfig into a Client
// Config ready for New.
func BuildClientConfig(file FileConfig, secret SecretConfig) Config {
	logger := logrus.New()
	logger.SetFormatter(&nested.Formatter{
		HideKeys:    true,
		FieldsOrder: []string{"component", "channel", "nick"},
	})
	if lvl, err := logrus.ParseLevel(file.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	return Config{
		Nick:         file.Nick,
		Token:        secret.OAuthToken,
		Capabilities: file.capabilityList(),
		UseSASL:      file.UseSASL,
		Logger:       logger,
	}
}
