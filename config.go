package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server's static configuration (spec.md §6.2), loaded once at
// startup and shared read-only by every connection (spec.md §5 "config is
// immutable after construction; may be shared freely"). YAML is kept as the
// config format because it's the teacher's existing choice (main.go already
// decodes its tunnel config with gopkg.in/yaml.v3); the spec's schema is
// HOCON-shaped but nothing in the retrieval pack carries an HOCON parser.
type Config struct {
	Address           string        `yaml:"address"`
	DefaultProtocol   string        `yaml:"default_protocol,omitempty"`
	MaxPlayers        int32         `yaml:"max_players"`
	ServerFullMessage string        `yaml:"server_full_message,omitempty"`
	MOTD              string        `yaml:"motd"`
	Brand             string        `yaml:"brand"`
	Dimension         string        `yaml:"dimension"`
	OnJoin            []JoinAction  `yaml:"on_join,omitempty"`
}

// TitleAction is "send title"'s payload; unset timings default to 20/100/20
// ticks per spec.md §6.2.
type TitleAction struct {
	FadeIn   *int32  `yaml:"fade_in,omitempty"`
	Stay     *int32  `yaml:"stay,omitempty"`
	FadeOut  *int32  `yaml:"fade_out,omitempty"`
	Title    *string `yaml:"title,omitempty"`
	Subtitle *string `yaml:"subtitle,omitempty"`
}

// BossbarAction is "send bossbar"'s payload.
type BossbarAction struct {
	Title       string  `yaml:"title"`
	Progress    float32 `yaml:"progress"`
	Color       string  `yaml:"color"`
	Notches     string  `yaml:"notches"`
	DarkensSky  bool    `yaml:"darkens_sky,omitempty"`
	IsDragonBar bool    `yaml:"is_dragon_bar,omitempty"`
	CreateFog   bool    `yaml:"create_fog,omitempty"`
}

// PluginMessageAction is "send plugin message"'s payload.
type PluginMessageAction struct {
	Channel string `yaml:"channel"`
	Message string `yaml:"message"`
}

// JoinAction is the one-of-six on-join action (spec.md §6.2), modeled as an
// options struct with one populated field rather than a hand-rolled
// UnmarshalYAML tagged-union decoder - the teacher's config type (main.go's
// Config) is a flat struct-tag decode, and nothing elsewhere in the pack
// implements a custom yaml.Unmarshaler, so this generalizes the teacher's
// own pattern instead of introducing one.
type JoinAction struct {
	SendMessage       *string                `yaml:"send_message,omitempty"`
	SendTitle         *TitleAction           `yaml:"send_title,omitempty"`
	SendBossbar       *BossbarAction         `yaml:"send_bossbar,omitempty"`
	SendPluginMessage *PluginMessageAction   `yaml:"send_plugin_message,omitempty"`
	SendActionBar     *string                `yaml:"send_action_bar,omitempty"`
	MatchVersion      map[string]JoinAction  `yaml:"match_version,omitempty"`
}

// DefaultConfig is written out the first time the server is started against
// a missing config path (spec.md §6.4).
func DefaultConfig() Config {
	return Config{
		Address:    "0.0.0.0:25565",
		MaxPlayers: 20,
		MOTD:       "A Limbo Server",
		Brand:      "limbo",
		Dimension:  "overworld",
	}
}

// LoadConfig reads path, writing out DefaultConfig first if it doesn't
// exist yet (spec.md §6.4 "If missing, a default configuration file is
// written to that path at startup; then the file is read").
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		def := DefaultConfig()
		data, err := yaml.Marshal(def)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolvedDefaultProtocol returns cfg's configured default protocol, or
// Latest() if unset/unparseable.
func (cfg *Config) ResolvedDefaultProtocol() Protocol {
	if cfg.DefaultProtocol == "" {
		return Latest()
	}
	if p, ok := ParseProtocolName(cfg.DefaultProtocol); ok {
		return p
	}
	return Latest()
}
