// Package config loads the sitabcomp configuration file.
//
// The file is TOML. Every key is optional and overrides the matching
// default:
//
//	standards   = ["dvb", "japan"]  # active standards
//	compression = "zstd"            # none, zstd, s2, lz4
//	crc         = "check"           # check, ignore, compute
//	indent      = 2                 # XML indentation
//	deduplicate = true              # drop repeated sections
//	log_level   = "info"            # zerolog level name
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/format"
	"github.com/arloliu/sitab/section"
	"github.com/rs/zerolog"
)

// MaxIndent bounds the XML indentation.
const MaxIndent = 16

// Config is the resolved configuration.
type Config struct {
	Standards   format.Standards
	Compression format.CompressionType
	CRC         section.CRCMode
	Indent      int
	Deduplicate bool
	LogLevel    string
}

type fileConfig struct {
	Standards   []string `toml:"standards"`
	Compression string   `toml:"compression"`
	CRC         string   `toml:"crc"`
	Indent      int      `toml:"indent"`
	Deduplicate bool     `toml:"deduplicate"`
	LogLevel    string   `toml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Compression: format.CompressionNone,
		CRC:         section.CRCCheck,
		Indent:      2,
		LogLevel:    "info",
	}
}

// Load reads a configuration file over the defaults.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	return resolve(meta, raw)
}

// Parse decodes configuration text over the defaults.
func Parse(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return resolve(meta, raw)
}

func resolve(meta toml.MetaData, raw fileConfig) (Config, error) {
	cfg := Default()

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q", errs.ErrInvalidConfig, undecoded[0].String())
	}

	if meta.IsDefined("standards") {
		s, err := format.ParseStandards(raw.Standards...)
		if err != nil {
			return Config{}, fmt.Errorf("%w: standards: %w", errs.ErrInvalidConfig, err)
		}
		cfg.Standards = s
	}
	if meta.IsDefined("compression") {
		c, err := format.ParseCompression(raw.Compression)
		if err != nil {
			return Config{}, fmt.Errorf("%w: compression: %w", errs.ErrInvalidConfig, err)
		}
		cfg.Compression = c
	}
	if meta.IsDefined("crc") {
		m, err := section.ParseCRCMode(strings.ToLower(strings.TrimSpace(raw.CRC)))
		if err != nil {
			return Config{}, err
		}
		cfg.CRC = m
	}
	if meta.IsDefined("indent") {
		cfg.Indent = raw.Indent
	}
	if meta.IsDefined("deduplicate") {
		cfg.Deduplicate = raw.Deduplicate
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Indent < 0 || c.Indent > MaxIndent {
		return fmt.Errorf("%w: indent %d not in 0..%d", errs.ErrInvalidConfig, c.Indent, MaxIndent)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", errs.ErrInvalidConfig, err)
	}

	return nil
}
