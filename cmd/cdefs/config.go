// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/tailscale/hujson"
)

// config holds the settings of the tool. Settings are read from an optional
// HuJSON file (JSON with comments and trailing commas), and may then be
// overridden by command-line flags.
type config struct {
	Color   bool   `json:"color"`   // colorize diagnostics
	Format  string `json:"format"`  // output format, "text" or "json"
	Defines bool   `json:"defines"` // report constants defined by macros
	Enums   bool   `json:"enums"`   // report constants defined by enumerators
}

func defaultConfig() *config {
	return &config{
		Color:   !color.NoColor,
		Format:  "text",
		Defines: true,
		Enums:   true,
	}
}

// loadConfig reads the config file at path over the defaults. If path is
// empty, the defaults are returned.
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.parse(data); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c *config) parse(data []byte) error {
	std, err := hujson.Standardize(data)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(std))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return err
	}
	return c.check()
}

func (c *config) check() error {
	switch c.Format {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("unknown output format %q", c.Format)
}
