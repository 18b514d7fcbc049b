package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// inspectConfig controls the inspector's rendering. Values come from
// defaults overlaid with whatever the optional TOML file defines.
type inspectConfig struct {
	Theme       themeConfig
	IndentWidth int
}

type themeConfig struct {
	Title    string
	Node     string
	Type     string
	Selected string
	Error    string
	Help     string
}

func defaultConfig() inspectConfig {
	return inspectConfig{
		IndentWidth: 2,
		Theme: themeConfig{
			Title:    "#7D56F4",
			Node:     "#98FB98",
			Type:     "#87CEEB",
			Selected: "#FAFAFA",
			Error:    "#FF6B6B",
			Help:     "#666666",
		},
	}
}

type fileConfig struct {
	IndentWidth int             `toml:"indent_width"`
	Theme       fileThemeConfig `toml:"theme"`
}

type fileThemeConfig struct {
	Title    string `toml:"title"`
	Node     string `toml:"node"`
	Type     string `toml:"type"`
	Selected string `toml:"selected"`
	Error    string `toml:"error"`
	Help     string `toml:"help"`
}

func loadConfig(path string) (inspectConfig, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return inspectConfig{}, fmt.Errorf("load inspect config: %w", err)
	}

	if meta.IsDefined("indent_width") && raw.IndentWidth > 0 {
		cfg.IndentWidth = raw.IndentWidth
	}
	if meta.IsDefined("theme", "title") {
		cfg.Theme.Title = strings.TrimSpace(raw.Theme.Title)
	}
	if meta.IsDefined("theme", "node") {
		cfg.Theme.Node = strings.TrimSpace(raw.Theme.Node)
	}
	if meta.IsDefined("theme", "type") {
		cfg.Theme.Type = strings.TrimSpace(raw.Theme.Type)
	}
	if meta.IsDefined("theme", "selected") {
		cfg.Theme.Selected = strings.TrimSpace(raw.Theme.Selected)
	}
	if meta.IsDefined("theme", "error") {
		cfg.Theme.Error = strings.TrimSpace(raw.Theme.Error)
	}
	if meta.IsDefined("theme", "help") {
		cfg.Theme.Help = strings.TrimSpace(raw.Theme.Help)
	}

	return cfg, nil
}
