package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultBaseYear     = 2010
	defaultEuroAreaISO2 = "XC"
	defaultNumeraireISO = "US"
)

type Config struct {
	BaseYear     int         `toml:"base_year"`
	EuroAreaISO2 string      `toml:"euro_area_iso2"`
	NumeraireISO string      `toml:"numeraire_iso2"`
	Items        []string    `toml:"items"`
	Input        InputConfig `toml:"input"`
	Output       OutConfig   `toml:"output"`
	Log          LogConfig   `toml:"log"`
}

type InputConfig struct {
	Countries string `toml:"countries"`
	Paper     string `toml:"paper"`
	Macro     string `toml:"macro"`
}

type OutConfig struct {
	Dir     string `toml:"dir"`
	SQLite  string `toml:"sqlite"`
	Profile string `toml:"profile"`
	CSV     bool   `toml:"csv"`
}

type LogConfig struct {
	Level   string `toml:"level"`
	Verbose bool   `toml:"verbose"`
}

func defaultConfig() Config {
	return Config{
		BaseYear:     defaultBaseYear,
		EuroAreaISO2: defaultEuroAreaISO2,
		NumeraireISO: defaultNumeraireISO,
		Input: InputConfig{
			Countries: filepath.Join("data", "eu_country_codes.csv"),
			Paper:     filepath.Join("data", "faostat_paper.csv"),
			Macro:     filepath.Join("data", "worldbank_macro.csv"),
		},
		Output: OutConfig{
			Dir: "outputs",
		},
		Log: LogConfig{Level: "info"},
	}
}

// loadConfig returns the defaults overlaid with the TOML file at path.
// An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) sqlitePath() string {
	if c.Output.SQLite != "" {
		return c.Output.SQLite
	}
	return filepath.Join(c.Output.Dir, "paper_clean.sqlite")
}

func (c Config) profilePath() string {
	if c.Output.Profile != "" {
		return c.Output.Profile
	}
	return filepath.Join(c.Output.Dir, "paper_clean_profile.md")
}

func (c Config) validate() error {
	var errs []error
	if c.BaseYear <= 0 {
		errs = append(errs, fmt.Errorf("base_year must be positive, got %d", c.BaseYear))
	}
	if c.Input.Countries == "" || c.Input.Paper == "" || c.Input.Macro == "" {
		errs = append(errs, errors.New("input paths must not be empty"))
	}
	if c.Output.Dir == "" && c.Output.SQLite == "" {
		errs = append(errs, errors.New("output dir or sqlite path required"))
	}
	if c.EuroAreaISO2 == "" || c.NumeraireISO == "" {
		errs = append(errs, errors.New("euro_area_iso2 and numeraire_iso2 must be set"))
	}
	return errors.Join(errs...)
}
