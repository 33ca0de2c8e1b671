// Package config loads the YAML link-configuration file SPEC_FULL.md
// §3.7 defines, following the teacher's deviceid.go in using
// gopkg.in/yaml.v3 for the parse (here with typed struct tags rather
// than deviceid.go's dynamic map[string]interface{}, since this
// schema is small and fixed rather than sourced from a third-party
// data file).
package config

import (
	"fmt"
	"os"

	"github.com/n0call/axfx25/internal/ax25"
	"github.com/n0call/axfx25/internal/fx25"
	"gopkg.in/yaml.v3"
)

// LinkProfile is one named {source, dest, ssids, tag} record.
type LinkProfile struct {
	Name       string `yaml:"name"`
	SourceCall string `yaml:"source_call"`
	SourceSSID byte   `yaml:"source_ssid"`
	DestCall   string `yaml:"dest_call"`
	DestSSID   byte   `yaml:"dest_ssid"`
	FX25Tag    int    `yaml:"fx25_tag"`
}

// LinkSet is the top-level document: a list of named link profiles.
type LinkSet struct {
	Links []LinkProfile `yaml:"links"`
}

// ErrInvalidConfig marks a link profile that violates the same
// constraints the AX.25 frame builder enforces (callsign length, SSID
// range), caught at load time instead of at first use.
var ErrInvalidConfig = fmt.Errorf("config: invalid link profile")

// Load reads and validates the link-configuration file at path.
func Load(path string) (*LinkSet, error) {
	var data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load: %w", err)
	}

	var set LinkSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("config: load: parse %s: %w", path, err)
	}

	for _, link := range set.Links {
		if err := link.Validate(); err != nil {
			return nil, err
		}
	}

	return &set, nil
}

// Validate checks a profile against the frame builder's constraints
// (spec.md §4.6) plus the FX.25 tag range, when a tag is requested.
func (p LinkProfile) Validate() error {
	if len(p.SourceCall) > 6 {
		return fmt.Errorf("%w %q: source_call longer than 6 characters", ErrInvalidConfig, p.Name)
	}
	if len(p.DestCall) > 6 {
		return fmt.Errorf("%w %q: dest_call longer than 6 characters", ErrInvalidConfig, p.Name)
	}
	if p.SourceSSID > 63 {
		return fmt.Errorf("%w %q: source_ssid exceeds 6 bits", ErrInvalidConfig, p.Name)
	}
	if p.DestSSID > 63 {
		return fmt.Errorf("%w %q: dest_ssid exceeds 6 bits", ErrInvalidConfig, p.Name)
	}
	if p.FX25Tag != 0 && (p.FX25Tag < fx25.CTagMin || p.FX25Tag > fx25.CTagMax) {
		return fmt.Errorf("%w %q: fx25_tag 0x%02x out of range", ErrInvalidConfig, p.Name, p.FX25Tag)
	}
	return nil
}

// LinkConfig converts the profile to the internal/ax25 form the frame
// builder consumes.
func (p LinkProfile) LinkConfig() ax25.LinkConfig {
	return ax25.LinkConfig{
		SourceCall: p.SourceCall,
		SourceSSID: p.SourceSSID,
		DestCall:   p.DestCall,
		DestSSID:   p.DestSSID,
	}
}

// Find returns the named profile, or false if no link with that name
// exists.
func (s *LinkSet) Find(name string) (LinkProfile, bool) {
	for _, link := range s.Links {
		if link.Name == name {
			return link, true
		}
	}
	return LinkProfile{}, false
}
