package config

import (
	"fmt"

	"github.com/de-tools/parts-atlas/pkg/store/warehouse"
	"gopkg.in/ini.v1"
)

// Registry exposes the profiles of a .databrickscfg file.
type Registry interface {
	GetProfiles() ([]string, error)
	GetConfig(profile string) (*warehouse.DatabricksConfig, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles() ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetConfig(profile string) (*warehouse.DatabricksConfig, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	return &warehouse.DatabricksConfig{
		Host:     section.Key("host").String(),
		Token:    section.Key("token").String(),
		HTTPPath: section.Key("http_path").String(),
		Catalog:  section.Key("catalog").String(),
		Schema:   section.Key("schema").String(),
	}, nil
}

// Resolve fills the unset warehouse fields from the configured profile, if any.
func (d DatabricksSource) Resolve() (warehouse.DatabricksConfig, error) {
	resolved := d.DatabricksConfig
	if d.CfgPath == "" {
		return resolved, nil
	}

	registry, err := NewRegistry(d.CfgPath)
	if err != nil {
		return resolved, fmt.Errorf("failed to read %s: %w", d.CfgPath, err)
	}
	profile := d.CfgProfile
	if profile == "" {
		profile = ini.DefaultSection
	}
	fromFile, err := registry.GetConfig(profile)
	if err != nil {
		return resolved, err
	}

	fill(&resolved.Host, fromFile.Host)
	fill(&resolved.Token, fromFile.Token)
	fill(&resolved.HTTPPath, fromFile.HTTPPath)
	fill(&resolved.Catalog, fromFile.Catalog)
	fill(&resolved.Schema, fromFile.Schema)
	return resolved, nil
}

func fill(dst *string, src string) {
	if *dst == "" {
		*dst = src
	}
}
