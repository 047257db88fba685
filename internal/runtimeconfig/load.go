package runtimeconfig

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the config file looked up in the site root.
const DefaultFile = "press.hcl"

type hclFile struct {
	PostsDir        string       `hcl:"posts_dir,optional"`
	LayoutsDir      string       `hcl:"layouts_dir,optional"`
	OutputDir       string       `hcl:"output_dir,optional"`
	Extension       string       `hcl:"extension,optional"`
	OutputExtension string       `hcl:"output_extension,optional"`
	YieldVariable   string       `hcl:"yield_variable,optional"`
	MaxDepth        int          `hcl:"max_depth,optional"`
	Editor          string       `hcl:"editor,optional"`
	Shell           string       `hcl:"shell,optional"`
	Markdown        *hclMarkdown `hcl:"markdown,block"`
	Logging         *hclLogging  `hcl:"logging,block"`
}

type hclMarkdown struct {
	Converter  string   `hcl:"converter,optional"`
	Command    string   `hcl:"command,optional"`
	Extensions []string `hcl:"extensions,optional"`
	HardWraps  *bool    `hcl:"hard_wraps,optional"`
	Unsafe     *bool    `hcl:"unsafe,optional"`
}

type hclLogging struct {
	Provider string `hcl:"provider,optional"`
	Level    string `hcl:"level,optional"`
	Format   string `hcl:"format,optional"`
}

// LoadFile decodes the HCL file at path over DefaultConfig. Attributes left
// out of the file keep their defaults. The result is validated.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	parsed.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

func (f hclFile) apply(cfg *Config) {
	setString(&cfg.PostsDir, f.PostsDir)
	setString(&cfg.LayoutsDir, f.LayoutsDir)
	setString(&cfg.OutputDir, f.OutputDir)
	setString(&cfg.Extension, f.Extension)
	setString(&cfg.OutputExtension, f.OutputExtension)
	setString(&cfg.YieldVariable, f.YieldVariable)
	setString(&cfg.Editor, f.Editor)
	setString(&cfg.Shell, f.Shell)
	if f.MaxDepth != 0 {
		cfg.MaxDepth = f.MaxDepth
	}

	if md := f.Markdown; md != nil {
		setString(&cfg.Markdown.Converter, md.Converter)
		setString(&cfg.Markdown.Command, md.Command)
		if md.Extensions != nil {
			cfg.Markdown.Extensions = md.Extensions
		}
		if md.HardWraps != nil {
			cfg.Markdown.HardWraps = *md.HardWraps
		}
		if md.Unsafe != nil {
			cfg.Markdown.Unsafe = *md.Unsafe
		}
	}

	if lg := f.Logging; lg != nil {
		setString(&cfg.Logging.Provider, lg.Provider)
		setString(&cfg.Logging.Level, lg.Level)
		setString(&cfg.Logging.Format, lg.Format)
	}
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
