package config

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Load loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - .patchrc will try both YAML and HCL formats
func Load(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var cfg *Config

	// For .patchrc files, try both YAML and HCL
	if ext == ".patchrc" || filepath.Base(path) == ".patchrc" {
		cfg, err = loadYAML(data)
		if err != nil {
			var hclErr error
			cfg, hclErr = loadHCL(data, path)
			if hclErr != nil {
				return nil, errors.Errorf("parsing .patchrc as YAML or HCL: %w", err)
			}
		}
	} else {
		switch ext {
		case ".json":
			cfg, err = loadJSON(data)
		case ".yaml", ".yml":
			cfg, err = loadYAML(data)
		case ".hcl":
			cfg, err = loadHCL(data, path)
		default:
			return nil, errors.Errorf("unsupported file extension %q", ext)
		}
		if err != nil {
			return nil, err
		}
	}

	cfg.location = path
	if err := Validate(ctx, cfg); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadJSON loads a configuration from JSON data
func loadJSON(data []byte) (*Config, error) {
	var cfg Config
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &cfg, nil
}

// loadYAML loads a configuration from YAML data
func loadYAML(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}

// loadHCL loads a configuration from HCL data. Targets are labeled blocks:
//
//	work_dir = "app/routers"
//
//	backup {
//	  patterns = ["*.py"]
//	}
//
//	target "auth.py" {
//	  rule {
//	    pattern = "..."
//	    replace = "$${1}:"
//	  }
//	}
//
// Note the $$ escape: a literal ${1} in the replacement has to be written
// $${1} so HCL does not treat it as an interpolation.
func loadHCL(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	type hclRule struct {
		Pattern string `hcl:"pattern"`
		Replace string `hcl:"replace"`
	}
	type hclTarget struct {
		File  string    `hcl:"file,label"`
		Rules []hclRule `hcl:"rule,block"`
	}
	type hclBackup struct {
		Prefix   string   `hcl:"prefix,optional"`
		Patterns []string `hcl:"patterns,optional"`
	}
	type hclConfig struct {
		WorkDir string      `hcl:"work_dir"`
		Backup  *hclBackup  `hcl:"backup,block"`
		Targets []hclTarget `hcl:"target,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		WorkDir: hclCfg.WorkDir,
	}
	if hclCfg.Backup != nil {
		cfg.Backup = BackupArgs{
			Prefix:   hclCfg.Backup.Prefix,
			Patterns: hclCfg.Backup.Patterns,
		}
	}
	for _, t := range hclCfg.Targets {
		target := Target{File: t.File}
		for _, r := range t.Rules {
			target.Rules = append(target.Rules, RewriteRule{
				Pattern: r.Pattern,
				Replace: r.Replace,
			})
		}
		cfg.Targets = append(cfg.Targets, target)
	}

	return cfg, nil
}

// TODO(dr.methodical): 🔧 expose variables (e.g. env) in the HCL eval context
