// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	// The file must exist.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

// Result is a loaded configuration together with the file it came from.
type Result struct {
	Config *Config
	// Path is the config file that was read, empty when none was found.
	Path string
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	res, err := LoadResult(ctx, opts)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadResult is Load that also reports which file was read.
func LoadResult(ctx context.Context, opts LoadOptions) (*Result, error) {
	cfg, path, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Result{Config: cfg, Path: path}, nil
}
