// Package config loads book configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2epub/internal/fileutil"
	"github.com/alnah/go-md2epub/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Config holds the book configuration read from a YAML file. Every field
// can be overridden at invocation time; flag values take precedence over
// file values.
type Config struct {
	Title     string `yaml:"title"`
	Author    string `yaml:"author"`
	Language  string `yaml:"language"`
	InputDir  string `yaml:"input_dir"`
	Output    string `yaml:"output"`
	Cover     string `yaml:"cover"`
	Publisher string `yaml:"publisher"`

	// Mode switches.
	Consolidate bool `yaml:"consolidate"`
	NoPackage   bool `yaml:"no_package"`
	PDF         bool `yaml:"pdf"`

	// PDF sub-options. PDFTOC is a pointer so an absent key can be told
	// apart from an explicit false (the default is true).
	PDFCover     bool   `yaml:"pdf_cover"`
	PDFTOC       *bool  `yaml:"pdf_toc"`
	PDFPaperSize string `yaml:"pdf_paper_size"`
}

// Load reads configuration from a file path or config name. If nameOrPath
// contains a path separator, it is treated as a file path; otherwise it is
// treated as a name and searched in standard locations. Returns an error
// if the file is not found (no silent fallback).
func Load(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard
// locations. Tries extensions in order: .yaml, .yml. Tries locations in
// order: current directory, then the user config dir under go-md2epub/.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-md2epub", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
