// Package config provides the configuration loader for kiln.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// Load reads the configuration from the given working directory.
func (l *FileConfigLoader) Load(cwd string) (*domain.Settings, error) {
	return Load(filepath.Join(cwd, l.Filename))
}

// Load reads a configuration file and returns validated settings. Roots and
// include paths are made absolute relative to the file's directory.
func Load(path string) (*domain.Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var kf Kilnfile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	return settingsFrom(&kf, filepath.Dir(path))
}

func settingsFrom(kf *Kilnfile, baseDir string) (*domain.Settings, error) {
	applyDefaults(kf)

	style, err := domain.ParseOutputStyle(kf.Style)
	if err != nil {
		return nil, err
	}
	check, err := domain.ParseCheckMode(kf.Check)
	if err != nil {
		return nil, err
	}

	sourceRoot, err := absolutize(baseDir, kf.SourceRoot)
	if err != nil {
		return nil, err
	}
	outputRoot, err := absolutize(baseDir, kf.OutputRoot)
	if err != nil {
		return nil, err
	}

	includePaths := make([]string, len(kf.IncludePaths))
	for i, p := range kf.IncludePaths {
		if includePaths[i], err = absolutize(baseDir, p); err != nil {
			return nil, err
		}
	}

	return &domain.Settings{
		Layout: domain.Layout{
			SourceRoot: sourceRoot,
			SourceExt:  kf.SourceExt,
			OutputRoot: outputRoot,
			OutputExt:  kf.OutputExt,
			Prefix:     kf.Prefix,
		},
		Force:        kf.Force,
		Response:     kf.Response,
		Debug:        kf.Debug,
		Coalesce:     kf.Coalesce,
		Check:        check,
		Style:        style,
		IncludePaths: includePaths,
		Listen:       kf.Listen,
	}, nil
}

func applyDefaults(kf *Kilnfile) {
	if kf.SourceRoot == "" {
		kf.SourceRoot = "styles"
	}
	if kf.OutputRoot == "" {
		kf.OutputRoot = filepath.Join("public", "css")
	}
	if kf.SourceExt == "" {
		kf.SourceExt = domain.DefaultSourceExt
	}
	if kf.OutputExt == "" {
		kf.OutputExt = domain.DefaultOutputExt
	}
	if kf.Prefix == "" {
		kf.Prefix = "/css"
	}
	if kf.Listen == "" {
		kf.Listen = ":8917"
	}
	if kf.Check == "" {
		kf.Check = string(domain.CheckModtime)
	}
	if kf.Style == "" {
		kf.Style = string(domain.StyleExpanded)
	}
}

func absolutize(baseDir, p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve path"), "path", p)
	}
	return filepath.Clean(abs), nil
}
