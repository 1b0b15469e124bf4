package config

// Kilnfile represents the structure of the kiln.yaml configuration file.
type Kilnfile struct {
	Version string `yaml:"version"`

	SourceRoot string `yaml:"source_root"`
	SourceExt  string `yaml:"source_ext"`
	OutputRoot string `yaml:"output_root"`
	OutputExt  string `yaml:"output_ext"`
	Prefix     string `yaml:"prefix"`

	Listen string `yaml:"listen"`

	Force    bool `yaml:"force"`
	Response bool `yaml:"response"`
	Debug    bool `yaml:"debug"`
	Coalesce bool `yaml:"coalesce"`

	Check string `yaml:"check"`
	Style string `yaml:"style"`

	IncludePaths []string `yaml:"include_paths"`
}
