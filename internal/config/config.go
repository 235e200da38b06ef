// Package config loads glyphforge settings.
//
// Precedence (highest to lowest): flags > GLYPHFORGE_ env vars >
// glyphforge.yaml > defaults. Relative paths from the config file or the
// defaults resolve against the config file's directory (or the working
// directory when there is no file); relative paths from flags and env vars
// resolve against the working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/roach88/glyphforge/internal/artifact"
)

// Defaults.
const (
	DefaultSVGDir         = "./src/svgs"
	DefaultCategoriesFile = "./src/categories.json"
	DefaultRenderDir      = "./.render"
	DefaultBuildDir       = "./.build"
	DefaultOutputDir      = "./dist"
	DefaultHistoryFile    = "./.glyphforge/history.db"
	DefaultFontName       = "alloyicons"
	DefaultTitle          = "Alloy Icons"
	DefaultGoPackage      = "icons"
	DefaultOutput         = "text"

	EnvPrefix = "GLYPHFORGE_"
)

// Binding targets.
const (
	TargetTypeScript = "typescript"
	TargetGo         = "go"
)

// KnownTargets lists every supported binding target.
var KnownTargets = []string{TargetTypeScript, TargetGo}

// ConfigFileNames are searched in the working directory when no config
// file is given explicitly.
var ConfigFileNames = []string{"glyphforge.yaml", "glyphforge.yml"}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all glyphforge settings.
type Config struct {
	SVGDir         string   `koanf:"svg_dir"`
	CategoriesFile string   `koanf:"categories_file"`
	RenderDir      string   `koanf:"render_dir"`
	BuildDir       string   `koanf:"build_dir"`
	OutputDir      string   `koanf:"output_dir"`
	HistoryFile    string   `koanf:"history_file"` // empty disables build history
	FontName       string   `koanf:"font_name"`
	Title          string   `koanf:"title"`
	Targets        []string `koanf:"targets"`
	GoPackage      string   `koanf:"go_package"`
	Verbose        bool     `koanf:"verbose"`
	Output         string   `koanf:"output"`

	// ConfigFile is the file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// pathKeys are resolved to absolute paths after loading.
var pathKeys = []string{"svg_dir", "categories_file", "render_dir", "build_dir", "output_dir", "history_file"}

// flagKeys maps CLI flag names to config keys. Flags not listed here are
// not configuration.
var flagKeys = map[string]string{
	"svg-dir":    "svg_dir",
	"categories": "categories_file",
	"render-dir": "render_dir",
	"build-dir":  "build_dir",
	"output-dir": "output_dir",
	"history":    "history_file",
	"font-name":  "font_name",
	"title":      "title",
	"target":     "targets",
	"go-package": "go_package",
	"verbose":    "verbose",
	"format":     "output",
}

// Defaults returns the default settings as a koanf map.
func Defaults() map[string]any {
	return map[string]any{
		"svg_dir":         DefaultSVGDir,
		"categories_file": DefaultCategoriesFile,
		"render_dir":      DefaultRenderDir,
		"build_dir":       DefaultBuildDir,
		"output_dir":      DefaultOutputDir,
		"history_file":    DefaultHistoryFile,
		"font_name":       DefaultFontName,
		"title":           DefaultTitle,
		"targets":         []string{TargetTypeScript},
		"go_package":      DefaultGoPackage,
		"verbose":         false,
		"output":          DefaultOutput,
	}
}

// Load reads configuration from defaults, cfgFile (or a discovered
// glyphforge.yaml), the environment and flags. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used, err := findConfigFile(cfgFile, cwd)
	if err != nil {
		return nil, err
	}
	baseDir := cwd
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
		baseDir = filepath.Dir(used)
	}
	if err := resolvePaths(k, baseDir); err != nil {
		return nil, err
	}

	// 3. Environment: GLYPHFORGE_SVG_DIR -> svg_dir
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if key == "targets" {
			return key, splitList(value)
		}
		return key, value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only when explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}
	if err := resolvePaths(k, cwd); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ConfigFile = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.FontName) == "" {
		return fmt.Errorf("%w: font_name must not be empty", ErrInvalid)
	}
	if len(c.Targets) == 0 {
		return fmt.Errorf("%w: at least one target is required", ErrInvalid)
	}
	for _, t := range c.Targets {
		if !slices.Contains(KnownTargets, t) {
			return fmt.Errorf("%w: unknown target %q (want one of %s)", ErrInvalid, t, strings.Join(KnownTargets, ", "))
		}
	}
	if c.Output != "text" && c.Output != "json" {
		return fmt.Errorf("%w: output must be text or json, got %q", ErrInvalid, c.Output)
	}
	if err := artifact.CheckLayout(c.BuildDir, c.OutputDir, c.SVGDir, c.RenderDir, c.CategoriesFile); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// findConfigFile returns the config file to load: the explicit path if
// given (it must exist), otherwise the first ConfigFileNames entry in dir.
func findConfigFile(explicit, dir string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(abs); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return abs, nil
	}
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// resolvePaths makes every relative path key absolute against baseDir.
func resolvePaths(k *koanf.Koanf, baseDir string) error {
	for _, key := range pathKeys {
		p := k.String(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		if err := k.Set(key, filepath.Join(baseDir, p)); err != nil {
			return fmt.Errorf("resolve %s: %w", key, err)
		}
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
