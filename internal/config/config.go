package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/brogergvhs/toond/internal/webtoons"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Locale         string `yaml:"locale"`
	DesktopBase    string `yaml:"desktop_base"`
	MobileBase     string `yaml:"mobile_base"`
	DetailSlug     string `yaml:"detail_slug"`
	SchedulePrefix string `yaml:"schedule_prefix"`

	UserAgent        string `yaml:"user_agent"`
	Cookie           string `yaml:"cookie"`
	CookieFile       string `yaml:"cookie_file"`
	Timeout          int    `yaml:"timeout"`
	Retries          int    `yaml:"retries"`
	MaxRedirects     int    `yaml:"max_redirects"`
	CloudflareBypass bool   `yaml:"cloudflare_bypass"`

	Listen string `yaml:"listen"`

	Output         string `yaml:"output"`
	ImageWorkers   int    `yaml:"image_workers"`
	EpisodeWorkers int    `yaml:"episode_workers"`
	KeepFolders    bool   `yaml:"keep_folders"`
	SkipBroken     bool   `yaml:"skip_broken"`

	Debug bool `yaml:"debug"`
}

// Options carries CLI flags. Zero values leave the profile untouched.
type Options struct {
	IgnoreConfig   bool
	Debug          bool
	Locale         string
	UserAgent      string
	Cookie         string
	CookieFile     string
	Timeout        int
	MaxRedirects   int
	Listen         string
	Output         string
	ImageWorkers   int
	EpisodeWorkers int
	KeepFolders    bool
	SkipBroken     bool
}

func DefaultConfig() *Config {
	return &Config{
		Locale:           webtoons.DefaultLocale,
		DesktopBase:      webtoons.DefaultDesktopBase,
		MobileBase:       webtoons.DefaultMobileBase,
		DetailSlug:       webtoons.DefaultDetailSlug,
		Timeout:          30,
		Retries:          2,
		MaxRedirects:     webtoons.DefaultMaxRedirects,
		CloudflareBypass: true,
		Listen:           ":3001",
		Output:           ".",
		ImageWorkers:     5,
		EpisodeWorkers:   2,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// loadYAML starts from the defaults so that a profile only needs the keys it
// changes.
func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged resolves the active profile (or defaults) and applies opts on
// top. The returned string says where the config came from.
func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `toond config init` to create an actual config", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.Locale != "" {
		c.Locale = o.Locale
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.MaxRedirects != 0 {
		c.MaxRedirects = o.MaxRedirects
	}
	if o.Listen != "" {
		c.Listen = o.Listen
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.ImageWorkers != 0 {
		c.ImageWorkers = o.ImageWorkers
	}
	if o.EpisodeWorkers != 0 {
		c.EpisodeWorkers = o.EpisodeWorkers
	}
	if o.KeepFolders {
		c.KeepFolders = true
	}
	if o.SkipBroken {
		c.SkipBroken = true
	}
}

func normalizeDefaults(c *Config) {
	def := DefaultConfig()

	if c.Locale == "" {
		c.Locale = def.Locale
	}
	if c.DesktopBase == "" {
		c.DesktopBase = def.DesktopBase
	}
	if c.MobileBase == "" {
		c.MobileBase = def.MobileBase
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.Retries < 0 {
		c.Retries = 0
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = def.MaxRedirects
	}
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.ImageWorkers <= 0 {
		c.ImageWorkers = def.ImageWorkers
	}
	if c.EpisodeWorkers <= 0 {
		c.EpisodeWorkers = def.EpisodeWorkers
	}
}

func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Client returns the extractor settings held by the config.
func (c *Config) Client() webtoons.Config {
	return webtoons.Config{
		DesktopBase:    c.DesktopBase,
		MobileBase:     c.MobileBase,
		Locale:         c.Locale,
		UserAgent:      c.UserAgent,
		MaxRedirects:   c.MaxRedirects,
		SchedulePrefix: c.SchedulePrefix,
		DetailSlug:     c.DetailSlug,
	}
}

// Summary is a one-line view of what a profile talks to.
func (c *Config) Summary() string {
	return fmt.Sprintf("locale=%s mobile=%s max_redirects=%d", c.Locale, c.MobileBase, c.MaxRedirects)
}

func (c *Config) Print(w io.Writer) {
	p := func(format string, args ...any) {
		_, _ = fmt.Fprintf(w, format, args...)
	}

	p(" -locale: %s\n", c.Locale)
	p(" -desktop_base: %s\n", c.DesktopBase)
	p(" -mobile_base: %s\n", c.MobileBase)
	if c.DetailSlug != "" {
		p(" -detail_slug: %s\n", c.DetailSlug)
	}
	if c.SchedulePrefix != "" {
		p(" -schedule_prefix: %q\n", c.SchedulePrefix)
	}
	if c.UserAgent != "" {
		p(" -user_agent: %s\n", c.UserAgent)
	}
	if c.CookieFile != "" {
		p(" -cookie_file: %s\n", c.CookieFile)
	}
	p(" -timeout: %ds\n", c.Timeout)
	p(" -retries: %d\n", c.Retries)
	p(" -max_redirects: %d\n", c.MaxRedirects)
	p(" -cloudflare_bypass: %t\n", c.CloudflareBypass)
	p(" -listen: %s\n", c.Listen)
	p(" -output: %s\n", c.Output)
	p(" -image_workers: %d\n", c.ImageWorkers)
	p(" -episode_workers: %d\n", c.EpisodeWorkers)
	if c.KeepFolders {
		p(" -keep_folders: %t\n", c.KeepFolders)
	}
	if c.SkipBroken {
		p(" -skip_broken: %t\n", c.SkipBroken)
	}
	if c.Debug {
		p(" -debug: %t\n", c.Debug)
	}
}
