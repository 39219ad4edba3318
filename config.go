package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is everything the site reads at startup. Nothing here is
// reloaded while the server runs.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Site      SiteConfig      `koanf:"site"`
	Gate      GateConfig      `koanf:"gate"`
	Picker    PickerConfig    `koanf:"picker"`
	Slideshow SlideshowConfig `koanf:"slideshow"`
	Database  DatabaseConfig  `koanf:"database"`
	Admin     AdminConfig     `koanf:"admin"`
	SMTP      SMTPConfig      `koanf:"smtp"`
}

type ServerConfig struct {
	Addr      string `koanf:"addr"`
	Mode      string `koanf:"mode"`
	Templates string `koanf:"templates"`
	StaticDir string `koanf:"static_dir"`
}

type SiteConfig struct {
	Name     string   `koanf:"name"`
	Location string   `koanf:"location"`
	LinkedIn string   `koanf:"linkedin"`
	GitHub   string   `koanf:"github"`
	Email    string   `koanf:"email"`
	Pages    []string `koanf:"pages"`
}

// GateConfig holds the secret page password. The gate is cosmetic: the
// files under DownloadDir are served to anyone who knows the path.
type GateConfig struct {
	Secret      string   `koanf:"secret"`
	DownloadDir string   `koanf:"download_dir"`
	Files       []string `koanf:"files"`
}

type PickerConfig struct {
	Catalog     string `koanf:"catalog"`
	ImagesDir   string `koanf:"images_dir"`
	AvoidRepeat bool   `koanf:"avoid_repeat"`
}

type SlideshowConfig struct {
	Interval time.Duration `koanf:"interval"`
}

// DatabaseConfig enables visitor analytics and the admin pages when Path
// is non-empty.
type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type AdminConfig struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

type SMTPConfig struct {
	Host string `koanf:"host"`
	Port string `koanf:"port"`
	User string `koanf:"user"`
	Pass string `koanf:"pass"`
	To   string `koanf:"to"`
}

// DefaultConfig returns the values used when neither the config file nor
// the environment say otherwise.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":8080",
			Mode:      "debug",
			Templates: "templates/*",
			StaticDir: "static",
		},
		Site: SiteConfig{
			Name:     "Elaina Araullo",
			Location: "Toronto",
			LinkedIn: "https://www.linkedin.com/in/elaina-araullo/",
			GitHub:   "https://github.com/christelaina",
			Email:    "gea.christensen@gmail.com",
			Pages:    []string{"home", "about", "projects", "contact", "secret"},
		},
		Gate: GateConfig{
			Secret:      "ilovebugs",
			DownloadDir: "downloads",
			Files:       []string{"Original.txt", "NameCheckVBA.txt"},
		},
		Picker: PickerConfig{
			ImagesDir: "images",
		},
		Slideshow: SlideshowConfig{
			Interval: 5 * time.Second,
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
			To:   "gea.christensen@gmail.com",
		},
	}
}

// LoadConfig reads the YAML file at path when it exists, then overlays
// PORTFOLIO_* environment variables. A double underscore separates nested
// keys: PORTFOLIO_GATE__SECRET sets gate.secret.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// Blank variables are skipped so an empty line in .env keeps the default.
	if err := k.Load(env.ProviderWithValue("PORTFOLIO_", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		key = strings.ToLower(strings.TrimPrefix(key, "PORTFOLIO_"))
		return strings.ReplaceAll(key, "__", "."), value
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Hosting platforms hand out the port this way.
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}

	return cfg, nil
}

var validModes = map[string]bool{
	"debug":   true,
	"release": true,
	"test":    true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if !validModes[c.Server.Mode] {
		return fmt.Errorf("invalid server.mode %q: must be one of debug, release, test", c.Server.Mode)
	}
	if c.Server.Templates == "" {
		return fmt.Errorf("server.templates is required")
	}
	for _, p := range c.Site.Pages {
		if _, ok := pageByName[p]; !ok {
			return fmt.Errorf("unknown page %q in site.pages", p)
		}
	}
	if c.pageEnabled(PageSecret) && c.Gate.Secret == "" {
		return fmt.Errorf("gate.secret is required when the secret page is enabled")
	}
	if c.Slideshow.Interval <= 0 {
		return fmt.Errorf("slideshow.interval must be positive")
	}
	return nil
}

func (c *Config) pageEnabled(id PageID) bool {
	if id == PageHome {
		return true
	}
	for _, p := range c.Site.Pages {
		if p == string(id) {
			return true
		}
	}
	return false
}
