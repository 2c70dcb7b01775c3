package server

import (
	"fmt"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"sigs.k8s.io/yaml"
)

// Config is the service configuration. It is read from YAML; unset fields keep DefaultConfig values.
type Config struct {
	Server   ServerConfig   `json:"server"`
	Callback CallbackConfig `json:"callback"`
	HTTP     HTTPConfig     `json:"http"`
	Defaults DefaultsConfig `json:"defaults"`
}

// ServerConfig configures the HTTP listener and the mapping route.
type ServerConfig struct {
	Listen       string   `json:"listen"`
	Path         string   `json:"path"`
	ReadTimeout  Duration `json:"readTimeout"`
	WriteTimeout Duration `json:"writeTimeout"`
	// FormatContentType declares the media type of the chosen output format
	// instead of text/html.
	FormatContentType bool `json:"formatContentType"`
}

// CallbackConfig shapes the URL the mapping definition is fetched from.
type CallbackConfig struct {
	Scheme string `json:"scheme"`
	// Host overrides the local address of the request when set.
	Host string `json:"host,omitempty"`
	Path string `json:"path"`
}

// HTTPConfig configures outbound fetches.
type HTTPConfig struct {
	UserAgent string   `json:"userAgent"`
	Timeout   Duration `json:"timeout"`
}

// DefaultsConfig holds request parameter defaults.
type DefaultsConfig struct {
	UUIDSize int `json:"uuidSize"`
}

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n int64
		if nerr := json.Unmarshal(data, &n); nerr != nil {
			return fmt.Errorf("invalid duration %s", string(data))
		}
		*d = Duration(time.Duration(n))
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Value returns the duration.
func (d Duration) Value() time.Duration { return time.Duration(d) }

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Listen:       ":8080",
			Path:         "/Index",
			ReadTimeout:  Duration(30 * time.Second),
			WriteTimeout: Duration(5 * time.Minute),
		},
		Callback: CallbackConfig{
			Scheme: "http",
			Path:   "/3MEditor/Services",
		},
		HTTP: HTTPConfig{
			UserAgent: "x3mlmapper",
			Timeout:   Duration(time.Minute),
		},
		Defaults: DefaultsConfig{
			UUIDSize: 2,
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the fields the server cannot run without.
func (c Config) Validate() error {
	var problems []string
	if c.Server.Listen == "" {
		problems = append(problems, "server.listen is empty")
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		problems = append(problems, "server.path must start with '/'")
	}
	if c.Callback.Scheme != "http" && c.Callback.Scheme != "https" {
		problems = append(problems, fmt.Sprintf("callback.scheme %q is not http or https", c.Callback.Scheme))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
