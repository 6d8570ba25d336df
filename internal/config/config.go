// Package config loads the pipeline configuration from an optional
// YAML file with environment overrides. Every knob the fetch and
// clean stages consume is an explicit field here; nothing reads
// globals at run time.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/coinpulse/newsharvest/pkg/dates"
	"github.com/coinpulse/newsharvest/pkg/sources"
)

const envPrefix = "NEWSHARVEST"

// Config is the root configuration.
type Config struct {
	LogLevel       string      `mapstructure:"log_level"`
	OutputDir      string      `mapstructure:"output_dir"`
	SeenDB         string      `mapstructure:"seen_db"`
	PublishersFile string      `mapstructure:"publishers_file"`
	GDELT          GDELT       `mapstructure:"gdelt"`
	CryptoPanic    CryptoPanic `mapstructure:"cryptopanic"`
}

// GDELT configures the chunked GDELT fetch.
type GDELT struct {
	BaseURL         string        `mapstructure:"base_url"`
	Keywords        []string      `mapstructure:"keywords"`
	ExcludePatterns []string      `mapstructure:"exclude_patterns"`
	StartDate       string        `mapstructure:"start_date"`
	EndDate         string        `mapstructure:"end_date"`
	MaxRecords      int           `mapstructure:"max_records"`
	RequestDelay    time.Duration `mapstructure:"request_delay"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Enrich          bool          `mapstructure:"enrich"`
	EnrichDelay     time.Duration `mapstructure:"enrich_delay"`
	UserAgent       string        `mapstructure:"user_agent"`
}

// CryptoPanic configures the paginated CryptoPanic fetch. APIKey is
// bound to the CRYPTOPANIC_API_KEY environment variable.
type CryptoPanic struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Currencies   []string      `mapstructure:"currencies"`
	StartDate    string        `mapstructure:"start_date"`
	EndDate      string        `mapstructure:"end_date"`
	MaxPages     int           `mapstructure:"max_pages"`
	ProbePages   int           `mapstructure:"probe_pages"`
	RequestDelay time.Duration `mapstructure:"request_delay"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// Load reads the config file at path (optional; empty path uses
// defaults) and applies environment overrides.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The CryptoPanic key keeps its historical variable name.
	_ = v.BindEnv("cryptopanic.api_key", "CRYPTOPANIC_API_KEY")

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("output_dir", ".")
	v.SetDefault("seen_db", "")
	v.SetDefault("publishers_file", "")

	v.SetDefault("gdelt.base_url", sources.DefaultGDELTBaseURL)
	v.SetDefault("gdelt.keywords", []string{
		"bitcoin", "btc", "ethereum", "eth",
		"cryptocurrency", "crypto", "blockchain", "digital currency",
	})
	v.SetDefault("gdelt.start_date", "2024-11-01")
	v.SetDefault("gdelt.end_date", "2025-11-01")
	v.SetDefault("gdelt.max_records", 250)
	v.SetDefault("gdelt.request_delay", "1s")
	v.SetDefault("gdelt.timeout", "60s")
	v.SetDefault("gdelt.enrich", false)
	v.SetDefault("gdelt.enrich_delay", "200ms")

	v.SetDefault("cryptopanic.base_url", sources.DefaultCryptoPanicBaseURL)
	v.SetDefault("cryptopanic.currencies", []string{"BTC", "ETH"})
	v.SetDefault("cryptopanic.start_date", "2024-11-01")
	v.SetDefault("cryptopanic.end_date", "2025-11-01")
	v.SetDefault("cryptopanic.max_pages", 50)
	v.SetDefault("cryptopanic.probe_pages", 5)
	v.SetDefault("cryptopanic.request_delay", "500ms")
	v.SetDefault("cryptopanic.timeout", "30s")
}

// Window parses a start/end date pair into an inclusive fetch window.
func Window(startDate, endDate string) (sources.Window, error) {
	start, err := dates.Parse(startDate)
	if err != nil {
		return sources.Window{}, fmt.Errorf("start date: %w", err)
	}
	end, err := dates.Parse(endDate)
	if err != nil {
		return sources.Window{}, fmt.Errorf("end date: %w", err)
	}

	w := sources.Window{Start: start.UTC(), End: end.UTC()}
	if w.End.Before(w.Start) {
		return sources.Window{}, fmt.Errorf("end date %s precedes start date %s", endDate, startDate)
	}
	return w, nil
}

// Validate checks the CryptoPanic section before any network call is
// made. A missing API key is fatal.
func (c CryptoPanic) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("CRYPTOPANIC_API_KEY not set; create a .env file or export it")
	}
	if len(c.Currencies) == 0 {
		return fmt.Errorf("cryptopanic currency list is empty")
	}
	return nil
}
