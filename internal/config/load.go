package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. WALLETBRIDGE_LOG_LEVEL.
const EnvPrefix = "WALLETBRIDGE"

// SetDefaults registers every default on v. Defaults are registered per key
// rather than pre-filled into the struct so configured lists replace the
// default lists instead of being merged into them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()

	wallets := make([]map[string]any, len(d.Wallets))
	for i, w := range d.Wallets {
		wallets[i] = map[string]any{
			"name":        w.Name,
			"pretty_name": w.PrettyName,
			"mode":        w.Mode,
			"behaviour":   w.Behaviour,
			"latency":     w.Latency.String(),
		}
	}

	v.SetDefault("registry_dir", d.RegistryDir)
	v.SetDefault("wallets", wallets)
	v.SetDefault("throw_errors", d.ThrowErrors)
	v.SetDefault("subscribe_connect_events", d.SubscribeConnectEvents)
	v.SetDefault("default_name_service", d.DefaultNameService)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("disable_iframe", d.DisableIframe)
	v.SetDefault("modal", d.Modal)
	v.SetDefault("session.duration", d.Session.Duration.String())
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

// BindEnv enables WALLETBRIDGE_* environment overrides on v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
