package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// AnalyticsConfig carries the tunable knobs of the query and analytics engine.
type AnalyticsConfig struct {
	DashboardCacheTTLSeconds int `mapstructure:"dashboardCacheTTLSeconds"`
	RecentTransactionLimit   int `mapstructure:"recentTransactionLimit"`
	DefaultPageSize          int `mapstructure:"defaultPageSize"`
	MaxPageSize              int `mapstructure:"maxPageSize"`
}

func DefaultAnalyticsConfig() AnalyticsConfig {
	return AnalyticsConfig{
		DashboardCacheTTLSeconds: 3600,
		RecentTransactionLimit:   10,
		DefaultPageSize:          20,
		MaxPageSize:              100,
	}
}

// AnalyticsConfigHolder exposes the current analytics config and hot-reloads
// it when the underlying file changes.
type AnalyticsConfigHolder struct {
	current atomic.Value // holds AnalyticsConfig
}

func NewAnalyticsConfigHolder(log *zap.Logger) (*AnalyticsConfigHolder, error) {
	log = log.Named("analytics.config")
	v := viper.New()

	v.SetConfigName("analytics")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/paymirror/config")
	v.AddConfigPath("/etc/paymirror")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PAYMIRROR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultAnalyticsConfig()
		v.SetDefault("analytics.dashboardCacheTTLSeconds", defaults.DashboardCacheTTLSeconds)
		v.SetDefault("analytics.recentTransactionLimit", defaults.RecentTransactionLimit)
		v.SetDefault("analytics.defaultPageSize", defaults.DefaultPageSize)
		v.SetDefault("analytics.maxPageSize", defaults.MaxPageSize)
	}

	var cfg AnalyticsConfig
	if err := v.UnmarshalKey("analytics", &cfg); err != nil {
		return nil, err
	}
	if err := validateAnalyticsConfig(cfg); err != nil {
		return nil, err
	}

	holder := &AnalyticsConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated AnalyticsConfig
		if err := v.UnmarshalKey("analytics", &updated); err != nil {
			log.Warn("analytics config reload failed", zap.Error(err))
			return
		}
		if err := validateAnalyticsConfig(updated); err != nil {
			log.Warn("analytics config ignored", zap.Error(err))
			return
		}
		holder.Update(updated)
		log.Info("analytics config reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

// NewStaticAnalyticsConfigHolder wraps a fixed config with no file watching.
func NewStaticAnalyticsConfigHolder(cfg AnalyticsConfig) *AnalyticsConfigHolder {
	holder := &AnalyticsConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *AnalyticsConfigHolder) Get() AnalyticsConfig {
	return h.current.Load().(AnalyticsConfig)
}

// Update swaps in a new config. Readers observe it on their next Get.
func (h *AnalyticsConfigHolder) Update(cfg AnalyticsConfig) {
	h.current.Store(cfg)
}

func validateAnalyticsConfig(cfg AnalyticsConfig) error {
	if cfg.DashboardCacheTTLSeconds <= 0 {
		return errors.New("analytics.dashboardCacheTTLSeconds must be positive")
	}
	if cfg.RecentTransactionLimit <= 0 {
		return errors.New("analytics.recentTransactionLimit must be positive")
	}
	if cfg.DefaultPageSize <= 0 || cfg.MaxPageSize < cfg.DefaultPageSize {
		return errors.New("analytics page size bounds are inconsistent")
	}
	return nil
}
