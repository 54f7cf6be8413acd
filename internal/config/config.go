package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Engine holds the explorer engine's tunables.
type Engine struct {
	APIBaseURL     string        `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	DebounceWindow time.Duration `env:"DEBOUNCE_WINDOW" envDefault:"300ms"`
	MinSearchLen   int           `env:"MIN_SEARCH_LEN" envDefault:"3"`
	StaleTime      time.Duration `env:"STALE_TIME" envDefault:"5m"`
	Retention      time.Duration `env:"RETENTION" envDefault:"30m"`
	PrefetchDelay  time.Duration `env:"PREFETCH_DELAY" envDefault:"150ms"`
	PageSize       int           `env:"PAGE_SIZE" envDefault:"25"`
}

// Server holds the mock backend's tunables.
type Server struct {
	Port        string        `env:"PORT" envDefault:"8080"`
	CORSOrigin  string        `env:"CORS_ORIGIN" envDefault:"*"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"60s"`
	Seed        int64         `env:"SEED" envDefault:"0"`
	DatasetSize int           `env:"DATASET_SIZE" envDefault:"500"`
}

func LoadEngine() (Engine, error) {
	var cfg Engine
	return cfg, env.Parse(&cfg)
}

func LoadServer() (Server, error) {
	var cfg Server
	return cfg, env.Parse(&cfg)
}
