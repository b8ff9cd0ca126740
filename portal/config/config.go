package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"

	"github.com/anever/school-portal/pkg/kafka"
	"github.com/anever/school-portal/pkg/logger"
	"github.com/anever/school-portal/pkg/postgres"
	"github.com/anever/school-portal/portal/internal/server"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	HTTP server.Config `json:"http"`
	// StoreBackend selects "memory" (seeded reference store) or "postgres".
	StoreBackend string `json:"storeBackend" envconfig:"STORE_BACKEND" default:"memory"`
	// DefaultHolder is the single-tenant student identity.
	DefaultHolder string `json:"defaultHolder" envconfig:"DEFAULT_HOLDER" default:"me"`
	UseJWT        bool   `json:"useJWT" envconfig:"AUTH_JWT" default:"false"`
	// TimeZone is the zone all due dates and fines are computed in.
	TimeZone string `json:"timeZone" envconfig:"TIME_ZONE" default:"UTC"`

	HoldDays       int `json:"holdDays" envconfig:"HOLD_DAYS" default:"3"`
	CheckoutDays   int `json:"checkoutDays" envconfig:"CHECKOUT_DAYS" default:"14"`
	RenewalDays    int `json:"renewalDays" envconfig:"RENEWAL_DAYS" default:"7"`
	MaxRenewals    int `json:"maxRenewals" envconfig:"MAX_RENEWALS" default:"1"`
	FineRatePerDay int `json:"fineRatePerDay" envconfig:"FINE_RATE_PER_DAY" default:"1"`

	Database postgres.Config `json:"-"`
	Kafka    kafka.Config    `json:"kafka"`
	Log      logger.Log      `json:"log"`
}

var (
	once sync.Once
	cfg  Config
)

type Option func(c *Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) { c.Log.LogLevel = level }
}

func WithWriteTimeout(timeout time.Duration) Option {
	return func(c *Config) { c.HTTP.WriteTimeout = timeout }
}

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		if err := envconfig.Process("", &config); err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return &cfg
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
