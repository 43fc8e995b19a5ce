package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Maintenance struct {
		// AllowDirectComplete permits Agendada -> Concluída without the
		// Em Andamento step.
		AllowDirectComplete bool `mapstructure:"allow_direct_complete"`
		// AllowPastSchedule permits scheduling with a past date.
		AllowPastSchedule bool `mapstructure:"allow_past_schedule"`
		// IntervalDays: proxima_manutencao = completion date + interval.
		IntervalDays int `mapstructure:"interval_days"`
	} `mapstructure:"maintenance"`

	Sweep struct {
		Enabled      bool
		Interval     time.Duration
		OverdueLimit int `mapstructure:"overdue_limit"`
	} `mapstructure:"sweep"`

	Reports struct {
		Dir string
	} `mapstructure:"reports"`
}

func Load(path string) (Config, error) {
	// .env (if present) goes into the environment first so that both
	// DATABASE_URL and APP_* overrides come from one place.
	_ = gotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "dev")
	v.SetDefault("app.timezone", "America/Sao_Paulo")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("maintenance.allow_direct_complete", false)
	v.SetDefault("maintenance.allow_past_schedule", false)
	v.SetDefault("maintenance.interval_days", 90)
	v.SetDefault("sweep.enabled", true)
	v.SetDefault("sweep.interval", time.Hour)
	v.SetDefault("sweep.overdue_limit", 50)
	v.SetDefault("reports.dir", "reports")

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	// Fly.io/Heroku style platforms hand out a single connection string.
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		c.Postgres.DSN = dsn
	}
	return c, nil
}
