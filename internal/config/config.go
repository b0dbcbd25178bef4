package config

import (
	"PerfDash/internal/lib/validate"
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
	"time"
	_ "time/tzdata"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local" validate:"oneof=local dev prod"`
	Timezone string `yaml:"timezone" env-default:"America/Sao_Paulo" validate:"required"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
		AdminId int64  `yaml:"admin_id" env-default:"0"`
		BotName string `yaml:"bot_name" env-default:"PerfDashBot"`
		Enabled bool   `yaml:"enabled" env-default:"false"`
		Digest  bool   `yaml:"digest" env-default:"true"`
	} `yaml:"telegram"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:"admin"`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:"pass"`
		Database string `yaml:"database" env-default:"perfdash"`
	} `yaml:"mongo"`
	Source struct {
		BaseURL      string        `yaml:"base_url" env:"SOURCE_BASE_URL" env-default:"" validate:"omitempty,url"`
		Token        string        `yaml:"token" env:"SOURCE_TOKEN" env-default:""`
		ClientID     string        `yaml:"client_id" env-default:""`
		ClientSecret string        `yaml:"client_secret" env:"SOURCE_CLIENT_SECRET" env-default:""`
		TokenURL     string        `yaml:"token_url" env-default:"" validate:"required_with=ClientID,omitempty,url"`
		Timeout      time.Duration `yaml:"timeout" env-default:"20s" validate:"gt=0"`
		AuditLimit   int           `yaml:"audit_limit" env-default:"20" validate:"gte=0,lte=500"`
		Paths        struct {
			Visits      string `yaml:"visits" env-default:"visits"`
			Consultants string `yaml:"consultants" env-default:"consultants"`
			Educators   string `yaml:"educators" env-default:"educators"`
			Colleges    string `yaml:"colleges" env-default:"colleges"`
			Audit       string `yaml:"audit" env-default:"audit-logs"`
		} `yaml:"paths"`
	} `yaml:"source"`
	Performance struct {
		RefreshInterval time.Duration `yaml:"refresh_interval" env-default:"5m" validate:"gte=0"`
		HistoryLimit    int           `yaml:"history_limit" env-default:"30" validate:"gt=0,lte=1000"`
	} `yaml:"performance"`
	Listen struct {
		BindIP  string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port    string `yaml:"port" env-default:"9100"`
		ApiKey  string `yaml:"key" env:"LISTEN_API_KEY" env-default:""`
		Timeout int    `yaml:"timeout" env-default:"30" validate:"gt=0"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	once.Do(func() {
		conf, err := Load(path)
		if err != nil {
			log.Fatal(err)
		}
		instance = conf
	})
	return instance
}

// Load reads the YAML file, applies environment overrides and defaults and
// validates the result.
func Load(path string) (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("%s; %s", err, desc)
	}
	if err := validate.Struct(conf); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if _, err := time.LoadLocation(conf.Timezone); err != nil {
		return nil, fmt.Errorf("config %s: timezone: %w", path, err)
	}
	return conf, nil
}

// Location returns the zone used for zone-less timestamps and calendar weeks.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
