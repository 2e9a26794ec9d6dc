package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type ProgressConfig struct {
	HistoryLimit   int  `yaml:"historyLimit"`
	LiveInvalidate bool `yaml:"liveInvalidate"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Progress    ProgressConfig `yaml:"progress"`
	WebServer   Server         `yaml:"webServer"`
	Persistence Persistence    `yaml:"persistence"`
	Logger      LoggerConfig   `yaml:"logger"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}
