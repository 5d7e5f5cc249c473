package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type SchedulerConfig struct {
	Port                                     int
	LogLevel                                 string
	LogFormat                                string
	DBPath                                   string // "" disables run history, ":memory:" for tests
	RoundRobinTimeQuantum                    int
	MultilevelFeedbackQueueLevelsTimeQuantum []int
	DisplayInterval                          time.Duration
}

const envPrefix = "CPUSIM"

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 9095)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("db_path", "")
	v.SetDefault("scheduler.round_robin.time_quantum", 2)
	v.SetDefault("scheduler.multilevel_feedback_queue.levels_time_quantum", []int{2, 4})
	v.SetDefault("display.interval", 100*time.Millisecond)
}

// Load reads configuration from path, or from ./config.yaml when path is
// empty. A missing default file is not an error; environment variables such
// as CPUSIM_PORT and CPUSIM_SCHEDULER_ROUND_ROBIN_TIME_QUANTUM override it.
func Load(path string) (*SchedulerConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	config := &SchedulerConfig{
		Port:                                     v.GetInt("port"),
		LogLevel:                                 v.GetString("log.level"),
		LogFormat:                                v.GetString("log.format"),
		DBPath:                                   v.GetString("db_path"),
		RoundRobinTimeQuantum:                    v.GetInt("scheduler.round_robin.time_quantum"),
		MultilevelFeedbackQueueLevelsTimeQuantum: v.GetIntSlice("scheduler.multilevel_feedback_queue.levels_time_quantum"),
		DisplayInterval:                          v.GetDuration("display.interval"),
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings no scheduler could run with.
func (c *SchedulerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.RoundRobinTimeQuantum <= 0 {
		return fmt.Errorf("config: scheduler.round_robin.time_quantum must be positive, got %d", c.RoundRobinTimeQuantum)
	}
	if len(c.MultilevelFeedbackQueueLevelsTimeQuantum) == 0 {
		return errors.New("config: scheduler.multilevel_feedback_queue.levels_time_quantum must not be empty")
	}
	if c.DisplayInterval <= 0 {
		return fmt.Errorf("config: display.interval must be positive, got %s", c.DisplayInterval)
	}
	return nil
}

var (
	once      sync.Once
	config    *SchedulerConfig
	configErr error
)

// GetSchedulerConfig loads ./config.yaml once per process.
func GetSchedulerConfig() (*SchedulerConfig, error) {
	once.Do(func() {
		config, configErr = Load("")
	})
	return config, configErr
}
