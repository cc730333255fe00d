package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

const (
	StoreBadger = "badger"
	StoreFile   = "file"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR debug info warn error"`
	Host     string `env:"HOST,default=0.0.0.0" validate:"required"`
	Port     int    `env:"PORT,default=8080" validate:"min=1,max=65535"`

	StoreDriver      string `env:"STORE_DRIVER,default=badger" validate:"oneof=badger file"`
	BadgerFilepath   string `env:"BADGER_FILEPATH,default=data/badger" validate:"required_if=StoreDriver badger"`
	CorpseJSONPath   string `env:"CORPSE_JSON_PATH,default=data/rooms.json" validate:"required_if=StoreDriver file"`
	BlugeFilepath    string `env:"SEARCH_INDEX_PATH"`
	DebugInspector   bool   `env:"DEBUG_INSPECTOR,default=false"`
	AllowedOrigins   string `env:"ALLOWED_ORIGINS,default=*"`
	MaxMessageSize   int64  `env:"MAX_MESSAGE_SIZE,default=65536" validate:"min=512"`
	ConnectionBuffer int    `env:"CONNECTION_BUFFER_SIZE,default=256" validate:"min=1"`

	LunchRoomDuration      time.Duration `env:"LUNCH_ROOM_DURATION,default=20m" validate:"min=1s"`
	LunchSweepInterval     time.Duration `env:"LUNCH_SWEEP_INTERVAL,default=1s" validate:"min=1ms"`
	LunchAnnounceInterval  time.Duration `env:"LUNCH_ANNOUNCE_INTERVAL,default=1m" validate:"min=1ms"`
	LunchResolvedRetention time.Duration `env:"LUNCH_RESOLVED_RETENTION,default=10m"`

	CorpseMasterPassword string `env:"CORPSE_MASTER_PASSWORD"`
	CorpseEnforceLock    bool   `env:"CORPSE_ENFORCE_LOCK,default=true"`
	CorpseSearchLimit    int    `env:"CORPSE_SEARCH_LIMIT,default=20" validate:"min=1,max=200"`
	CorpsePasswordChecks int    `env:"CORPSE_PASSWORD_CHECKS,default=4" validate:"min=1,max=64"`
	ModerationEnabled    bool   `env:"MODERATION_ENABLED,default=false"`
	ModerationDir        string `env:"MODERATION_DIR"`
	CharReplacement      string `env:"CHARACTER_REPLACEMENT,default=*"`

	MetricInterval  time.Duration `env:"METRIC_INTERVAL,default=30s" validate:"min=1ms"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// LoadConfig reads the environment. Files loaded beforehand with godotenv
// are visible here.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the loaded configuration.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := CharacterRune(c.CharReplacement); err != nil {
		return err
	}
	return nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
