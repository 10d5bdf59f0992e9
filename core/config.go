package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName                   string
		Build                     string
		Env                       string // DEV (local; default), TEST, QA, PROD
		Debug                     bool
		TestMode                  bool
		SecretKey                 string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		RollbarToken              string
		WorkDir                   string

		Server   ServerConfig
		Calendar CalendarConfig
		Seed     SeedConfig
		Redis    RedisConfig
	}

	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	CalendarConfig struct {
		Timezone         string
		Location         *time.Location
		MinScale         float64
		MaxScale         float64
		SwipeMinDistance float64
		MaxEventsPerDay  int
		DefaultLanguage  string
	}

	SeedConfig struct {
		File          string // empty: embedded seed
		ResetSchedule string // cron spec; empty disables the reset job
		HorizonDays   int
	}

	// RedisConfig configures the token revocation store. An empty Addr selects the in-memory store.
	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}
)

func NewConfig() *Config {
	conf := viper.New()

	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("appName", "Kalendar")
	conf.SetDefault("build", "dev")
	conf.SetDefault("debug", true)
	conf.SetDefault("secretKey", "k4l-3nd@r_vn2!x8wq$0pz#)m9e+d7lh5s(ct&y1ujo6fb*g")
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	conf.SetDefault("rollbarToken", "")

	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.address", ":8080")
	conf.SetDefault("server.debugHost", ":4000")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.disableReqLogs", false)

	conf.SetDefault("calendar.timezone", "Europe/Skopje")
	conf.SetDefault("calendar.minScale", 0.5)
	conf.SetDefault("calendar.maxScale", 3.0)
	conf.SetDefault("calendar.swipeMinDistance", 50.0)
	conf.SetDefault("calendar.maxEventsPerDay", 2)
	conf.SetDefault("calendar.defaultLanguage", "mk")

	conf.SetDefault("seed.file", "")
	conf.SetDefault("seed.resetSchedule", "")
	conf.SetDefault("seed.horizonDays", 120)

	conf.SetDefault("redis.addr", "")
	conf.SetDefault("redis.password", "")
	conf.SetDefault("redis.db", 0)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	wd := Getwd()
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	tz := conf.GetString("calendar.timezone")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %q, falling back to UTC: %v", tz, err)
		loc = time.UTC
	}

	return &Config{
		AppName:                   conf.GetString("appName"),
		Build:                     conf.GetString("build"),
		Env:                       env,
		Debug:                     conf.GetBool("debug"),
		TestMode:                  conf.GetBool("testMode"),
		SecretKey:                 conf.GetString("secretKey"),
		JWTExpirationDelta:        conf.GetDuration("jwtExpirationDelta"),
		JWTRefreshExpirationDelta: conf.GetDuration("jwtRefreshExpirationDelta"),
		RollbarToken:              conf.GetString("rollbarToken"),
		WorkDir:                   wd,
		Server: ServerConfig{
			Host:            conf.GetString("server.host"),
			Address:         conf.GetString("server.address"),
			DebugHost:       conf.GetString("server.debugHost"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  conf.GetBool("server.disableReqLogs"),
		},
		Calendar: CalendarConfig{
			Timezone:         loc.String(),
			Location:         loc,
			MinScale:         conf.GetFloat64("calendar.minScale"),
			MaxScale:         conf.GetFloat64("calendar.maxScale"),
			SwipeMinDistance: conf.GetFloat64("calendar.swipeMinDistance"),
			MaxEventsPerDay:  conf.GetInt("calendar.maxEventsPerDay"),
			DefaultLanguage:  conf.GetString("calendar.defaultLanguage"),
		},
		Seed: SeedConfig{
			File:          conf.GetString("seed.file"),
			ResetSchedule: conf.GetString("seed.resetSchedule"),
			HorizonDays:   conf.GetInt("seed.horizonDays"),
		},
		Redis: RedisConfig{
			Addr:     conf.GetString("redis.addr"),
			Password: conf.GetString("redis.password"),
			DB:       conf.GetInt("redis.db"),
		},
	}
}

// NewTestConfig returns the configuration used by package tests: test mode, UTC, no seed reset.
func NewTestConfig() *Config {
	return &Config{
		AppName:                   "Kalendar",
		Build:                     "test",
		Env:                       "TEST",
		TestMode:                  true,
		SecretKey:                 "test-secret",
		JWTExpirationDelta:        time.Hour,
		JWTRefreshExpirationDelta: 4 * time.Hour,
		Server:                    ServerConfig{Host: "localhost", DisableReqLogs: true, ShutdownTimeout: time.Second},
		Calendar: CalendarConfig{
			Timezone:         "UTC",
			Location:         time.UTC,
			MinScale:         0.5,
			MaxScale:         3.0,
			SwipeMinDistance: 50,
			MaxEventsPerDay:  2,
			DefaultLanguage:  "mk",
		},
		Seed: SeedConfig{HorizonDays: 120},
	}
}
