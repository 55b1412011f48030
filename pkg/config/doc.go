// Package config loads typed configuration from environment variables,
// with optional .env files for local development.
//
// Configuration structs across the toolkit declare their variables with
// `env` field tags (storage, redis, network, device):
//
//	type RedisConfig struct {
//		ConnectionURL string `env:"LCP_REDIS_URL,required"`
//	}
//
// Load parses the environment into the struct and caches the result per
// type, so every package reading the same config sees the same values:
//
//	var cfg RedisConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// # Error Handling
//
// Sentinel errors compare with errors.Is: ErrParsingConfig,
// ErrLoadingEnvFile, ErrConfigNotLoaded and ErrNilPointer.
//
// # Testing
//
// ResetCache clears the per-type cache so a test can reload a struct after
// mutating the environment with t.Setenv.
package config
