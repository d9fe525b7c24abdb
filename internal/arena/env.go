package arena

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment variables read by the commands. A .env file in the working
// directory is loaded first when present; real environment values win.
const (
	EnvConfig = "ARENA_CONFIG"
	EnvSeed   = "ARENA_SEED"
)

// LoadEnv loads .env files if they exist. Missing files are not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return errors.Wrap(err, "load env")
	}
	return nil
}

// ConfigFromEnv loads path, falling back to $ARENA_CONFIG and then to the
// embedded default.
func ConfigFromEnv(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// SeedFromEnv returns seed unless it is zero, in which case $ARENA_SEED is
// used; fallback is returned when neither is set.
func SeedFromEnv(seed, fallback int64) (int64, error) {
	if seed != 0 {
		return seed, nil
	}
	v := os.Getenv(EnvSeed)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "%s=%q", EnvSeed, v)
	}
	return n, nil
}
