package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	envPrefix      = "BEMINE_"
	envFileVar     = envPrefix + "ENV_FILE"
	defaultEnvFile = ".env"
)

type lookupFunc func(key string) (string, bool)

// Load builds the configuration from defaults, the .env file, BEMINE_*
// environment variables and finally the command line, in that order.
func Load(name string, args []string) (App, error) {
	return load(name, args, os.LookupEnv)
}

func load(name string, args []string, lookupEnv lookupFunc) (App, error) {
	cfg := Default()

	path := defaultEnvFile
	if p, ok := lookupEnv(envFileVar); ok && p != "" {
		path = p
	}
	fileVars, err := readEnvFile(path)
	if err != nil {
		return cfg, err
	}

	lookup := func(key string) (string, bool) {
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}

	if err := parseFlags(&cfg, name, args); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func readEnvFile(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	log.Printf("config: loaded %d variable(s) from %s", len(vars), path)
	return vars, nil
}

func applyEnv(cfg *App, lookup lookupFunc) error {
	var err error
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		v, ok := lookup(envPrefix + key)
		if !ok || err != nil {
			return
		}
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			err = fmt.Errorf("%s%s: %w", envPrefix, key, perr)
			return
		}
		*dst = b
	}
	integer := func(key string, dst *int) {
		v, ok := lookup(envPrefix + key)
		if !ok || err != nil {
			return
		}
		n, perr := strconv.Atoi(v)
		if perr != nil {
			err = fmt.Errorf("%s%s: %w", envPrefix, key, perr)
			return
		}
		*dst = n
	}

	if v, ok := lookup(envPrefix + "SEED"); ok {
		seed, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			return fmt.Errorf("%sSEED: %w", envPrefix, perr)
		}
		cfg.Seed = seed
	}
	pointer := string(cfg.Pointer)
	str("POINTER", &pointer)
	cfg.Pointer = PointerMode(pointer)
	str("LOG_DIR", &cfg.LogDir)
	boolean("DEBUG", &cfg.Debug)
	boolean("MUTE", &cfg.Mute)
	integer("WIDTH", &cfg.Width)
	integer("HEIGHT", &cfg.Height)
	integer("TPS", &cfg.TPS)
	return err
}

func parseFlags(cfg *App, name string, args []string) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	pointer := string(cfg.Pointer)

	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 = time based)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Write a debug log")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Directory for the debug log")
	fs.StringVar(&pointer, "pointer", pointer, "Pointer class: auto, fine, coarse")
	fs.BoolVar(&cfg.Mute, "mute", cfg.Mute, "Disable sound cues")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Initial window width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Initial window height")
	fs.IntVar(&cfg.TPS, "tps", cfg.TPS, "Frames per second for loop driven frontends")

	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Pointer = PointerMode(pointer)
	return nil
}
