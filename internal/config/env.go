package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Environment overrides applied by ApplyEnv.
const (
	EnvAssets   = "MIRROR_ASSETS"
	EnvCamera   = "MIRROR_CAMERA"
	EnvDynamic  = "MIRROR_ENVMAP_DYNAMIC"
	EnvSize     = "MIRROR_ENVMAP_SIZE"
	EnvSpeed    = "MIRROR_LAMP_SPEED"
	EnvPathFile = "MIRROR_PATH_FILE"
)

// LoadDotEnv reads KEY=VALUE lines from path (e.g. ".env") into the process
// environment. A missing file is not an error. Variables already set win.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	vars, err := ParseDotEnv(f)
	if err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	for k, v := range vars {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		_ = os.Setenv(k, v)
	}
	return nil
}

// ParseDotEnv parses .env syntax. Blank lines, # comments and lines without a
// key are skipped; one layer of matching quotes is stripped from values.
func ParseDotEnv(r io.Reader) (map[string]string, error) {
	vars := map[string]string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
		vars[key] = value
	}
	return vars, scanner.Err()
}

// ApplyEnv overrides fields of p from lookup (normally os.LookupEnv) and
// validates the result.
func ApplyEnv(p *Prefs, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAssets); ok && v != "" {
		p.Assets.Root = v
	}
	if v, ok := lookup(EnvCamera); ok && v != "" {
		p.Camera.Mode = v
	}
	if v, ok := lookup(EnvPathFile); ok {
		p.Path.File = v
	}
	if v, ok := lookup(EnvDynamic); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %w: %s=%q", ErrInvalid, EnvDynamic, v)
		}
		p.EnvMap.Dynamic = b
	}
	if v, ok := lookup(EnvSize); ok {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("config: %w: %s=%q", ErrInvalid, EnvSize, v)
		}
		p.EnvMap.Size = int32(n)
	}
	if v, ok := lookup(EnvSpeed); ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("config: %w: %s=%q", ErrInvalid, EnvSpeed, v)
		}
		p.Lamp.Speed = float32(f)
	}
	return p.Validate()
}
