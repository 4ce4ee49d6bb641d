package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/getsops/sops/v3/decrypt"
	jsoniter "github.com/json-iterator/go"

	cqrs "github.com/paulvitic/cqrs-go"
)

const (
	baseName   = "properties"
	fileExt    = ".json"
	encryptExt = ".enc"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary
	logger = cqrs.NewLogger("Config")
)

// Load reads properties[.profile].json from dir into a new T, falling back
// to the SOPS encrypted properties[.profile].enc.json. Environment variables
// named by `env` struct tags are applied last and win over the file.
//
// A missing file leaves T at its defaults. A file that cannot be read,
// decrypted or parsed is an error.
func Load[T any](dir, profile string) (*T, error) {
	config := new(T)

	filePath, encrypted, err := locate(dir, profile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("no properties file for profile %q in %s, using defaults", profile, dir)
	case err != nil:
		return nil, err
	default:
		data, err := readData(filePath, encrypted)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filePath, err)
		}
		logger.Info("loaded properties from %s", filePath)
	}

	if err := ParseEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

// MustLoad is Load for process start up; it panics on error.
func MustLoad[T any](dir, profile string) *T {
	config, err := Load[T](dir, profile)
	if err != nil {
		panic(err)
	}
	return config
}

// ParseEnv overlays environment variables onto target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// FileName returns the properties file name for profile, without extension.
func FileName(profile string) string {
	if profile == "" {
		return baseName
	}
	return baseName + "." + profile
}

func locate(dir, profile string) (string, bool, error) {
	name := FileName(profile)

	plain := filepath.Join(dir, name+fileExt)
	if _, err := os.Stat(plain); err == nil {
		return plain, false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", false, err
	}

	encrypted := filepath.Join(dir, name+encryptExt+fileExt)
	if _, err := os.Stat(encrypted); err != nil {
		return "", false, err
	}
	return encrypted, true, nil
}

func readData(filePath string, encrypted bool) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	if !encrypted {
		return data, nil
	}

	decrypted, err := decrypt.Data(data, "json")
	if err != nil {
		return nil, fmt.Errorf("decrypt %s: %w", filePath, err)
	}
	return decrypted, nil
}
