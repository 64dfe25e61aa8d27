package yamlfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/njupt-wifi/autologin/internal/domain"
)

// FileName is looked up next to the executable, then in the working directory.
const FileName = "njupt_wifi.yml"

type persistedConfig struct {
	UserID   string        `yaml:"userid"`
	Password string        `yaml:"password"`
	ISP      string        `yaml:"isp"`
	LogLevel string        `yaml:"log_level,omitempty"`
	Debounce time.Duration `yaml:"debounce,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// Config is the validated content of the config file
type Config struct {
	Credential domain.Credential
	LogLevel   string
	Debounce   time.Duration // zero = default
	Timeout    time.Duration // zero = default
}

// Load reads and validates the config file. Any error is fatal to startup.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var pc persistedConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&pc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty config")
		}
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if pc.UserID == "" || pc.Password == "" {
		return nil, fmt.Errorf("userid and password required in config")
	}
	carrier, err := domain.ParseCarrier(pc.ISP)
	if err != nil {
		return nil, fmt.Errorf("isp: %w", err)
	}
	if pc.LogLevel != "" {
		if _, err := log.ParseLevel(pc.LogLevel); err != nil {
			return nil, fmt.Errorf("log_level: %w", err)
		}
	}
	if pc.Debounce < 0 || pc.Timeout < 0 {
		return nil, fmt.Errorf("debounce and timeout must not be negative")
	}
	return &Config{
		Credential: domain.Credential{
			UserID:   pc.UserID,
			Password: pc.Password,
			Carrier:  carrier,
		},
		LogLevel: pc.LogLevel,
		Debounce: pc.Debounce,
		Timeout:  pc.Timeout,
	}, nil
}

// Save writes a config file for the install command.
func Save(path string, cred domain.Credential) error {
	data, err := yaml.Marshal(persistedConfig{
		UserID:   cred.UserID,
		Password: cred.Password,
		ISP:      cred.Carrier.String(),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
