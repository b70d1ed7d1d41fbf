package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Host        string `yaml:"host"`
	Port        uint   `yaml:"port"`
	DBUrl       string `yaml:"dbUrl"`
	TokenSecret string `yaml:"tokenSecret"`
	TokenTTL    uint   `yaml:"tokenTTL"`
	// nil keeps the flag default; an empty string disables the fallback.
	FallbackTenant *string `yaml:"fallbackTenant"`
	NotifyTimeout  uint    `yaml:"notifyTimeout"`
	SMTP           SMTP    `yaml:"smtp"`
}

func loadFile(path string) (fc fileConfig, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fc, errors.Wrap(err, "config.read")
	}
	err = yaml.Unmarshal(raw, &fc)
	return fc, errors.Wrapf(err, "config.parse %s", path)
}
