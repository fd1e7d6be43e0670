package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	ConfigurationName = "config.yaml"
	LogsDirName       = "session_logs"
)

// Configuration holds the interpreter's tunables. All fields have working
// defaults so the shell also runs when no config directory exists.
type Configuration struct {
	configFs afero.Fs

	Prompt            string `json:"prompt"`
	MaxBackgroundJobs int    `json:"max_background_jobs" validate:"gte=1,lte=4096"`
	KillGraceMillis   int    `json:"kill_grace_ms" validate:"gte=0,lte=60000"`
	MaxLineLength     int    `json:"max_line_length" validate:"gte=1"`
	MaxArgs           int    `json:"max_args" validate:"gte=1"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// KillGrace returns the shutdown grace period as a duration.
func (c *Configuration) KillGrace() time.Duration {
	return time.Duration(c.KillGraceMillis) * time.Millisecond
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewMemMapFs()
	}
	return c.configFs
}

// CreateSessionLog creates a session log file with the given name.
func (c *Configuration) CreateSessionLog(name string) (afero.File, error) {
	if err := c.fs().MkdirAll(LogsDirName, 0700); err != nil {
		return nil, err
	}
	return c.fs().OpenFile(
		LogsDirName+"/"+name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// DefaultConfiguration returns the embedded default configuration backed by
// an in-memory filesystem. Panics on failure because the embedded default
// must always be valid.
func DefaultConfiguration() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	if err := out.Validate(); err != nil {
		panic(err)
	}
	out.configFs = afero.NewMemMapFs()
	return &out
}
