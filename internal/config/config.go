// Package config layers a config file and REACTIONS_* environment variables
// underneath the command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ensigniasec/reactions/internal/validate"
)

// EnvPrefix namespaces environment overrides, e.g. REACTIONS_BASE_URL.
const EnvPrefix = "reactions"

// New returns a viper instance reading cfgFile, or $HOME/.reactions.yaml and
// ./.reactions.yaml when cfgFile is empty. A missing default file is not an error.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".reactions")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logrus.Debug("no config file found; using flags and environment")
	} else {
		logrus.Debugf("using config file %s", v.ConfigFileUsed())
	}
	return v, nil
}

// BindFlags sets every flag that was not given explicitly from the config
// file or environment. Explicit flags keep priority.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		val := v.Get(f.Name)
		if list, ok := val.([]any); ok {
			parts := make([]string, 0, len(list))
			for _, p := range list {
				parts = append(parts, fmt.Sprint(p))
			}
			val = strings.Join(parts, ",")
		}
		if err := fs.Set(f.Name, fmt.Sprint(val)); err != nil {
			errs = append(errs, fmt.Errorf("flag %s: %w", f.Name, err))
			return
		}
		logrus.Debugf("flag %s set from config to %v", f.Name, val)
	})
	return errors.Join(errs...)
}

// Rate configures the interactive rating flow.
type Rate struct {
	BaseURL       string        `validate:"required,url"`
	Timeout       time.Duration `validate:"gt=0"`
	Width         float64       `validate:"gt=0"`
	InitialIndex  int           `validate:"min=0"`
	ReactionsFile string        `validate:"omitempty,filepath"`
}

// Validate checks the rate configuration.
func (c Rate) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Serve configures the local ratings service.
type Serve struct {
	Addr           string `validate:"required,hostname_port"`
	Driver         string `validate:"oneof=sqlite postgres"`
	DSN            string
	SeedTitle      string
	AllowedOrigins []string `validate:"dive,required"`
}

// Validate checks the serve configuration.
func (c Serve) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
