package config

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"

	"github.com/matzehuels/auteur/pkg/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their TOML key.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks every field constraint and the autosave schedule.
func (c *Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			fe := ve[0]
			field := strings.TrimPrefix(fe.Namespace(), "Config.")
			if fe.Param() != "" {
				return errors.New(errors.ErrCodeInvalidConfig, "%s: failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value())
			}
			return errors.New(errors.ErrCodeInvalidConfig, "%s: failed %s", field, fe.Tag())
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
	}
	if c.Server.Autosave != "" {
		if _, err := cron.ParseStandard(c.Server.Autosave); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "server.autosave")
		}
	}
	return nil
}
