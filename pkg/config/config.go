package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/viper"
)

var log = logging.Logger("config")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validatable is implemented by every configuration section.
type Validatable interface {
	Validate() error
}

// Load unmarshals the current viper state into T and validates it.
func Load[T Validatable]() (T, error) {
	var out T
	if err := viper.Unmarshal(&out); err != nil {
		return out, fmt.Errorf("decoding config: %w", err)
	}
	if err := out.Validate(); err != nil {
		return out, err
	}
	return out, nil
}

func validateConfig(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q validation (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
