package config

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Validate checks struct constraints. Credentials are not required here:
// a missing generation key degrades the bot and a missing Telegram token is
// handled by the entrypoint.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return fmt.Errorf("failed to register validator: %w", err)
	}
	if err := validate.RegisterValidation("even", isEven); err != nil {
		return fmt.Errorf("failed to register validator: %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// isEven keeps whole User/Bot exchanges in the history window.
func isEven(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int()%2 == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fl.Field().Uint()%2 == 0
	default:
		return false
	}
}

// HasChatCredential reports whether a Telegram token is configured.
func (c *Config) HasChatCredential() bool {
	return c.Telegram.Token != ""
}

// HasAICredential reports whether a generation service key is configured.
func (c *Config) HasAICredential() bool {
	return c.AI.APIKey != ""
}
