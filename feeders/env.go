package feeders

import (
	"encoding"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/golobby/cast"
)

// EnvFeeder is a feeder that reads environment variables with a prefix.
// Fields are matched through their `env` struct tag: with prefix "LOGWARD",
// a field tagged `env:"LEVEL"` is fed from LOGWARD_LEVEL. Unset variables
// leave the field untouched, so environment values override file values
// field-by-field.
type EnvFeeder struct {
	Prefix string
}

// NewEnvFeeder creates a new EnvFeeder with the specified prefix
func NewEnvFeeder(prefix string) EnvFeeder {
	return EnvFeeder{Prefix: prefix}
}

// Feed reads environment variables and populates the provided structure
func (f EnvFeeder) Feed(target any) error {
	if f.Prefix == "" {
		return ErrEmptyPrefix
	}

	targetType := reflect.TypeOf(target)
	if targetType == nil || targetType.Kind() != reflect.Ptr || targetType.Elem().Kind() != reflect.Struct {
		return ErrInvalidStructure
	}

	return processStructFields(reflect.ValueOf(target).Elem(), strings.ToUpper(f.Prefix))
}

// processStructFields iterates through struct fields
func processStructFields(rv reflect.Value, prefix string) error {
	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		fieldType := rv.Type().Field(i)

		if field.Kind() == reflect.Struct {
			if err := processStructFields(field, prefix); err != nil {
				return err
			}
			continue
		}

		envTag, exists := fieldType.Tag.Lookup("env")
		if !exists {
			continue
		}
		if err := setFieldFromEnv(field, envTag, prefix); err != nil {
			return fmt.Errorf("error in field '%s': %w", fieldType.Name, err)
		}
	}
	return nil
}

// setFieldFromEnv sets a field value from an environment variable
func setFieldFromEnv(field reflect.Value, envTag, prefix string) error {
	envName := prefix + "_" + strings.ToUpper(envTag)
	envValue := os.Getenv(envName)
	if envValue == "" {
		return nil
	}
	return setFieldValue(field, envValue)
}

// setFieldValue converts and sets a field value
func setFieldValue(field reflect.Value, strValue string) error {
	if !field.CanSet() {
		return ErrFieldCannotBeSet
	}

	// Types with their own textual form (like Level) handle the conversion
	// themselves.
	if field.CanAddr() {
		if unmarshaler, ok := field.Addr().Interface().(encoding.TextUnmarshaler); ok {
			if err := unmarshaler.UnmarshalText([]byte(strValue)); err != nil {
				return fmt.Errorf("cannot parse value %q: %w", strValue, err)
			}
			return nil
		}
	}

	convertedValue, err := cast.FromType(strValue, field.Type())
	if err != nil {
		return fmt.Errorf("cannot convert value to type %v: %w", field.Type(), err)
	}
	field.Set(reflect.ValueOf(convertedValue))
	return nil
}
