package enum

import (
	"fmt"
	"reflect"
)

// registry maps a concrete enum type to its registered string values.
// Keying on reflect.Type keeps two enums with the same short name apart.
var registry = map[reflect.Type]map[string]any{}

// New registers value so ToEnum can parse it back, then returns it. It is
// meant for package-level variable declarations.
func New[T comparable](value T) T {
	v := reflect.ValueOf(value)
	values, ok := registry[v.Type()]
	if !ok {
		values = map[string]any{}
		registry[v.Type()] = values
	}

	values[v.String()] = value
	return value
}

// ToEnum parses s into a registered value of T.
func ToEnum[T comparable](s string) (T, error) {
	var zero T
	values, ok := registry[reflect.TypeOf(zero)]
	if !ok {
		return zero, fmt.Errorf("unknown enum type %T", zero)
	}

	value, ok := values[s]
	if !ok {
		return zero, fmt.Errorf("invalid %T value %q", zero, s)
	}

	return value.(T), nil
}
