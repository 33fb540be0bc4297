// Package flags holds custom flag types for the command line.
package flags

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// EnumValue is a cli.Generic restricted to a fixed set of strings. Until a
// value is set it reports Default.
type EnumValue struct {
	Enum     []string
	Default  string
	selected string
}

// Set rejects any value outside Enum.
func (e *EnumValue) Set(value string) error {
	for _, allowed := range e.Enum {
		if allowed == value {
			e.selected = value
			return nil
		}
	}
	return errors.Errorf("allowed values are %s", strings.Join(e.Enum, ", "))
}

func (e *EnumValue) String() string {
	if e.selected == "" {
		return e.Default
	}
	return e.selected
}

// NewEnumFlag returns a generic flag accepting only the given values. Its
// value is read back with cli.Context.String.
func NewEnumFlag(name, usage, def string, enum ...string) *cli.GenericFlag {
	return &cli.GenericFlag{
		Name:  name,
		Usage: usage,
		Value: &EnumValue{Enum: enum, Default: def},
	}
}
