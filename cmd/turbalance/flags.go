package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

// overrideBool replaces *dst with the flag value only when the user set the flag.
func overrideBool(fs *pflag.FlagSet, name string, dst *bool) error {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetBool(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}

// overrideInt replaces *dst with the flag value only when the user set the flag.
func overrideInt(fs *pflag.FlagSet, name string, dst *int) error {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetInt(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}

// overrideStrings replaces *dst with the flag value only when the user set the flag.
func overrideStrings(fs *pflag.FlagSet, name string, dst *[]string) error {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetStringSlice(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}
