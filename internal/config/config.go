// Package config materializes search settings from the viper store the
// root command binds flags, environment and the optional config file
// into.
package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/fathom-framework/fathom/internal/trace"
	"github.com/fathom-framework/fathom/pkg/fathom"
)

// Keys in the viper store, shared with the root command's flag names.
const (
	KeyAbsoluteTolerance = "absolute-tolerance"
	KeyRelativeTolerance = "relative-tolerance"
	KeyPrintInterval     = "print-interval"
	KeyDebug             = "debug"
	KeyVerbosity         = "verbosity"
)

// SearchParams returns the configured, validated search parameters.
func SearchParams() (fathom.Params, error) {
	params := fathom.Params{
		AbsoluteTolerance: viper.GetFloat64(KeyAbsoluteTolerance),
		RelativeTolerance: viper.GetFloat64(KeyRelativeTolerance),
		PrintInterval:     viper.GetInt(KeyPrintInterval),
		Debug:             viper.GetBool(KeyDebug),
	}
	if err := params.Validate(); err != nil {
		return fathom.Params{}, fmt.Errorf("invalid search parameters: %w", err)
	}
	return params, nil
}

// NewLogger builds a logger at the configured verbosity, writing to
// stderr so solution output on stdout stays clean.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(viper.GetString(KeyVerbosity))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// NewTracer builds the search tracer the subcommands hand to the
// solver, backed by a configured logger.
func NewTracer() trace.LogrusTracer {
	return trace.LogrusTracer{Logger: NewLogger()}
}
