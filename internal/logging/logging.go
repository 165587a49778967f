// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultVerbosity is the verbosity step used when neither -v nor -q is
// given. Step 2 is warn.
const DefaultVerbosity = 2

// LevelFromVerbosity shifts base by the -v and -q counts and maps the
// result to a level: 0 and below disables logging, then error, warn,
// info, debug, and trace from 5 upwards. The boolean reports whether the
// counts moved the level away from base.
func LevelFromVerbosity(base, verbose, quiet int) (zerolog.Level, bool) {
	step := base + verbose - quiet

	var level zerolog.Level
	switch {
	case step <= 0:
		level = zerolog.Disabled
	case step == 1:
		level = zerolog.ErrorLevel
	case step == 2:
		level = zerolog.WarnLevel
	case step == 3:
		level = zerolog.InfoLevel
	case step == 4:
		level = zerolog.DebugLevel
	default:
		level = zerolog.TraceLevel
	}

	return level, step != base
}

// ResolveLevel decides the effective level. Explicit -v/-q counts win,
// then the configured level name, then warn.
func ResolveLevel(configured string, verbose, quiet int) (zerolog.Level, error) {
	if level, changed := LevelFromVerbosity(DefaultVerbosity, verbose, quiet); changed {
		return level, nil
	}

	if configured == "" {
		return zerolog.WarnLevel, nil
	}

	level, err := zerolog.ParseLevel(configured)
	if err != nil {
		return zerolog.WarnLevel, fmt.Errorf("invalid log level '%s': %w", configured, err)
	}

	return level, nil
}

// Setup points the global logger at w using the console format without
// timestamps.
func Setup(w io.Writer, level zerolog.Level) {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:          w,
		PartsExclude: []string{zerolog.TimestampFieldName},
	})
	zerolog.SetGlobalLevel(level)
}

// Causes returns the messages of every error wrapped by err, outermost
// first. err's own message is not included.
func Causes(err error) []string {
	var causes []string
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		causes = append(causes, cause.Error())
	}
	return causes
}

// LogCauses writes the cause chain of err at info level.
func LogCauses(err error) {
	LogCausesTo(log.Logger, err)
}

// LogCausesTo is LogCauses on logger, so every cause line carries the
// logger's context fields.
func LogCausesTo(logger zerolog.Logger, err error) {
	for _, cause := range Causes(err) {
		logger.Info().Msgf("cause: %s", cause)
	}
}
