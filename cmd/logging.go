package cmd

import (
	"fmt"
	"io"

	joonix "github.com/joonix/log"
	"github.com/prysmaticlabs/slashing-oracle/io/logs"
	"github.com/prysmaticlabs/slashing-oracle/monitoring/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/wercker/journalhook"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var log = logrus.WithField("prefix", "cmd")

// ConfigureLogging applies the verbosity, log format and log file flags to the
// standard logger and counts log entries for prometheus.
func ConfigureLogging(cliCtx *cli.Context) error {
	level, err := logrus.ParseLevel(cliCtx.String(VerbosityFlag.Name))
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	format := cliCtx.String(LogFormat.Name)
	switch format {
	case "text":
		formatter := new(prefixed.TextFormatter)
		formatter.TimestampFormat = "2006-01-02 15:04:05"
		formatter.FullTimestamp = true
		// If persistent log files are written - we disable the log messages coloring because
		// the colors are ANSI codes and seen as Gibberish in the log files.
		formatter.DisableColors = cliCtx.String(LogFileName.Name) != ""
		logrus.SetFormatter(formatter)
	case "fluentd":
		logrus.SetFormatter(joonix.NewFormatter())
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "journald":
		hook := &journalhook.JournalHook{}
		logrus.AddHook(hook)
		logrus.SetOutput(io.Discard)
	default:
		return fmt.Errorf("unknown log format %s", format)
	}

	logFileName := cliCtx.String(LogFileName.Name)
	if logFileName != "" {
		if err := logs.ConfigurePersistentLogging(logFileName); err != nil {
			log.WithError(err).Error("Failed to configuring logging to disk.")
		}
	}
	logrus.AddHook(prometheus.NewLogrusCollector())
	return nil
}
