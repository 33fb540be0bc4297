// Package logs creates a Multi writer instance that
// write all logs that are written to stdout.
package logs

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/prysmaticlabs/slashing-oracle/io/file"
	"github.com/sirupsen/logrus"
)

func addLogWriter(w io.Writer) {
	mw := io.MultiWriter(logrus.StandardLogger().Out, w)
	logrus.SetOutput(mw)
}

// ConfigurePersistentLogging adds a log-to-file writer. File content is identical to stdout.
func ConfigurePersistentLogging(logFileName string) error {
	logrus.WithField("logFileName", logFileName).Info("Logs will be made persistent")
	if err := ensureDir(filepath.Dir(logFileName)); err != nil {
		return err
	}
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304
	if err != nil {
		return err
	}

	addLogWriter(f)

	logrus.Info("File logging initialized")
	return nil
}

func ensureDir(dir string) error {
	exists, err := file.HasDir(dir)
	if err != nil || exists {
		return err
	}
	return file.MkdirAll(dir)
}

// MaskCredentialsLogging masks the url credentials before logging for security purpose
// [scheme:][//[userinfo@]host][/]path[?query][#fragment] -->  [scheme:][//[***]host][/***][#***]
// if the format is not matched nothing is done, string is returned as is.
func MaskCredentialsLogging(currUrl string) string {
	masked := currUrl
	u, err := url.Parse(currUrl)
	if err != nil {
		return currUrl
	}
	if u.User != nil {
		masked = strings.Replace(masked, u.User.String(), "***", 1)
	}
	if len(u.RequestURI()) > 1 {
		masked = strings.Replace(masked, u.RequestURI(), "/***", 1)
	}
	if len(u.Fragment) > 0 {
		masked = strings.Replace(masked, u.RawFragment, "***", 1)
	}
	return masked
}
