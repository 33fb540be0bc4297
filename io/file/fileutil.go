// Package file reads attestation and slashing fixtures from disk and writes
// command results.
package file

import (
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
)

const (
	readWritePermissions        = 0600
	readWriteExecutePermissions = 0700
)

// ExpandPath given a string which may be a relative path.
// 1. replace tilde with users home dir
// 2. expands embedded environment variables
// 3. cleans the path, e.g. /a/b/../c -> /a/c
// Note, it has limitations, e.g. ~someuser/tmp will not be expanded
func ExpandPath(p string) (string, error) {
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~\\") {
		if home := HomeDir(); home != "" {
			p = home + p[1:]
		}
	}
	return filepath.Abs(filepath.Clean(os.ExpandEnv(p)))
}

// HomeDir for a user.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// MkdirAll takes in a path, expands it if necessary, and looks through the
// permissions of every directory along the path, ensuring we are not attempting
// to overwrite any existing permissions. Finally, creates the directory accordingly
// with standardized, Prysm project permissions. This is the static-analysis enforced
// method for creating a directory programmatically in Prysm.
func MkdirAll(dirPath string) error {
	expanded, err := ExpandPath(dirPath)
	if err != nil {
		return err
	}
	info, err := os.Stat(expanded)
	if err == nil {
		if !info.IsDir() {
			return errors.Errorf("%s exists and is not a directory", expanded)
		}
		if info.Mode().Perm() != readWriteExecutePermissions {
			return errors.New("dir already exists without proper 0700 permissions")
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(expanded, readWriteExecutePermissions)
}

// HasDir checks if a directory indeed exists at the specified path.
func HasDir(dirPath string) (bool, error) {
	fullPath, err := ExpandPath(dirPath)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(fullPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if info == nil {
		return false, err
	}
	return info.IsDir(), err
}

// ReadFileAsBytes expands a file name's absolute path and reads it as bytes from disk.
func ReadFileAsBytes(filename string) ([]byte, error) {
	filePath, err := ExpandPath(filename)
	if err != nil {
		return nil, errors.Wrap(err, "could not determine absolute path of file")
	}
	return os.ReadFile(filePath) // #nosec G304
}

// LoadAttestations reads a list of indexed attestations from a YAML or JSON file.
func LoadAttestations(path string) ([]*ethpb.IndexedAttestation, error) {
	enc, err := ReadFileAsBytes(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	atts := make([]*ethpb.IndexedAttestation, 0)
	if err := yaml.Unmarshal(enc, &atts); err != nil {
		return nil, errors.Wrapf(err, "could not decode attestations in %s", path)
	}
	for i, att := range atts {
		if att == nil {
			return nil, errors.Errorf("empty attestation at position %d in %s", i, path)
		}
	}
	return atts, nil
}

// LoadAttesterSlashings reads a list of attester slashings from a YAML or JSON file.
func LoadAttesterSlashings(path string) ([]*ethpb.AttesterSlashing, error) {
	enc, err := ReadFileAsBytes(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	slashings := make([]*ethpb.AttesterSlashing, 0)
	if err := yaml.Unmarshal(enc, &slashings); err != nil {
		return nil, errors.Wrapf(err, "could not decode attester slashings in %s", path)
	}
	for i, s := range slashings {
		if s == nil {
			return nil, errors.Errorf("empty attester slashing at position %d in %s", i, path)
		}
	}
	return slashings, nil
}

// WriteJSON writes v as indented JSON, creating the parent directory if needed.
func WriteJSON(path string, v interface{}) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(expanded)
	exists, err := HasDir(dir)
	if err != nil {
		return err
	}
	if !exists {
		if err := MkdirAll(dir); err != nil {
			return errors.Wrap(err, "could not create output directory")
		}
	}
	enc, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not encode output")
	}
	return os.WriteFile(expanded, append(enc, '\n'), readWritePermissions)
}
