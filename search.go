package conrig

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// SearchConfigFile looks for an existing configuration file and returns a
// handle to it.
//
// Candidate locations are probed in order: ExtraFiles first, then each
// ExtraFolders entry, then the system configuration directory and the
// current working directory, with Option.SysOverrideLocal deciding which of
// the last two goes first. Within each directory every ConfigName entry is
// tried in order, the plain spelling before the dot-prefixed one. Each
// candidate is expanded through extension detection, so "conrig" matches
// "conrig.toml", "conrig.json" and so on, and an extensionless "conrig" file
// is reported with DefaultFormat.
//
// The first match wins. When nothing matches, the returned handle carries
// DefaultFormat and an empty path; reading or writing it fails with
// ErrNoConfigurationFile until a Fallback method supplies a path.
func (m ConfigPathMetadata[T]) SearchConfigFile() (*ConfigFile[T], error) {
	sysDir, err := m.SysDir()
	if err != nil {
		return nil, err
	}
	localDir, err := os.Getwd()
	if err != nil {
		return nil, fsError(FileOpOpen, "", errors.Wrap(err, "resolving working directory"))
	}

	var candidates []string
	candidates = append(candidates, m.ExtraFiles...)
	for _, folder := range m.ExtraFolders {
		candidates = m.appendStems(candidates, folder)
	}
	if m.Option.SysOverrideLocal {
		candidates = m.appendStems(candidates, sysDir)
		candidates = m.appendStems(candidates, localDir)
	} else {
		candidates = m.appendStems(candidates, localDir)
		candidates = m.appendStems(candidates, sysDir)
	}

	fsys := m.fs()
	for _, cand := range candidates {
		m.trace("probing configuration candidate", "base", cand)
		if path, format, ok := detectFileFormat(fsys, cand, m.DefaultFormat); ok {
			m.trace("configuration file found", "path", path, "format", format)
			return NewConfigFile(format, path, m), nil
		}
	}

	m.trace("no configuration file found", "default_format", m.DefaultFormat)
	return NewConfigFile(m.DefaultFormat, "", m), nil
}

// appendStems expands the candidate names into file stems under dir.
func (m ConfigPathMetadata[T]) appendStems(dst []string, dir string) []string {
	for _, name := range m.ConfigName {
		dst = append(dst, filepath.Join(dir, name))
		if m.Option.AllowDotPrefix {
			dst = append(dst, filepath.Join(dir, "."+name))
		}
	}
	return dst
}
