package conrig

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ConfigFile is a handle to a possibly existing configuration file holding a
// value of type T. Handles come from [ConfigPathMetadata.SearchConfigFile];
// a handle with an empty Path represents a file the search did not find, and
// its terminal operations fail with ErrNoConfigurationFile until one of the
// Fallback methods supplies a path.
type ConfigFile[T any] struct {
	// FileFormat is the serialization language of the file.
	FileFormat FileFormat

	// Path is the location of the configuration file, or empty when the
	// search found none.
	Path string

	meta ConfigPathMetadata[T]
}

// NewConfigFile builds a handle directly from its parts. Most callers should
// obtain handles from [ConfigPathMetadata.SearchConfigFile] instead; this
// constructor exists for the rare case where the path is already known.
func NewConfigFile[T any](format FileFormat, path string, meta ConfigPathMetadata[T]) *ConfigFile[T] {
	return &ConfigFile[T]{FileFormat: format, Path: path, meta: meta}
}

func (c *ConfigFile[T]) fs() afero.Fs { return c.meta.fs() }

// FallbackPath sets path as the file location if the search found none. A
// path discovered by the search is never overridden. It returns the handle
// for chaining.
func (c *ConfigFile[T]) FallbackPath(path string) *ConfigFile[T] {
	if c.Path == "" {
		c.Path = path
	}
	return c
}

// FallbackDefaultSys sets the default system-level path as the file location
// if the search found none.
func (c *ConfigFile[T]) FallbackDefaultSys() (*ConfigFile[T], error) {
	if c.Path != "" {
		return c, nil
	}
	path, err := c.meta.DefaultSysConfigFile()
	if err != nil {
		return nil, err
	}
	c.Path = path
	return c, nil
}

// FallbackDefaultLocal sets the default working-directory path as the file
// location if the search found none.
func (c *ConfigFile[T]) FallbackDefaultLocal() (*ConfigFile[T], error) {
	if c.Path != "" {
		return c, nil
	}
	path, err := c.meta.DefaultLocalConfigFile()
	if err != nil {
		return nil, err
	}
	c.Path = path
	return c, nil
}

// FallbackDefault sets the default path selected by Option.SysOverrideLocal
// as the file location if the search found none.
func (c *ConfigFile[T]) FallbackDefault() (*ConfigFile[T], error) {
	if c.Path != "" {
		return c, nil
	}
	path, err := c.meta.DefaultConfigFile()
	if err != nil {
		return nil, err
	}
	c.Path = path
	return c, nil
}

// Read decodes the configuration file into a value of type T.
func (c *ConfigFile[T]) Read() (T, error) {
	var zero T
	if c.Path == "" {
		return zero, ErrNoConfigurationFile
	}
	f, err := c.fs().Open(c.Path)
	if err != nil {
		return zero, fsError(FileOpOpen, c.Path, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return zero, fsError(FileOpRead, c.Path, err)
	}
	var value T
	if err := c.FileFormat.Unmarshal(data, &value); err != nil {
		return zero, err
	}
	return value, nil
}

// Write encodes value and replaces the file contents, creating the parent
// directory first when needed. The value is fully serialized before the file
// is touched, so an encoding failure leaves the disk unchanged. The write
// itself is a plain truncate-and-replace with no locking; see the package
// documentation for the concurrency contract.
func (c *ConfigFile[T]) Write(value T) error {
	if c.Path == "" {
		return ErrNoConfigurationFile
	}
	data, err := c.FileFormat.Marshal(value)
	if err != nil {
		return err
	}

	fsys := c.fs()
	dir := filepath.Dir(c.Path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fsError(FileOpMkdir, dir, err)
	}
	f, err := fsys.OpenFile(c.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fsError(FileOpOpen, c.Path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fsError(FileOpWrite, c.Path, err)
	}
	if err := f.Close(); err != nil {
		return fsError(FileOpWrite, c.Path, err)
	}
	return nil
}

// ReadOrNew behaves like Read when the configuration file exists. Otherwise
// it writes def as a fresh configuration file and returns def as-is, without
// decoding what was just written.
func (c *ConfigFile[T]) ReadOrNew(def T) (T, error) {
	var zero T
	if c.Path == "" {
		return zero, ErrNoConfigurationFile
	}
	if fileExists(c.fs(), c.Path) {
		return c.Read()
	}
	if err := c.Write(def); err != nil {
		return zero, err
	}
	return def, nil
}

// ReadOrDefault is ReadOrNew seeded with the zero value of T.
func (c *ConfigFile[T]) ReadOrDefault() (T, error) {
	var def T
	return c.ReadOrNew(def)
}
