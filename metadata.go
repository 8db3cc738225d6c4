package conrig

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/Embers-of-the-Fire/conrig/internal/projectdir"
)

// osFs is the file system used when a descriptor does not supply its own.
var osFs = afero.NewOsFs()

// ProjectPath identifies an application to the platform's directory
// conventions, mirroring the qualifier/organization/application triple used
// by desktop standards such as macOS bundle identifiers.
type ProjectPath struct {
	// Qualifier is the reverse-domain prefix, e.g. "org" or "com".
	// It only affects macOS directory names.
	Qualifier string

	// Organization is the name of the organization publishing the
	// application. It affects macOS and Windows directory names.
	Organization string

	// Application is the name of the application itself. It is required on
	// every platform.
	Application string
}

// ConfigType selects which platform directory stores system-level
// configuration files. The zero value behaves like ConfigTypeConfig.
type ConfigType string

const (
	// ConfigTypeConfig stores files in the platform configuration directory.
	ConfigTypeConfig ConfigType = "config"

	// ConfigTypePreference stores files in the platform preference
	// directory. Outside macOS this is the same directory as
	// ConfigTypeConfig.
	ConfigTypePreference ConfigType = "preference"
)

// ConfigOption tunes how configuration files are searched for.
type ConfigOption struct {
	// AllowDotPrefix also probes dot-prefixed variants of each candidate
	// name, e.g. ".conrig" next to "conrig". The plain spelling of a name is
	// always tried before its dotted spelling.
	AllowDotPrefix bool

	// SysOverrideLocal probes the system configuration directory before the
	// current working directory. The default is the reverse: local files
	// shadow system files.
	SysOverrideLocal bool

	// ConfigSysType selects the platform directory used for system-level
	// files.
	ConfigSysType ConfigType
}

// DefaultOption returns the standard search options: dot-prefixed variants
// enabled, local configuration shadowing system configuration, and
// system-level files stored in the configuration directory.
func DefaultOption() ConfigOption {
	return ConfigOption{
		AllowDotPrefix:   true,
		SysOverrideLocal: false,
		ConfigSysType:    ConfigTypeConfig,
	}
}

// WithAllowDotPrefix returns a copy of the options with the dot-prefix
// behavior replaced.
func (o ConfigOption) WithAllowDotPrefix(allow bool) ConfigOption {
	o.AllowDotPrefix = allow
	return o
}

// WithSysOverrideLocal returns a copy of the options with the search
// precedence replaced.
func (o ConfigOption) WithSysOverrideLocal(override bool) ConfigOption {
	o.SysOverrideLocal = override
	return o
}

// WithConfigSysType returns a copy of the options with the system directory
// type replaced.
func (o ConfigOption) WithConfigSysType(t ConfigType) ConfigOption {
	o.ConfigSysType = t
	return o
}

// ConfigPathMetadata describes where an application's configuration file of
// type T may live and how to search for it. A single metadata value is meant
// to be built once, near the application entry point, and shared.
//
// The zero value is not usable. Build metadata with [New], or as a literal
// with at least one entry in ConfigName.
type ConfigPathMetadata[T any] struct {
	// ProjectPath identifies the application to the platform directory
	// conventions.
	ProjectPath ProjectPath

	// ConfigName lists candidate file stems in priority order, without
	// extensions. At least one entry is required.
	ConfigName []string

	// DefaultFormat is the format assumed for extensionless matches and used
	// when creating a fresh configuration file.
	DefaultFormat FileFormat

	// ExtraFiles lists explicit paths probed before everything else. Each
	// entry is probed as-is through extension detection and is not expanded
	// with ConfigName.
	ExtraFiles []string

	// ExtraFolders lists additional directories searched after ExtraFiles
	// and before the system and working directories. Each is expanded with
	// ConfigName like the standard search roots.
	ExtraFolders []string

	// Option tunes the search behavior.
	Option ConfigOption

	// Fs is the file system used for probing, reading and writing. Leave nil
	// to use the operating system's.
	Fs afero.Fs

	// Logger, when set, receives debug-level tracing of the path search.
	// Errors are never logged, only returned.
	Logger *slog.Logger
}

// New builds a ConfigPathMetadata for configuration values of type T. It
// panics if names is empty; everything else about the search can be adjusted
// on the returned value.
func New[T any](project ProjectPath, names []string, format FileFormat, option ConfigOption) ConfigPathMetadata[T] {
	if len(names) == 0 {
		panic("conrig: at least one configuration name is required")
	}
	return ConfigPathMetadata[T]{
		ProjectPath:   project,
		ConfigName:    names,
		DefaultFormat: format,
		Option:        option,
	}
}

// WithProjectPath returns a copy of the metadata with the application
// identity replaced.
func (m ConfigPathMetadata[T]) WithProjectPath(project ProjectPath) ConfigPathMetadata[T] {
	m.ProjectPath = project
	return m
}

// WithConfigName returns a copy of the metadata with the candidate file
// stems replaced. Like [New], it panics if names is empty.
func (m ConfigPathMetadata[T]) WithConfigName(names ...string) ConfigPathMetadata[T] {
	if len(names) == 0 {
		panic("conrig: at least one configuration name is required")
	}
	m.ConfigName = names
	return m
}

// WithDefaultFormat returns a copy of the metadata with the default format
// replaced.
func (m ConfigPathMetadata[T]) WithDefaultFormat(format FileFormat) ConfigPathMetadata[T] {
	m.DefaultFormat = format
	return m
}

// WithExtraFiles returns a copy of the metadata with the explicit probe
// paths replaced.
func (m ConfigPathMetadata[T]) WithExtraFiles(files ...string) ConfigPathMetadata[T] {
	m.ExtraFiles = files
	return m
}

// WithExtraFolders returns a copy of the metadata with the additional search
// directories replaced.
func (m ConfigPathMetadata[T]) WithExtraFolders(folders ...string) ConfigPathMetadata[T] {
	m.ExtraFolders = folders
	return m
}

// WithOption returns a copy of the metadata with the search options
// replaced.
func (m ConfigPathMetadata[T]) WithOption(option ConfigOption) ConfigPathMetadata[T] {
	m.Option = option
	return m
}

// WithFs returns a copy of the metadata probing, reading and writing through
// fsys instead of the operating system file system.
func (m ConfigPathMetadata[T]) WithFs(fsys afero.Fs) ConfigPathMetadata[T] {
	m.Fs = fsys
	return m
}

// WithLogger returns a copy of the metadata tracing the path search to
// logger.
func (m ConfigPathMetadata[T]) WithLogger(logger *slog.Logger) ConfigPathMetadata[T] {
	m.Logger = logger
	return m
}

func (m ConfigPathMetadata[T]) fs() afero.Fs {
	if m.Fs != nil {
		return m.Fs
	}
	return osFs
}

func (m ConfigPathMetadata[T]) trace(msg string, args ...any) {
	if m.Logger != nil {
		m.Logger.Debug(msg, args...)
	}
}

// SysConfigDir returns the platform configuration directory for the
// application, regardless of Option.ConfigSysType.
func (m ConfigPathMetadata[T]) SysConfigDir() (string, error) {
	dir, err := projectdir.Config(m.ProjectPath.Qualifier, m.ProjectPath.Organization, m.ProjectPath.Application)
	if err != nil {
		return "", m.noProjectDirectory(err)
	}
	return dir, nil
}

// SysPreferenceDir returns the platform preference directory for the
// application, regardless of Option.ConfigSysType. Outside macOS this is the
// directory returned by SysConfigDir.
func (m ConfigPathMetadata[T]) SysPreferenceDir() (string, error) {
	dir, err := projectdir.Preference(m.ProjectPath.Qualifier, m.ProjectPath.Organization, m.ProjectPath.Application)
	if err != nil {
		return "", m.noProjectDirectory(err)
	}
	return dir, nil
}

// SysDir returns the system directory selected by Option.ConfigSysType.
func (m ConfigPathMetadata[T]) SysDir() (string, error) {
	if m.Option.ConfigSysType == ConfigTypePreference {
		return m.SysPreferenceDir()
	}
	return m.SysConfigDir()
}

func (m ConfigPathMetadata[T]) noProjectDirectory(cause error) error {
	return errors.WithDetailf(ErrNoProjectDirectory,
		"qualifier=%q organization=%q application=%q: %v",
		m.ProjectPath.Qualifier, m.ProjectPath.Organization, m.ProjectPath.Application, cause)
}

// defaultFileName is the file name used when creating a fresh configuration
// file: the first candidate name with the default format's extension.
func (m ConfigPathMetadata[T]) defaultFileName() string {
	name := m.ConfigName[0]
	if ext := m.DefaultFormat.Extension(); ext != "" {
		return name + "." + ext
	}
	return name
}

// DefaultSysConfigFile returns the path where a fresh system-level
// configuration file would be created.
func (m ConfigPathMetadata[T]) DefaultSysConfigFile() (string, error) {
	dir, err := m.SysDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, m.defaultFileName()), nil
}

// DefaultLocalConfigFile returns the path where a fresh configuration file
// would be created in the current working directory.
func (m ConfigPathMetadata[T]) DefaultLocalConfigFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fsError(FileOpOpen, "", errors.Wrap(err, "resolving working directory"))
	}
	return filepath.Join(dir, m.defaultFileName()), nil
}

// DefaultConfigFile returns the path where a fresh configuration file would
// be created, honoring Option.SysOverrideLocal: the system directory when
// set, the working directory otherwise.
func (m ConfigPathMetadata[T]) DefaultConfigFile() (string, error) {
	if m.Option.SysOverrideLocal {
		return m.DefaultSysConfigFile()
	}
	return m.DefaultLocalConfigFile()
}

// Read searches for the configuration file, falls back to the default
// location, and decodes it.
func (m ConfigPathMetadata[T]) Read() (T, error) {
	var zero T
	file, err := m.SearchConfigFile()
	if err != nil {
		return zero, err
	}
	if file, err = file.FallbackDefault(); err != nil {
		return zero, err
	}
	return file.Read()
}

// Write searches for the configuration file, falls back to the default
// location, and replaces its contents with value.
func (m ConfigPathMetadata[T]) Write(value T) error {
	file, err := m.SearchConfigFile()
	if err != nil {
		return err
	}
	if file, err = file.FallbackDefault(); err != nil {
		return err
	}
	return file.Write(value)
}

// ReadOrNew searches for the configuration file, falls back to the default
// location, and reads it; if the file does not exist yet, def is written
// there and returned.
func (m ConfigPathMetadata[T]) ReadOrNew(def T) (T, error) {
	var zero T
	file, err := m.SearchConfigFile()
	if err != nil {
		return zero, err
	}
	if file, err = file.FallbackDefault(); err != nil {
		return zero, err
	}
	return file.ReadOrNew(def)
}

// ReadOrDefault is ReadOrNew seeded with the zero value of T.
func (m ConfigPathMetadata[T]) ReadOrDefault() (T, error) {
	var def T
	return m.ReadOrNew(def)
}
