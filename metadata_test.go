package conrig

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestNewPanicsWithoutNames(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New accepted an empty name list")
		}
	}()
	New[testConfig](ProjectPath{Application: "app"}, nil, FormatTOML, DefaultOption())
}

func TestDefaultOption(t *testing.T) {
	got := DefaultOption()
	want := ConfigOption{
		AllowDotPrefix:   true,
		SysOverrideLocal: false,
		ConfigSysType:    ConfigTypeConfig,
	}
	if got != want {
		t.Errorf("DefaultOption() = %+v, want %+v", got, want)
	}
}

func TestConfigOptionBuilders(t *testing.T) {
	base := DefaultOption()

	modified := base.
		WithAllowDotPrefix(false).
		WithSysOverrideLocal(true).
		WithConfigSysType(ConfigTypePreference)

	if modified.AllowDotPrefix || !modified.SysOverrideLocal || modified.ConfigSysType != ConfigTypePreference {
		t.Errorf("builders produced %+v", modified)
	}
	if base != DefaultOption() {
		t.Errorf("builders mutated the receiver: %+v", base)
	}
}

func TestMetadataBuilders(t *testing.T) {
	base := New[testConfig](ProjectPath{Application: "app"}, []string{"app"}, FormatTOML, DefaultOption())

	memFs := afero.NewMemMapFs()
	logger := slog.Default()
	modified := base.
		WithProjectPath(ProjectPath{Application: "renamed"}).
		WithConfigName("other", "fallback").
		WithDefaultFormat(FormatYAML).
		WithExtraFiles("/etc/app.cfg").
		WithExtraFolders("/etc/app").
		WithOption(DefaultOption().WithSysOverrideLocal(true)).
		WithFs(memFs).
		WithLogger(logger)

	if modified.ProjectPath.Application != "renamed" {
		t.Errorf("ProjectPath = %+v", modified.ProjectPath)
	}
	if len(modified.ConfigName) != 2 || modified.ConfigName[0] != "other" {
		t.Errorf("ConfigName = %v", modified.ConfigName)
	}
	if modified.DefaultFormat != FormatYAML {
		t.Errorf("DefaultFormat = %q", modified.DefaultFormat)
	}
	if len(modified.ExtraFiles) != 1 || modified.ExtraFiles[0] != "/etc/app.cfg" {
		t.Errorf("ExtraFiles = %v", modified.ExtraFiles)
	}
	if len(modified.ExtraFolders) != 1 || modified.ExtraFolders[0] != "/etc/app" {
		t.Errorf("ExtraFolders = %v", modified.ExtraFolders)
	}
	if !modified.Option.SysOverrideLocal {
		t.Errorf("Option = %+v", modified.Option)
	}
	if modified.Fs != memFs || modified.Logger != logger {
		t.Error("Fs or Logger not carried over")
	}

	if base.DefaultFormat != FormatTOML || base.ExtraFiles != nil || base.Fs != nil {
		t.Errorf("builders mutated the receiver: %+v", base)
	}
	if len(base.ConfigName) != 1 || base.ConfigName[0] != "app" {
		t.Errorf("builders mutated the receiver's names: %v", base.ConfigName)
	}
}

func TestWithConfigNamePanicsWhenEmpty(t *testing.T) {
	meta := New[testConfig](ProjectPath{Application: "app"}, []string{"app"}, FormatTOML, DefaultOption())
	defer func() {
		if recover() == nil {
			t.Error("WithConfigName accepted an empty name list")
		}
	}()
	meta.WithConfigName()
}

func TestSysDirSelection(t *testing.T) {
	meta, _ := newTestMeta(t, "app")

	cfgDir, err := meta.SysConfigDir()
	if err != nil {
		t.Fatalf("SysConfigDir: %v", err)
	}
	prefDir, err := meta.SysPreferenceDir()
	if err != nil {
		t.Fatalf("SysPreferenceDir: %v", err)
	}

	dir, err := meta.SysDir()
	if err != nil {
		t.Fatalf("SysDir: %v", err)
	}
	if dir != cfgDir {
		t.Errorf("SysDir = %q, want config dir %q", dir, cfgDir)
	}

	meta = meta.WithOption(meta.Option.WithConfigSysType(ConfigTypePreference))
	dir, err = meta.SysDir()
	if err != nil {
		t.Fatalf("SysDir: %v", err)
	}
	if dir != prefDir {
		t.Errorf("SysDir = %q, want preference dir %q", dir, prefDir)
	}
}

func TestSysDirNoProjectDirectory(t *testing.T) {
	meta := New[testConfig](ProjectPath{}, []string{"app"}, FormatTOML, DefaultOption())

	_, err := meta.SysConfigDir()
	if !errors.Is(err, ErrNoProjectDirectory) {
		t.Fatalf("SysConfigDir error = %v, want ErrNoProjectDirectory", err)
	}
	if details := errors.GetAllDetails(err); len(details) == 0 {
		t.Error("error carries no identity details")
	}
}

func TestDefaultFilePaths(t *testing.T) {
	meta, dirs := newTestMeta(t, "app")

	local, err := meta.DefaultLocalConfigFile()
	if err != nil {
		t.Fatalf("DefaultLocalConfigFile: %v", err)
	}
	if want := filepath.Join(dirs.Local, "app.toml"); local != want {
		t.Errorf("DefaultLocalConfigFile = %q, want %q", local, want)
	}

	sys, err := meta.DefaultSysConfigFile()
	if err != nil {
		t.Fatalf("DefaultSysConfigFile: %v", err)
	}
	if want := filepath.Join(dirs.Sys, "app.toml"); sys != want {
		t.Errorf("DefaultSysConfigFile = %q, want %q", sys, want)
	}

	def, err := meta.DefaultConfigFile()
	if err != nil {
		t.Fatalf("DefaultConfigFile: %v", err)
	}
	if def != local {
		t.Errorf("DefaultConfigFile = %q, want local %q", def, local)
	}

	meta = meta.WithOption(meta.Option.WithSysOverrideLocal(true))
	def, err = meta.DefaultConfigFile()
	if err != nil {
		t.Fatalf("DefaultConfigFile: %v", err)
	}
	if def != sys {
		t.Errorf("DefaultConfigFile = %q, want sys %q", def, sys)
	}

	meta = meta.WithDefaultFormat(FormatJSON)
	sys, err = meta.DefaultSysConfigFile()
	if err != nil {
		t.Fatalf("DefaultSysConfigFile: %v", err)
	}
	if want := filepath.Join(dirs.Sys, "app.json"); sys != want {
		t.Errorf("DefaultSysConfigFile = %q, want %q", sys, want)
	}
}

func TestShortcutWriteThenRead(t *testing.T) {
	meta, dirs := newTestMeta(t, "app")
	value := testConfig{Name: "shortcut", ID: 11}

	require.NoError(t, meta.Write(value))

	// With no prior file and local precedence, the write lands in the
	// working directory.
	if _, err := os.Stat(filepath.Join(dirs.Local, "app.toml")); err != nil {
		t.Fatalf("default local file missing: %v", err)
	}

	got, err := meta.Read()
	require.NoError(t, err)
	require.Equal(t, value, got)
}

func TestShortcutReadMissingFile(t *testing.T) {
	meta, _ := newTestMeta(t, "app")

	_, err := meta.Read()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Read error = %v, want wrapped fs.ErrNotExist", err)
	}
	var fsErr *FileSystemError
	if !errors.As(err, &fsErr) || fsErr.Op != FileOpOpen {
		t.Errorf("Read error = %v, want *FileSystemError with open op", err)
	}
}

func TestShortcutReadOrNew(t *testing.T) {
	meta, dirs := newTestMeta(t, "app")
	def := testConfig{Name: "fresh", ID: 3}

	got, err := meta.ReadOrNew(def)
	require.NoError(t, err)
	require.Equal(t, def, got)

	data, err := os.ReadFile(filepath.Join(dirs.Local, "app.toml"))
	require.NoError(t, err)

	var onDisk testConfig
	require.NoError(t, FormatTOML.Unmarshal(data, &onDisk))
	require.Equal(t, def, onDisk)
}

func TestShortcutReadOrDefault(t *testing.T) {
	meta, dirs := newTestMeta(t, "app")

	got, err := meta.ReadOrDefault()
	require.NoError(t, err)
	require.Equal(t, testConfig{}, got)

	if _, err := os.Stat(filepath.Join(dirs.Local, "app.toml")); err != nil {
		t.Fatalf("default file missing after ReadOrDefault: %v", err)
	}
}
