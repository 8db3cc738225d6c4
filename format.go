package conrig

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// FileFormat identifies the serialization language of a configuration file.
// The value of each known format is its canonical file extension.
type FileFormat string

const (
	FormatTOML   FileFormat = "toml"
	FormatJSON   FileFormat = "json"
	FormatYAML   FileFormat = "yaml"
	FormatHuJSON FileFormat = "hujson"
)

// DefaultFileFormat is the format recommended when an application has no
// reason to prefer another one.
const DefaultFileFormat = FormatTOML

// detectExtensions lists every extension the file prober recognizes, in
// priority order. YAML is probed under both conventional spellings.
var detectExtensions = []struct {
	ext    string
	format FileFormat
}{
	{"toml", FormatTOML},
	{"json", FormatJSON},
	{"yaml", FormatYAML},
	{"yml", FormatYAML},
	{"hujson", FormatHuJSON},
}

// Extension returns the canonical file extension for the format, without the
// leading dot. YAML files are written with the "yaml" extension, though "yml"
// is also recognized during detection. Unknown formats return the empty
// string.
func (f FileFormat) Extension() string {
	switch f {
	case FormatTOML, FormatJSON, FormatYAML, FormatHuJSON:
		return string(f)
	default:
		return ""
	}
}

// Unmarshal decodes data into v according to the format. Decoding failures
// are reported as a *FormatError wrapping the parser diagnostic.
func (f FileFormat) Unmarshal(data []byte, v any) error {
	switch f {
	case FormatTOML:
		if err := toml.Unmarshal(data, v); err != nil {
			return decodeError(f, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, v); err != nil {
			return decodeError(f, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return decodeError(f, err)
		}
	case FormatHuJSON:
		std, err := hujson.Standardize(data)
		if err != nil {
			return decodeError(f, err)
		}
		if err := json.Unmarshal(std, v); err != nil {
			return decodeError(f, err)
		}
	default:
		return decodeError(f, ErrUnknownFileFormat)
	}
	return nil
}

// Marshal encodes v according to the format. The output always ends with a
// newline. Encoding failures are reported as a *FormatError.
func (f FileFormat) Marshal(v any) ([]byte, error) {
	var data []byte
	var err error
	switch f {
	case FormatTOML:
		data, err = toml.Marshal(v)
	case FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		data, err = yamlMarshal(v)
	case FormatHuJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		if err == nil {
			data, err = hujson.Format(data)
		}
	default:
		err = ErrUnknownFileFormat
	}
	if err != nil {
		return nil, encodeError(f, err)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

// yamlMarshal converts the panics yaml.Marshal raises on unencodable values
// into ordinary errors.
func yamlMarshal(v any) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()
	return yaml.Marshal(v)
}

// Write encodes v and writes it to w. The value is fully serialized before
// the first byte reaches w, so an encoding failure produces no output.
func (f FileFormat) Write(w io.Writer, v any) error {
	data, err := f.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fsError(FileOpWrite, "", err)
	}
	return nil
}

// DetectFileFormat probes the file system for a configuration file derived
// from path. Every known extension is appended to path and tried in priority
// order (toml, json, yaml, yml, hujson); if none of those files exist, path
// itself is tried and reported with the fallback format. The returned bool
// is false when nothing was found.
func DetectFileFormat(path string, fallback FileFormat) (string, FileFormat, bool) {
	return detectFileFormat(osFs, path, fallback)
}

func detectFileFormat(fsys afero.Fs, path string, fallback FileFormat) (string, FileFormat, bool) {
	for _, cand := range detectExtensions {
		probe := path + "." + cand.ext
		if fileExists(fsys, probe) {
			return probe, cand.format, true
		}
	}
	if fileExists(fsys, path) {
		return path, fallback, true
	}
	return "", "", false
}

// fileExists reports whether path names an existing regular file.
// Directories never count as configuration files.
func fileExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}
