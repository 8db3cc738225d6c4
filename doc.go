// Package conrig locates, reads and writes a single application
// configuration file across interchangeable serialization formats.
//
// Applications describe where their configuration may live once, in a
// [ConfigPathMetadata] value, and conrig takes care of probing the platform
// configuration directory, the working directory and any extra locations,
// detecting the format of whatever file it finds, and decoding it into a
// caller-supplied type.
//
// # Quick start
//
//	type AppConfig struct {
//		Name string `toml:"name" json:"name" yaml:"name"`
//		ID   int    `toml:"id" json:"id" yaml:"id"`
//	}
//
//	var meta = conrig.New[AppConfig](
//		conrig.ProjectPath{
//			Qualifier:    "org",
//			Organization: "example",
//			Application:  "myapp",
//		},
//		[]string{"myapp"},
//		conrig.FormatTOML,
//		conrig.DefaultOption(),
//	)
//
//	cfg, err := meta.ReadOrDefault()
//
// ReadOrDefault finds an existing configuration file in any recognized
// format, or creates a fresh TOML one at the default location.
//
// # Search order
//
// [ConfigPathMetadata.SearchConfigFile] probes candidate locations in a
// fixed order and stops at the first existing file:
//
//  1. ExtraFiles, each probed as-is.
//  2. ExtraFolders, each expanded with the candidate names.
//  3. The system configuration directory and the current working
//     directory, expanded likewise. SysOverrideLocal decides which of
//     the two goes first; by default local files shadow system files.
//
// Within a directory, names are tried in ConfigName order, and the plain
// spelling of each name before its dot-prefixed variant. Every candidate
// goes through extension detection: known extensions are appended and tried
// in priority order, and a file matching the bare candidate path is accepted
// with the descriptor's default format.
//
// # Formats
//
// Four formats are understood, identified by [FileFormat] values whose
// string form doubles as the canonical extension:
//
//	| Format       | Extension       | Backed by                       |
//	|--------------|-----------------|---------------------------------|
//	| FormatTOML   | .toml           | github.com/pelletier/go-toml/v2 |
//	| FormatJSON   | .json           | encoding/json                   |
//	| FormatYAML   | .yaml (or .yml) | gopkg.in/yaml.v3                |
//	| FormatHuJSON | .hujson         | github.com/tailscale/hujson     |
//
// HuJSON is JSON with comments and trailing commas. Files are decoded
// leniently and re-encoded as standard indented JSON formatted by hujson.
//
// # Errors
//
// Failures are classified so callers can react without string matching:
// [ErrNoConfigurationFile] and [ErrNoProjectDirectory] are sentinels tested
// with errors.Is, while [FileSystemError] and [FormatError] wrap the
// underlying cause and surface through errors.As. The original cause stays
// reachable, so errors.Is(err, fs.ErrNotExist) keeps working through a
// FileSystemError.
//
// # Concurrency
//
// Metadata values are immutable and safe to share. Writes are plain
// truncate-and-replace with no file locking: concurrent writers to the same
// path are last-writer-wins, and a reader racing a writer may observe a
// partially written file. Serialize access externally if that matters.
package conrig
