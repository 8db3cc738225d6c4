package conrig

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for configuration resolution.
var (
	// ErrNoConfigurationFile indicates that a read or write was attempted on
	// a handle whose search found no file and that never received a fallback
	// path.
	ErrNoConfigurationFile = errors.New("no configuration file found")

	// ErrNoProjectDirectory indicates that the platform offers no
	// configuration or preference directory for the application identity.
	ErrNoProjectDirectory = errors.New("no project directory found")

	// ErrUnknownFileFormat indicates a FileFormat value outside the known
	// set was asked to encode or decode data.
	ErrUnknownFileFormat = errors.New("unknown file format")
)

// FileOp identifies the file system operation that failed.
type FileOp string

const (
	FileOpOpen  FileOp = "open"
	FileOpRead  FileOp = "read"
	FileOpWrite FileOp = "write"
	FileOpMkdir FileOp = "mkdir"
)

// FileSystemError reports a failed file system operation on a configuration
// path. Err preserves the underlying cause, so errors.Is(err, fs.ErrNotExist)
// and friends keep working through it.
type FileSystemError struct {
	Op   FileOp
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	var what string
	switch e.Op {
	case FileOpMkdir:
		what = "create configuration directory"
	default:
		what = string(e.Op) + " configuration file"
	}
	if e.Path == "" {
		return fmt.Sprintf("cannot %s: %v", what, e.Err)
	}
	return fmt.Sprintf("cannot %s %s: %v", what, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error { return e.Err }

// FormatOp identifies the serialization direction that failed.
type FormatOp string

const (
	FormatOpDecode FormatOp = "decode"
	FormatOpEncode FormatOp = "encode"
)

// FormatError reports that configuration data could not be encoded or
// decoded in a given format. Err preserves the parser or encoder diagnostic.
type FormatError struct {
	Format FileFormat
	Op     FormatOp
	Err    error
}

func (e *FormatError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("cannot %s configuration data: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("cannot %s %s configuration data: %v", e.Op, e.Format, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func fsError(op FileOp, path string, err error) error {
	return &FileSystemError{Op: op, Path: path, Err: err}
}

func decodeError(format FileFormat, err error) error {
	return &FormatError{Format: format, Op: FormatOpDecode, Err: err}
}

func encodeError(format FileFormat, err error) error {
	return &FormatError{Format: format, Op: FormatOpEncode, Err: err}
}
