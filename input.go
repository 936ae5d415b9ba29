package docfmt

import (
	"io"
	"os"
)

// MaxInputSize is the largest document accepted, in bytes.
const MaxInputSize = 10 << 20

// ReadFile reads a document from disk. The size is checked before the file
// is opened.
func ReadFile(name string) (string, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return "", err
	}
	if fi.Size() > MaxInputSize {
		return "", &FileTooLargeError{Name: name, Size: fi.Size(), Limit: MaxInputSize}
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadAll reads a document from a stream of unknown size, such as stdin.
// At most one byte more than the limit is consumed.
func ReadAll(r io.Reader) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return "", err
	}
	if len(b) > MaxInputSize {
		return "", &FileTooLargeError{Name: "input", Size: -1, Limit: MaxInputSize}
	}
	return string(b), nil
}
