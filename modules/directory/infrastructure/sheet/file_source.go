package sheet

import (
	"context"
	"os"

	"github.com/go-faster/errors"
)

// FileSource reads CSV text from disk.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.path
}

func (s *FileSource) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", &FetchError{Source: s.Name(), URL: s.path, Err: err}
	}
	text, _, err := Decode(data)
	if err != nil {
		return "", errors.Wrapf(err, "decode %s", s.path)
	}
	return text, nil
}
