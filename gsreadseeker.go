package gwasmisc

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// GSReadSeekCloser decorates a Google Storage object handle with io.Reader,
// io.Seeker and io.Closer. Only rewinding (Seek(0, io.SeekStart)) is
// supported, which is all that compression and delimiter sniffing need.
// Derived from
// https://github.com/googleapis/google-cloud-go/issues/1124#issuecomment-419070541
type GSReadSeekCloser struct {
	*storage.ObjectHandle
	Context context.Context
	r       *storage.Reader
}

func (s *GSReadSeekCloser) Read(buf []byte) (int, error) {
	if s.r == nil {
		r, err := s.NewReader(s.Context)
		if err != nil {
			return 0, err
		}
		s.r = r
	}

	return s.r.Read(buf)
}

func (s *GSReadSeekCloser) Seek(offset int64, whence int) (int64, error) {
	if offset != 0 || whence != io.SeekStart {
		return 0, fmt.Errorf("GSReadSeekCloser can only rewind to the start of the object, not seek to offset %d (whence %d)", offset, whence)
	}

	// Seeking is not actually possible. As a proxy, we close the current
	// connection so that the next Read opens a fresh one.
	if s.r != nil {
		s.r.Close()
		s.r = nil
	}

	return 0, nil
}

func (s *GSReadSeekCloser) Close() error {
	if s.r == nil {
		return nil
	}

	err := s.r.Close()
	s.r = nil
	return err
}

// IsGoogleStoragePath reports whether path points at a gs:// object.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// OpenSeeker opens a local file, or a gs://bucket/object path when client is
// not nil.
func OpenSeeker(path string, client *storage.Client) (ReadSeekCloser, error) {
	if client != nil && IsGoogleStoragePath(path) {
		// Detect the bucket and the path to the actual file
		pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
		if len(pathParts) != 2 || pathParts[1] == "" {
			return nil, fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
		}

		handle := client.Bucket(pathParts[0]).Object(pathParts[1])

		wrappedHandle := &GSReadSeekCloser{
			ObjectHandle: handle,
			Context:      context.Background(),
		}

		// Make a hard call so that a missing object fails here rather than on
		// the first read
		if _, err := handle.Attrs(wrappedHandle.Context); err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		return wrappedHandle, nil
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}
