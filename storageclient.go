package gwasmisc

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// StorageClientFor returns a Google Storage client if any of paths is a gs://
// path, and nil otherwise, so that purely local runs never need credentials.
func StorageClientFor(paths ...string) (*storage.Client, error) {
	for _, path := range paths {
		if IsGoogleStoragePath(path) {
			client, err := storage.NewClient(context.Background())
			if err != nil {
				return nil, pfx.Err(err)
			}
			return client, nil
		}
	}

	return nil, nil
}
