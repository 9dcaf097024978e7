package repository

import (
	"context"
	"fmt"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/secrets"

	// Register the in-memory driver for mem:// STORAGE_URL values
	_ "gocloud.dev/blob/memblob"

	// Register KMS drivers for ENCRYPTION_KEY_URI
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// OpenBucket opens the bucket holding the catalog documents. A non-empty
// storageURL (file://, mem://) wins; otherwise dataDir is opened as a local
// directory and created when absent.
func OpenBucket(ctx context.Context, storageURL, dataDir string) (*blob.Bucket, error) {
	if storageURL != "" {
		bucket, err := blob.OpenBucket(ctx, storageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open bucket %q: %w", storageURL, err)
		}
		return bucket, nil
	}

	bucket, err := fileblob.OpenBucket(dataDir, &fileblob.Options{CreateDir: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory %q: %w", dataDir, err)
	}
	return bucket, nil
}

// OpenKeeper opens the key used to encrypt documents at rest.
// Supports: base64key://, hashivault://, gcpkms://, awskms://, azurekeyvault://
func OpenKeeper(ctx context.Context, keyURI string) (*secrets.Keeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}
