package database

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

const (
	ReadWriteMode os.FileMode = 0600

	createdKey = "created"
)

var (
	ErrFilePathIsBlank     = errors.New("local store path must not be blank")
	ErrFilePathIsDirectory = errors.New("local store path must point to a file, not a directory")
)

// OpenBolt opens (creating if needed) the local key-value store and ensures the
// given top-level buckets exist.
func OpenBolt(filePath string, buckets ...string) (*bolt.DB, error) {
	filePath = strings.TrimSpace(filePath)
	if filePath == "" {
		return nil, ErrFilePathIsBlank
	}
	if stat, err := os.Stat(filePath); err == nil && stat.IsDir() {
		return nil, ErrFilePathIsDirectory
	}
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create local store directory")
		}
	}

	db, err := bolt.Open(filePath, ReadWriteMode, &bolt.Options{Timeout: 30 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open local store")
	}

	err = db.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists([]byte("meta"))
		if err != nil {
			return err
		}
		if meta.Get([]byte(createdKey)) == nil {
			now, _ := time.Now().MarshalBinary()
			if err := meta.Put([]byte(createdKey), now); err != nil {
				return err
			}
		}
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize local store buckets")
	}

	return db, nil
}

// BoltCreated returns when the local store file was first initialized.
func BoltCreated(db *bolt.DB) (time.Time, error) {
	var created time.Time
	err := db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket([]byte("meta"))
		if meta == nil {
			return errors.New("meta bucket does not exist")
		}
		return created.UnmarshalBinary(meta.Get([]byte(createdKey)))
	})
	return created, err
}
