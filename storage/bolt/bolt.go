// Package bolt is a storage.Storage backed by a bbolt database.
//
// Each input gets a bucket, and each scan of that input is a JSON
// value keyed by the bucket's sequence.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"time"

	"github.com/Comcast/spamscan/storage"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// ErrNotOpen is returned by Storage methods that need the database
// before Open or after Close.
var ErrNotOpen = errors.New("storage not open")

// Storage is a storage.Storage in a bbolt file.
type Storage struct {
	filename string
	db       *bbolt.DB
	logger   *zap.Logger
}

// NewStorage makes a Storage for the given file.  A nil logger logs
// nothing.
func NewStorage(filename string, logger *zap.Logger) (*Storage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Storage{
		filename: filename,
		logger:   logger.With(zap.String("db", filename)),
	}, nil
}

func (s *Storage) Open(ctx context.Context) error {
	opts := &bbolt.Options{
		Timeout: time.Second,
	}

	db, err := bbolt.Open(s.filename, 0644, opts)
	if err != nil {
		return err
	}
	s.db = db
	s.logger.Debug("opened")
	return nil
}

func (s *Storage) Close(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func key(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

func (s *Storage) WriteScan(ctx context.Context, sr *storage.ScanRecord) error {
	if s.db == nil {
		return ErrNotOpen
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(sr.Input))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		sr.Seq = seq
		js, err := json.Marshal(sr)
		if err != nil {
			return err
		}
		s.logger.Debug("WriteScan", zap.String("input", sr.Input), zap.Uint64("seq", seq))
		return b.Put(key(seq), js)
	})
}

func (s *Storage) GetScans(ctx context.Context, input string) ([]*storage.ScanRecord, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	srs := make([]*storage.ScanRecord, 0, 32)
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(input))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, bs := c.First(); k != nil; k, bs = c.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var sr storage.ScanRecord
			if err := json.Unmarshal(bs, &sr); err != nil {
				return err
			}
			srs = append(srs, &sr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("GetScans", zap.String("input", input), zap.Int("found", len(srs)))

	if len(srs) == 0 {
		return nil, nil
	}

	return srs, nil
}

func (s *Storage) RemScans(ctx context.Context, input string) error {
	if s.db == nil {
		return ErrNotOpen
	}
	s.logger.Debug("RemScans", zap.String("input", input))
	return s.db.Update(func(tx *bbolt.Tx) error {
		err := tx.DeleteBucket([]byte(input))
		if errors.Is(err, bbolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}
