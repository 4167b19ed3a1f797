package cwa

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by a Store that holds nothing under a key.
var ErrCacheMiss = errors.New("cache miss")

// Store persists opaque cache payloads between runs.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// FileStore keeps zstd-compressed payloads under a directory. Expiry is left
// to the caller, which tracks fetch times inside the payload.
type FileStore struct {
	dir     string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &FileStore{dir: dir, encoder: enc, decoder: dec}, nil
}

func (s *FileStore) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.dir, safe+".json.zst")
}

// Load reads and decompresses a payload.
func (s *FileStore) Load(_ context.Context, key string) ([]byte, error) {
	compressed, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	data, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	return data, nil
}

// Save compresses a payload and writes it atomically.
func (s *FileStore) Save(_ context.Context, key string, data []byte, _ time.Duration) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	final := s.path(key)
	tmp, err := os.CreateTemp(s.dir, filepath.Base(final)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(s.encoder.EncodeAll(data, nil)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

// RedisStore shares cache payloads between processes through Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "surf:cache:"}
}

// NewRedisStoreFromURL connects using a redis:// URL.
func NewRedisStoreFromURL(rawURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return NewRedisStore(redis.NewClient(opts)), nil
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

// Load fetches a payload.
func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save stores a payload with a TTL.
func (s *RedisStore) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(key), data, ttl).Err()
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
