package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"NewsRanker/internal/domain"
)

// VerdictStore keeps oracle verdicts in BadgerDB with a per-entry TTL.
type VerdictStore struct {
	db     *badger.DB
	ttl    time.Duration
	logger *slog.Logger
}

type badgerLogger struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLogger)(nil)

func (bl *badgerLogger) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLogger) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLogger) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLogger) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenVerdictStore opens the cache directory, creating it when missing.
// An empty dir keeps the cache in memory.
func OpenVerdictStore(dir string, ttl time.Duration, log *slog.Logger) (*VerdictStore, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = &badgerLogger{logger: log}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open verdict cache: %w", err)
	}

	return &VerdictStore{db: db, ttl: ttl, logger: log}, nil
}

// Close flushes and closes the database.
func (s *VerdictStore) Close() error {
	return s.db.Close()
}

// Get returns the cached verdict for key. ok is false on a miss.
func (s *VerdictStore) Get(key []byte) (domain.Verdict, bool, error) {
	var verdict domain.Verdict
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			v, err := decodeVerdict(val)
			verdict = v
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Verdict{}, false, nil
	}
	if err != nil {
		return domain.Verdict{}, false, err
	}
	return verdict, true, nil
}

// Put stores verdict under key, expiring after the store TTL when one is set.
func (s *VerdictStore) Put(key []byte, verdict domain.Verdict) error {
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, encodeVerdict(verdict))
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// verdicts are stored as the matched index, or -1 for a new story.
func encodeVerdict(v domain.Verdict) []byte {
	if !v.Matched {
		return []byte("-1")
	}
	return []byte(strconv.Itoa(v.Index))
}

func decodeVerdict(raw []byte) (domain.Verdict, error) {
	idx, err := strconv.Atoi(string(raw))
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("corrupt cached verdict %q: %w", raw, err)
	}
	if idx < 0 {
		return domain.NoMatch(), nil
	}
	return domain.MatchAt(idx), nil
}
