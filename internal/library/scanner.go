// Package library scans a music directory for dance tracks. The dance name
// of a track is read from its genre tag.
package library

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/dancefloor/internal/dancetree"
	"github.com/llehouerou/dancefloor/internal/player"
	"github.com/llehouerou/dancefloor/internal/state"
)

const numWorkers = 8

// Cache stores scan results between runs. state.Manager implements it.
type Cache interface {
	LibraryCache() (map[string]state.CachedTrack, error)
	ReplaceLibraryCache(ctx context.Context, tracks []state.CachedTrack) error
}

// TagReader extracts a track's metadata, without its duration.
type TagReader func(path string) (dancetree.TrackRef, error)

// DurationReader returns the playing time of a file.
type DurationReader func(path string) (time.Duration, error)

// ScanProgress reports the progress of a library scan.
type ScanProgress struct {
	Phase       string // "scanning", "processing", "done"
	Current     int
	Total       int
	CurrentFile string
}

// ScanStats holds statistics for a completed scan.
type ScanStats struct {
	Found   int // music files on disk
	Cached  int // unchanged files taken from the cache
	Read    int // files whose tags were read
	Skipped int // files without a dance or that could not be decoded
	Removed int // cached files no longer on disk
}

// ScanResult is the outcome of a scan.
type ScanResult struct {
	Tracks []dancetree.TrackRef
	Stats  ScanStats
}

// Scanner walks a directory and reads track metadata with a worker pool.
type Scanner struct {
	cache        Cache
	readTags     TagReader
	readDuration DurationReader
	workers      int
	logger       zerolog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithCache skips files whose modification time matches the cache.
func WithCache(c Cache) Option {
	return func(s *Scanner) { s.cache = c }
}

// WithTagReader replaces the tag reader.
func WithTagReader(r TagReader) Option {
	return func(s *Scanner) { s.readTags = r }
}

// WithDurationReader replaces the duration reader.
func WithDurationReader(r DurationReader) Option {
	return func(s *Scanner) { s.readDuration = r }
}

// WithWorkers sets the number of parallel readers.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// New creates a scanner reading tags with dhowden/tag and durations with
// the player's decoders.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		readTags:     ReadTags,
		readDuration: player.ReadDuration,
		workers:      numWorkers,
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan reads every music file under root. Progress, when non-nil, receives
// updates and is closed on return. A cancelled context aborts the scan
// without touching the cache.
func (s *Scanner) Scan(ctx context.Context, root string, progress chan<- ScanProgress) (*ScanResult, error) {
	if progress != nil {
		defer close(progress)
	}
	report := func(p ScanProgress) {
		if progress == nil {
			return
		}
		select {
		case progress <- p:
		case <-ctx.Done():
		}
	}

	// Phase 1: discover files
	report(ScanProgress{Phase: "scanning"})
	files, err := discoverFiles(ctx, root, report)
	if err != nil {
		return nil, err
	}

	// Phase 2: split unchanged files from those that need reading
	cached := map[string]state.CachedTrack{}
	if s.cache != nil {
		c, err := s.cache.LibraryCache()
		if err != nil {
			s.logger.Warn().Err(err).Msg("library cache unavailable, reading every file")
		} else {
			cached = c
		}
	}

	res := &ScanResult{Stats: ScanStats{Found: len(files)}}
	entries := make([]state.CachedTrack, 0, len(files))
	toRead := make([]fileInfo, 0, len(files))
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		seen[f.path] = struct{}{}
		if c, ok := cached[f.path]; ok && c.MTime == f.mtime {
			entries = append(entries, c)
			res.Stats.Cached++
			continue
		}
		toRead = append(toRead, f)
	}
	for path := range cached {
		if _, ok := seen[path]; !ok {
			res.Stats.Removed++
		}
	}

	// Phase 3: read new and modified files in parallel
	read, skipped := s.processFiles(ctx, toRead, report)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries = append(entries, read...)
	res.Stats.Read = len(read)
	res.Stats.Skipped = skipped

	// Phase 4: persist and return
	if s.cache != nil {
		if err := s.cache.ReplaceLibraryCache(ctx, entries); err != nil {
			s.logger.Warn().Err(err).Msg("failed to update library cache")
		}
	}

	sortEntries(entries)
	res.Tracks = make([]dancetree.TrackRef, len(entries))
	for i, e := range entries {
		res.Tracks[i] = e.Track
	}

	s.logger.Info().
		Str("root", root).
		Int("found", res.Stats.Found).
		Int("cached", res.Stats.Cached).
		Int("read", res.Stats.Read).
		Int("skipped", res.Stats.Skipped).
		Int("removed", res.Stats.Removed).
		Msg("library scan complete")

	report(ScanProgress{Phase: "done", Current: len(files), Total: len(files)})
	return res, nil
}
