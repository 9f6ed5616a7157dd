package library

import (
	"context"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/llehouerou/dancefloor/internal/state"
)

// processFiles reads files in parallel. Files without a dance or that
// cannot be decoded are counted as skipped.
func (s *Scanner) processFiles(ctx context.Context, files []fileInfo, report func(ScanProgress)) ([]state.CachedTrack, int) {
	total := len(files)
	if total == 0 {
		return nil, 0
	}
	var processed, skipped atomic.Int64

	workCh := make(chan fileInfo)
	resultCh := make(chan state.CachedTrack, s.workers)

	var wg sync.WaitGroup
	for range s.workers {
		wg.Go(func() {
			for f := range workCh {
				entry, ok := s.readFile(f)
				processed.Add(1)
				if !ok {
					skipped.Add(1)
					continue
				}
				resultCh <- entry
			}
		})
	}

	// Send work to workers
	go func() {
		defer close(workCh)
		for _, f := range files {
			select {
			case workCh <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Progress reporter
	done := make(chan struct{})
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				report(ScanProgress{Phase: "processing", Current: int(processed.Load()), Total: total})
			case <-done:
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]state.CachedTrack, 0, total)
	for r := range resultCh {
		results = append(results, r)
	}
	close(done)
	<-reporterDone

	report(ScanProgress{Phase: "processing", Current: total, Total: total})
	return results, int(skipped.Load())
}

func (s *Scanner) readFile(f fileInfo) (state.CachedTrack, bool) {
	t, err := s.readTags(f.path)
	if err != nil {
		s.logger.Debug().Err(err).Str("path", f.path).Msg("unreadable tags")
		return state.CachedTrack{}, false
	}
	if strings.TrimSpace(t.Dance) == "" {
		s.logger.Debug().Str("path", f.path).Msg("no dance in genre tag")
		return state.CachedTrack{}, false
	}
	d, err := s.readDuration(f.path)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", f.path).Msg("cannot decode track")
		return state.CachedTrack{}, false
	}
	t.Path = f.path
	t.Duration = d
	return state.CachedTrack{Track: t, MTime: f.mtime}, true
}

// sortEntries orders tracks by path so scans are reproducible.
func sortEntries(entries []state.CachedTrack) {
	slices.SortFunc(entries, func(a, b state.CachedTrack) int {
		return strings.Compare(a.Track.Path, b.Track.Path)
	})
}
