package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openeats/dinesync/internal/core/domain"
	"github.com/openeats/dinesync/internal/core/ports/driven"
	"github.com/openeats/dinesync/internal/core/ports/driving"
	"github.com/openeats/dinesync/internal/logger"
)

// Ensure SyncRunner implements the interface.
var _ driving.SyncRunner = (*SyncRunner)(nil)

// SyncRunner drives one reconciliation run: snapshot the directory, fetch
// and deduplicate provider listings, then create, update or skip each one
// in paced batches. Per-record failures are isolated; only setup failures
// abort the run.
type SyncRunner struct {
	provider  driven.PlaceProvider
	directory driven.DirectoryStore
	sink      driven.SyncLogSink
	history   driven.RunHistoryStore
	pacer     driven.Pacer
	settings  domain.SyncSettings

	// Status tracking
	mu      sync.RWMutex
	running bool
	status  driving.SyncStatus
}

// NewSyncRunner creates a runner. sink and history are optional; a nil
// pacer gets a DelayPacer built from the settings' delays.
func NewSyncRunner(
	provider driven.PlaceProvider,
	directory driven.DirectoryStore,
	sink driven.SyncLogSink,
	history driven.RunHistoryStore,
	pacer driven.Pacer,
	settings domain.SyncSettings,
) *SyncRunner {
	if pacer == nil {
		pacer = NewDelayPacer(settings.ItemDelay, settings.BatchDelay)
	}
	return &SyncRunner{
		provider:  provider,
		directory: directory,
		sink:      sink,
		history:   history,
		pacer:     pacer,
		settings:  settings,
		status:    driving.SyncStatus{Phase: domain.PhaseNotStarted},
	}
}

// Run executes a full reconciliation and returns its summary. A fatal
// setup failure (snapshot fetch, initial provider query) returns an error
// and no summary.
func (r *SyncRunner) Run(ctx context.Context) (*domain.SyncSummary, error) {
	if err := r.begin(); err != nil {
		return nil, err
	}
	defer r.end()

	if err := r.settings.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	summary, err := r.run(ctx)
	run := domain.SyncRun{
		ID:        uuid.NewString(),
		StartedAt: started,
		EndedAt:   time.Now(),
		Success:   err == nil,
	}
	run.DurationSeconds = run.EndedAt.Sub(run.StartedAt).Seconds()
	if err != nil {
		run.Error = err.Error()
	}
	if summary != nil {
		run.Results = *summary
	}
	r.record(ctx, run)

	if err != nil {
		logger.Error("Sync aborted after %.1fs: %v", run.DurationSeconds, err)
		return nil, err
	}

	logger.Error("Sync complete in %.1fs: created=%d updated=%d unchanged=%d errors=%d",
		run.DurationSeconds, summary.Created, summary.Updated, summary.Unchanged, summary.Errors)
	return summary, nil
}

func (r *SyncRunner) run(ctx context.Context) (*domain.SyncSummary, error) {
	var summary domain.SyncSummary

	// 1. Full existing-directory snapshot, fetched once.
	r.setPhase(domain.PhaseFetchingExisting)
	existing, err := r.directory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}
	logger.Info("Loaded %d existing directory records", len(existing))

	// 2. Provider listings across the unfiltered and per-cuisine queries.
	r.setPhase(domain.PhaseFetchingIncoming)
	incoming, queryErrors, err := r.fetchIncoming(ctx)
	if err != nil {
		return nil, err
	}
	summary.Errors += queryErrors
	logger.Info("Collected %d unique incoming listings (%d query errors)",
		len(incoming), queryErrors)

	// 3. Reconcile in bounded batches.
	batches := partition(incoming, r.settings.BatchSize)
	for bi, batch := range batches {
		r.setReconciling(bi+1, len(batches))
		logger.Debug("Batch %d/%d (%d records)", bi+1, len(batches), len(batch))

		for _, candidate := range batch {
			if err := r.pacer.WaitItem(ctx); err != nil {
				return nil, err
			}
			r.reconcileOne(ctx, candidate, existing, &summary)
		}

		if bi < len(batches)-1 {
			if err := r.pacer.WaitBatch(ctx); err != nil {
				return nil, err
			}
		}
	}

	r.setPhase(domain.PhaseCompleted)
	return &summary, nil
}

// fetchIncoming runs the unfiltered query plus one query per configured
// cuisine keyword and merges the adapted results into a set of unique
// restaurants. The unfiltered query failing is fatal; a per-cuisine failure
// only skips that category, since partial coverage beats aborting.
func (r *SyncRunner) fetchIncoming(ctx context.Context) ([]domain.Restaurant, int, error) {
	queries := make([]string, 0, len(r.settings.Cuisines)+1)
	queries = append(queries, "restaurants")
	for _, cuisine := range r.settings.Cuisines {
		queries = append(queries, cuisine+" restaurants")
	}

	var (
		collected   []domain.Restaurant
		queryErrors int
	)
	seen := make(map[string]bool)

	for qi, text := range queries {
		if qi > 0 {
			if err := r.pacer.WaitItem(ctx); err != nil {
				return nil, 0, err
			}
		}

		listings, err := r.provider.TextSearch(ctx, driven.PlaceQuery{
			Text:         text,
			Center:       r.settings.Reference,
			RadiusMeters: r.settings.RadiusMeters,
			MaxResults:   r.settings.MaxResults,
		})
		if err != nil {
			if qi == 0 {
				return nil, 0, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
			}
			logger.Warn("Query %q failed, skipping category: %v", text, err)
			queryErrors++
			continue
		}
		logger.Debug("Query %q returned %d listings", text, len(listings))

		for _, raw := range listings {
			candidate := Adapt(raw, r.settings.Reference, r.settings.Municipality)
			if r.isDuplicate(candidate, seen, collected) {
				continue
			}
			if candidate.ExternalID != "" {
				seen[candidate.ExternalID] = true
			}
			collected = append(collected, candidate)
		}
	}

	return collected, queryErrors, nil
}

// isDuplicate reports whether candidate was already collected this run:
// by external id when it has one, otherwise by the resolver's similarity
// thresholds against the records gathered so far.
func (r *SyncRunner) isDuplicate(candidate domain.Restaurant, seen map[string]bool, collected []domain.Restaurant) bool {
	if candidate.ExternalID != "" {
		return seen[candidate.ExternalID]
	}
	for i := range collected {
		nameSim := editSimilarity(candidate.Name, collected[i].Name)
		addrSim := editSimilarity(candidate.Address, collected[i].Address)
		if nameSim > nameSimilarityThreshold && addrSim > addressSimilarityThreshold {
			return true
		}
	}
	return false
}

// reconcileOne resolves one candidate and issues at most one store call.
// Any failure is absorbed into the summary's error count so the batch and
// the run continue.
func (r *SyncRunner) reconcileOne(
	ctx context.Context,
	candidate domain.Restaurant,
	existing []domain.DirectoryRecord,
	summary *domain.SyncSummary,
) {
	match := Resolve(candidate, existing)

	switch {
	case !match.Matched:
		if err := r.directory.Create(ctx, candidate); err != nil {
			logger.Warn("Create failed for %q: %v", candidate.Name, err)
			summary.Errors++
			r.noteError()
			return
		}
		logger.Debug("Created %q", candidate.Name)
		summary.Created++

	case SignificantChange(match.Record, candidate):
		if err := r.directory.Update(ctx, match.Record.ID, candidate); err != nil {
			logger.Warn("Update failed for %q: %v", candidate.Name, err)
			summary.Errors++
			r.noteError()
			return
		}
		logger.Debug("Updated %q", candidate.Name)
		summary.Updated++

	default:
		summary.Unchanged++
	}

	r.noteProcessed()
}

// record writes the run to the log sink and the history store. Neither is
// allowed to fail the run; problems are only warned.
func (r *SyncRunner) record(ctx context.Context, run domain.SyncRun) {
	if r.sink != nil {
		if err := r.sink.Record(ctx, run); err != nil {
			logger.Warn("Failed to write sync log: %v", err)
		}
	}
	if r.history != nil {
		if err := r.history.Record(ctx, run); err != nil {
			logger.Warn("Failed to record run history: %v", err)
		} else if err := r.history.Prune(ctx, r.settings.HistoryKeep); err != nil {
			logger.Warn("Failed to prune run history: %v", err)
		}
	}
}

// Status returns a copy of the runner's progress.
func (r *SyncRunner) Status() driving.SyncStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// begin marks the runner busy; a second overlapping Run is refused. This
// guards a single process only. Callers must still ensure single-flight
// scheduling across processes.
func (r *SyncRunner) begin() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return domain.ErrSyncInProgress
	}
	r.running = true
	r.status = driving.SyncStatus{Phase: domain.PhaseNotStarted}
	return nil
}

func (r *SyncRunner) end() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
}

func (r *SyncRunner) setPhase(phase domain.SyncPhase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.Phase = phase
	r.status.Batch = 0
	r.status.BatchCount = 0
}

func (r *SyncRunner) setReconciling(batch, batchCount int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.Phase = domain.PhaseReconciling
	r.status.Batch = batch
	r.status.BatchCount = batchCount
}

func (r *SyncRunner) noteProcessed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.Processed++
}

func (r *SyncRunner) noteError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.Processed++
	r.status.Errors++
}

// partition splits records into slices of at most size records each.
func partition(records []domain.Restaurant, size int) [][]domain.Restaurant {
	if size <= 0 || len(records) == 0 {
		return nil
	}
	batches := make([][]domain.Restaurant, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, records[start:end])
	}
	return batches
}
