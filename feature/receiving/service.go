package receiving

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"receiving-manager/core/reconcile"
	"receiving-manager/feature/receiving/source"

	"go.uber.org/zap"
)

// ErrSessionNotOpen is returned when a document has no open receiving session.
var ErrSessionNotOpen = errors.New("receiving session not open")

// LineView is a manifest line with its derived discrepancy and status.
type LineView struct {
	reconcile.Line
	Discrepancy int                  `json:"discrepancy"`
	Status      reconcile.LineStatus `json:"status"`
}

// Summary is the state of a receiving session.
type Summary struct {
	DocumentID  string           `json:"document_id"`
	OpenedAt    time.Time        `json:"opened_at"`
	Totals      reconcile.Totals `json:"totals"`
	CanFinalize bool             `json:"can_finalize"`
	Packs       []string         `json:"packs"`
	Lines       []LineView       `json:"lines"`
}

// FinalizeResult reports what a finalize request did.
type FinalizeResult struct {
	DocumentID string           `json:"document_id"`
	DryRun     bool             `json:"dry_run"`
	Executed   int              `json:"executed"`
	Finalizers []string         `json:"finalizers"`
	Totals     reconcile.Totals `json:"totals"`
}

type session struct {
	mu       sync.Mutex
	engine   *reconcile.Engine
	openedAt time.Time
}

// Service manages one reconciliation session per document.
type Service struct {
	sources source.Set
	opts    reconcile.Options
	logger  *zap.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService creates a new receiving service.
func NewService(sources source.Set, opts reconcile.Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sources:  sources,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

func normalizeDocument(documentID string) (string, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return "", &reconcile.ValidationError{Index: -1, Field: "document", Reason: "document id is required"}
	}
	return documentID, nil
}

func (s *Service) session(documentID string) (*session, error) {
	documentID, err := normalizeDocument(documentID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[documentID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotOpen, documentID)
	}
	return sess, nil
}

// isCurrent reports whether sess is still the open session of documentID.
func (s *Service) isCurrent(documentID string, sess *session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[documentID] == sess
}

// Open loads the document's manifest and starts a fresh session for it.
// Reopening an open document reloads it; a failed load leaves the existing session untouched.
func (s *Service) Open(ctx context.Context, documentID string) (Summary, error) {
	documentID, err := normalizeDocument(documentID)
	if err != nil {
		return Summary{}, err
	}

	raw, err := s.sources.Manifests.LoadLines(ctx, documentID)
	if err != nil {
		return Summary{}, err
	}
	manifest, err := reconcile.LoadManifest(documentID, raw)
	if err != nil {
		return Summary{}, err
	}

	s.mu.Lock()
	sess, ok := s.sessions[documentID]
	if !ok {
		sess = &session{engine: reconcile.NewEngine(s.opts)}
		s.sessions[documentID] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.engine.Load(manifest)
	sess.openedAt = s.now().UTC()

	s.logger.Info("Receiving session opened",
		zap.String("document", documentID),
		zap.Int("lines", manifest.Len()),
		zap.Bool("reloaded", ok),
	)
	return summarize(sess), nil
}

// Scan resolves a pack label and applies its contents to the document's session.
// Resolution happens outside the session lock; a cancelled context leaves the session unchanged.
func (s *Service) Scan(ctx context.Context, documentID, label string) (reconcile.Result, error) {
	sess, err := s.session(documentID)
	if err != nil {
		return reconcile.Result{}, err
	}
	documentID = strings.TrimSpace(documentID)

	normalized := reconcile.NormalizeLabel(label)
	if normalized == "" {
		return reconcile.Result{}, &reconcile.InvalidEventError{Label: label, Index: -1, Reason: "empty pack label"}
	}

	if !s.opts.AllowRescan {
		sess.mu.Lock()
		consumed := sess.engine.Consumed(normalized)
		sess.mu.Unlock()
		if consumed {
			return reconcile.Result{}, &reconcile.DuplicatePackError{Label: normalized}
		}
	}

	contents, err := s.sources.Packs.ResolvePack(ctx, normalized)
	if err != nil {
		return reconcile.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return reconcile.Result{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// The session may have been finalized or discarded while the pack resolved.
	if !s.isCurrent(documentID, sess) {
		return reconcile.Result{}, fmt.Errorf("%w: %s", ErrSessionNotOpen, documentID)
	}

	res, err := sess.engine.Apply(reconcile.ScanEvent{Label: normalized, Contents: contents})
	if err != nil {
		return reconcile.Result{}, err
	}

	// A label that matched nothing stays retryable, so held contents must not outlive it.
	if res.Outcome == reconcile.OutcomeNoMatch {
		if inv, ok := s.sources.Packs.(reconcile.Invalidator); ok {
			inv.Invalidate(normalized)
		}
	}

	totals := sess.engine.Totals()
	s.logger.Info("Pack scanned",
		zap.String("document", sess.engine.Manifest().DocumentID()),
		zap.String("label", res.Label),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("unmatched", res.Unmatched),
		zap.Int("discrepancy", totals.AggregateDiscrepancy),
	)
	return res, nil
}

// Summary returns the current state of the document's session.
func (s *Service) Summary(documentID string) (Summary, error) {
	sess, err := s.session(documentID)
	if err != nil {
		return Summary{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return summarize(sess), nil
}

// Reset zeroes every observed quantity and forgets consumed packs.
func (s *Service) Reset(documentID string) (Summary, error) {
	sess, err := s.session(documentID)
	if err != nil {
		return Summary{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.engine.Reset()

	s.logger.Info("Receiving session reset", zap.String("document", sess.engine.Manifest().DocumentID()))
	return summarize(sess), nil
}

// Finalize runs the configured finalizers once the document is reconciled.
// A dry run only checks the gate. A completed finalize closes the session.
func (s *Service) Finalize(ctx context.Context, documentID string, dryRun bool) (FinalizeResult, error) {
	sess, err := s.session(documentID)
	if err != nil {
		return FinalizeResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	executed, snap, err := reconcile.Finalize(ctx, sess.engine, s.sources.Finalizers, reconcile.FinalizeOptions{
		DryRun:    dryRun,
		Confirmed: true,
	})
	res := FinalizeResult{
		DocumentID: snap.DocumentID,
		DryRun:     dryRun,
		Executed:   executed,
		Totals:     snap.Totals,
	}
	for _, f := range s.sources.Finalizers {
		res.Finalizers = append(res.Finalizers, f.Name())
	}
	if err != nil {
		s.logger.Warn("Finalize rejected",
			zap.String("document", snap.DocumentID),
			zap.Int("executed", executed),
			zap.Error(err),
		)
		return res, err
	}

	if dryRun {
		s.logger.Info("Finalize dry run passed", zap.String("document", snap.DocumentID))
		return res, nil
	}

	s.mu.Lock()
	if s.sessions[snap.DocumentID] == sess {
		delete(s.sessions, snap.DocumentID)
	}
	s.mu.Unlock()

	s.logger.Info("Receiving session finalized",
		zap.String("document", snap.DocumentID),
		zap.Int("lines", snap.Totals.LineCount),
		zap.Int("packs", len(snap.Packs)),
		zap.Strings("finalizers", res.Finalizers),
	)
	return res, nil
}

// Discard drops the document's session without finalizing it.
func (s *Service) Discard(documentID string) error {
	documentID, err := normalizeDocument(documentID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[documentID]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotOpen, documentID)
	}
	delete(s.sessions, documentID)

	s.logger.Info("Receiving session discarded", zap.String("document", documentID))
	return nil
}

// Snapshot returns the document's current snapshot.
func (s *Service) Snapshot(documentID string) (reconcile.Snapshot, error) {
	sess, err := s.session(documentID)
	if err != nil {
		return reconcile.Snapshot{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.engine.Snapshot(), nil
}

// Report renders the document's current state as an XLSX workbook.
func (s *Service) Report(documentID string) ([]byte, error) {
	snap, err := s.Snapshot(documentID)
	if err != nil {
		return nil, err
	}
	return RenderReport(snap)
}

// Documents lists the documents with an open session.
func (s *Service) Documents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		out = append(out, id)
	}
	return out
}

// summarize must be called with sess.mu held.
func summarize(sess *session) Summary {
	snap := sess.engine.Snapshot()
	sum := Summary{
		DocumentID:  snap.DocumentID,
		OpenedAt:    sess.openedAt,
		Totals:      snap.Totals,
		CanFinalize: sess.engine.CanFinalize(),
		Packs:       snap.Packs,
		Lines:       make([]LineView, len(snap.Lines)),
	}
	for i, l := range snap.Lines {
		sum.Lines[i] = LineView{Line: l, Discrepancy: l.Discrepancy(), Status: l.Status()}
	}
	return sum
}
