package reconcile

// Options tunes engine policy.
type Options struct {
	// AllowRescan accepts a pack label that was already applied and credits it again.
	// When false a repeated label fails with *DuplicatePackError.
	AllowRescan bool

	// StrictFinalize additionally requires every line to be matched before CanFinalize
	// reports true, instead of only a zero aggregate discrepancy.
	StrictFinalize bool
}

// Engine reconciles scan events against one manifest at a time.
// It is not safe for concurrent use; callers serialize Load, Apply, Reset and reads.
type Engine struct {
	opts     Options
	manifest *Manifest
	order    []string
	consumed map[string]struct{}
	packs    []string
}

// NewEngine returns an engine with no manifest loaded.
func NewEngine(opts Options) *Engine {
	return &Engine{
		opts:     opts,
		consumed: make(map[string]struct{}),
	}
}

// Load binds the engine to m and resets all state: observed quantities return to zero,
// the working order becomes the manifest's natural order and the consumed labels are cleared.
func (e *Engine) Load(m *Manifest) {
	e.manifest = m
	e.Reset()
}

// Reset clears the loaded manifest's state exactly as Load does.
func (e *Engine) Reset() {
	e.consumed = make(map[string]struct{})
	e.packs = nil
	e.order = nil
	if e.manifest == nil {
		return
	}
	e.manifest.clearObserved()
	e.order = e.manifest.keys()
}

// Loaded reports whether a manifest is bound.
func (e *Engine) Loaded() bool {
	return e.manifest != nil
}

// Manifest returns the bound manifest, or nil.
func (e *Engine) Manifest() *Manifest {
	return e.manifest
}

// Apply reconciles one scan event.
//
// The event is validated in full before anything is mutated. Every tuple credits all
// lines with an equal match key, without capping at the expected quantity. When no
// tuple matches, the result reports OutcomeNoMatch, nothing is mutated and the label
// stays available for a later retry. Otherwise the label is consumed and the touched
// lines move to the front of the working order.
func (e *Engine) Apply(ev ScanEvent) (Result, error) {
	if e.manifest == nil {
		return Result{}, ErrNotLoaded
	}

	label := NormalizeLabel(ev.Label)
	if label == "" {
		return Result{}, &InvalidEventError{Label: ev.Label, Index: -1, Reason: "empty pack label"}
	}
	if len(ev.Contents) == 0 {
		return Result{}, &InvalidEventError{Label: label, Index: -1, Reason: "pack has no contents"}
	}
	for i, t := range ev.Contents {
		if t.Quantity <= 0 {
			return Result{}, &InvalidEventError{Label: label, Index: i, Reason: "quantity must be positive"}
		}
	}
	if _, seen := e.consumed[label]; seen && !e.opts.AllowRescan {
		return Result{}, &DuplicatePackError{Label: label}
	}

	res := Result{
		Label:           label,
		MatchedLineKeys: []string{},
		Deltas:          make([]TupleDelta, 0, len(ev.Contents)),
	}
	matches := make([][]int, len(ev.Contents))
	for i, t := range ev.Contents {
		positions := e.manifest.match(t.MatchKey())
		matches[i] = positions

		d := TupleDelta{
			Tuple:    t,
			LineKeys: make([]string, 0, len(positions)),
			Matched:  len(positions) > 0,
		}
		if d.Matched {
			d.Quantity = t.Quantity
			for _, p := range positions {
				d.LineKeys = append(d.LineKeys, e.manifest.lines[p].Key)
			}
		} else {
			res.Unmatched++
		}
		res.Deltas = append(res.Deltas, d)
	}

	switch {
	case res.Unmatched == len(ev.Contents):
		res.Outcome = OutcomeNoMatch
		return res, nil
	case res.Unmatched > 0:
		res.Outcome = OutcomePartiallyMatched
	default:
		res.Outcome = OutcomeFullyMatched
	}

	touched := make(map[string]struct{})
	for i, t := range ev.Contents {
		for _, p := range matches[i] {
			e.manifest.credit(p, t.Quantity)
			key := e.manifest.lines[p].Key
			if _, ok := touched[key]; !ok {
				touched[key] = struct{}{}
				res.MatchedLineKeys = append(res.MatchedLineKeys, key)
			}
		}
	}

	if _, seen := e.consumed[label]; !seen {
		e.consumed[label] = struct{}{}
		e.packs = append(e.packs, label)
	}
	e.order = promote(e.order, touched)

	return res, nil
}

// Consumed reports whether a pack label has been applied.
func (e *Engine) Consumed(label string) bool {
	_, ok := e.consumed[NormalizeLabel(label)]
	return ok
}

// Order returns a copy of the working order of line keys.
func (e *Engine) Order() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Lines returns the lines in working order.
func (e *Engine) Lines() []Line {
	if e.manifest == nil {
		return nil
	}
	out := make([]Line, 0, len(e.order))
	for _, key := range e.order {
		l, _ := e.manifest.Get(key)
		out = append(out, l)
	}
	return out
}

// Discrepancies returns every line that is short or over, in working order.
func (e *Engine) Discrepancies() []Line {
	var out []Line
	for _, l := range e.Lines() {
		if !l.Matched() {
			out = append(out, l)
		}
	}
	return out
}

// Totals aggregates the bound manifest. It is the zero value when nothing is loaded.
func (e *Engine) Totals() Totals {
	if e.manifest == nil {
		return Totals{}
	}
	return e.manifest.Totals()
}

// CanFinalize reports whether the manifest has lines and a zero aggregate discrepancy.
func (e *Engine) CanFinalize() bool {
	t := e.Totals()
	if t.LineCount == 0 || t.AggregateDiscrepancy != 0 {
		return false
	}
	if e.opts.StrictFinalize {
		return t.MatchedCount == t.LineCount
	}
	return true
}

// Snapshot captures the totals, the lines in working order and the consumed packs.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Totals: e.Totals(),
		Lines:  e.Lines(),
		Packs:  append([]string(nil), e.packs...),
	}
	if e.manifest != nil {
		s.DocumentID = e.manifest.DocumentID()
	}
	return s
}
