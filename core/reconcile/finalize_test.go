package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockFinalizer is a testify mock of Finalizer.
type mockFinalizer struct {
	mock.Mock
	name string
}

func (m *mockFinalizer) Name() string {
	return m.name
}

func (m *mockFinalizer) Finalize(ctx context.Context, snap Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func reconciledEngine(t *testing.T) *Engine {
	t.Helper()
	e := loadEngine(t, Options{}, line("L1", "B1", "M", 2))
	_, err := e.Apply(scan("PK-1", tuple("B1", "M", 2)))
	require.NoError(t, err)
	return e
}

func TestFinalize_RunsFinalizersInOrder(t *testing.T) {
	e := reconciledEngine(t)
	var calls []string

	db := &mockFinalizer{name: "database"}
	db.On("Finalize", mock.Anything, mock.AnythingOfType("reconcile.Snapshot")).
		Run(func(args mock.Arguments) { calls = append(calls, "database") }).
		Return(nil)
	archive := &mockFinalizer{name: "archive"}
	archive.On("Finalize", mock.Anything, mock.AnythingOfType("reconcile.Snapshot")).
		Run(func(args mock.Arguments) { calls = append(calls, "archive") }).
		Return(nil)

	executed, snap, err := Finalize(context.Background(), e, []Finalizer{db, archive}, FinalizeOptions{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 2, executed)
	assert.Equal(t, []string{"database", "archive"}, calls)
	assert.Equal(t, "DOC", snap.DocumentID)
	assert.Equal(t, []string{"PK-1"}, snap.Packs)

	db.AssertExpectations(t)
	archive.AssertExpectations(t)
}

func TestFinalize_Gate(t *testing.T) {
	tests := []struct {
		name string
		opts FinalizeOptions
	}{
		{"Dry run", FinalizeOptions{DryRun: true, Confirmed: true}},
		{"Not confirmed", FinalizeOptions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := reconciledEngine(t)
			f := &mockFinalizer{name: "database"}

			executed, snap, err := Finalize(context.Background(), e, []Finalizer{f}, tt.opts)
			require.NoError(t, err)
			assert.Zero(t, executed)
			assert.Equal(t, 2, snap.Totals.TotalObserved)
			f.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything)
		})
	}
}

func TestFinalize_NotFinalizable(t *testing.T) {
	e := loadEngine(t, Options{}, line("L1", "B1", "M", 2))
	f := &mockFinalizer{name: "database"}

	executed, _, err := Finalize(context.Background(), e, []Finalizer{f}, FinalizeOptions{Confirmed: true})
	assert.ErrorIs(t, err, ErrNotFinalizable)
	assert.Zero(t, executed)
	f.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything)

	_, _, err = Finalize(context.Background(), NewEngine(Options{}), nil, FinalizeOptions{Confirmed: true})
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestFinalize_StopsOnError(t *testing.T) {
	e := reconciledEngine(t)

	failing := &mockFinalizer{name: "database"}
	failing.On("Finalize", mock.Anything, mock.Anything).Return(errors.New("deadlock"))
	next := &mockFinalizer{name: "archive"}

	executed, _, err := Finalize(context.Background(), e, []Finalizer{failing, next}, FinalizeOptions{Confirmed: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "finalizer database failed")
	assert.Contains(t, err.Error(), "deadlock")
	assert.Zero(t, executed)
	next.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything)
}

func TestFinalize_CancelledContext(t *testing.T) {
	e := reconciledEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &mockFinalizer{name: "database"}
	_, _, err := Finalize(ctx, e, []Finalizer{f}, FinalizeOptions{Confirmed: true})
	assert.ErrorIs(t, err, context.Canceled)
	f.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything)
}

func TestConfig_Options(t *testing.T) {
	cfg := Config{AllowRescan: true, ResolverCacheTTLSeconds: 60}
	assert.Equal(t, Options{AllowRescan: true}, cfg.Options())
	assert.Equal(t, "1m0s", cfg.ResolverCacheTTL().String())
	assert.Zero(t, Config{}.ResolverCacheTTL())
}
