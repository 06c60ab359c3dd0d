package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func strp(v string) *string { return &v }

func TestLoadManifest_Validation(t *testing.T) {
	tests := []struct {
		name      string
		raw       []RawLine
		wantIndex int
		wantField string
	}{
		{
			name:      "Missing expected quantity",
			raw:       []RawLine{{Key: "L1", Code: "B1", Size: "M"}},
			wantIndex: 0,
			wantField: "expected",
		},
		{
			name: "Negative expected quantity",
			raw: []RawLine{
				{Key: "L1", Code: "B1", Size: "M", Expected: intp(1)},
				{Key: "L2", Code: "B2", Size: "M", Expected: intp(-1)},
			},
			wantIndex: 1,
			wantField: "expected",
		},
		{
			name:      "Missing code",
			raw:       []RawLine{{Key: "L1", Size: "M", Expected: intp(1)}},
			wantIndex: 0,
			wantField: "code",
		},
		{
			name:      "Blank code",
			raw:       []RawLine{{Key: "L1", Code: "   ", Size: "M", Expected: intp(1)}},
			wantIndex: 0,
			wantField: "code",
		},
		{
			name: "Duplicate explicit key",
			raw: []RawLine{
				{Key: "L1", Code: "B1", Size: "M", Expected: intp(1)},
				{Key: "L1", Code: "B2", Size: "S", Expected: intp(1)},
			},
			wantIndex: 1,
			wantField: "key",
		},
		{
			name: "Explicit key taken by a derived one",
			raw: []RawLine{
				{Code: "B1", Size: "M", Expected: intp(1)},
				{Key: "B1/M", Code: "B2", Size: "S", Expected: intp(1)},
			},
			wantIndex: 1,
			wantField: "key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := LoadManifest("DOC", tt.raw)
			assert.Nil(t, m)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantIndex, verr.Index)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestLoadManifest_Lines(t *testing.T) {
	m, err := LoadManifest(" PO-1 ", []RawLine{
		{Key: "L1", Code: " B1 ", Name: "Tee", Size: "M", Expected: intp(5)},
		{Code: "B2", Name: "Cap", Size: "S", Group: strp("BOX-A"), Expected: intp(0)},
		{Code: "B3", Size: "L", Group: strp(""), Expected: intp(2)},
	})
	require.NoError(t, err)

	assert.Equal(t, "PO-1", m.DocumentID())
	assert.Equal(t, 3, m.Len())

	lines := m.Lines()
	assert.Equal(t, "L1", lines[0].Key)
	assert.Equal(t, "B1", lines[0].Code)
	assert.Equal(t, "B2/S/BOX-A", lines[1].Key)
	assert.Equal(t, "B3/L", lines[2].Key)

	for _, l := range lines {
		assert.Zero(t, l.Observed)
	}

	l, ok := m.Get("B2/S/BOX-A")
	assert.True(t, ok)
	assert.Equal(t, "BOX-A", l.Group)
	assert.True(t, l.Matched())

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestLoadManifest_RepeatedItemWithoutKeys(t *testing.T) {
	m, err := LoadManifest("DOC", []RawLine{
		{Code: "B1", Size: "M", Expected: intp(5)},
		{Code: "B1", Size: "M", Expected: intp(3)},
		{Code: "B2", Size: "S", Expected: intp(1)},
	})
	require.NoError(t, err)

	lines := m.Lines()
	assert.Equal(t, "B1/M", lines[0].Key)
	assert.Equal(t, "B1/M#1", lines[1].Key)
	assert.Equal(t, "B2/S", lines[2].Key)
	assert.Equal(t, 9, m.Totals().TotalExpected)

	// Both lines share the item key, so one scan credits each of them.
	e := NewEngine(Options{})
	e.Load(m)
	res, err := e.Apply(ScanEvent{Label: "PK-1", Contents: []Tuple{{Code: "B1", Size: "M", Quantity: 2}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"B1/M", "B1/M#1"}, res.MatchedLineKeys)
}

func TestManifest_LinesReturnsCopy(t *testing.T) {
	m, err := LoadManifest("DOC", []RawLine{{Key: "L1", Code: "B1", Size: "M", Expected: intp(5)}})
	require.NoError(t, err)

	lines := m.Lines()
	lines[0].Observed = 99

	l, _ := m.Get("L1")
	assert.Zero(t, l.Observed)
}

func TestManifest_Totals(t *testing.T) {
	m, err := LoadManifest("DOC", []RawLine{
		{Key: "L1", Code: "B1", Size: "M", Expected: intp(5)},
		{Key: "L2", Code: "B2", Size: "M", Expected: intp(3)},
		{Key: "L3", Code: "B3", Size: "M", Expected: intp(0)},
	})
	require.NoError(t, err)

	m.credit(0, 5)
	m.credit(1, 4)

	assert.Equal(t, Totals{
		LineCount:            3,
		TotalExpected:        8,
		TotalObserved:        9,
		MatchedCount:         2,
		AggregateDiscrepancy: -1,
	}, m.Totals())
}

func TestLine_Status(t *testing.T) {
	assert.Equal(t, StatusShort, Line{Expected: 3, Observed: 1}.Status())
	assert.Equal(t, StatusOver, Line{Expected: 3, Observed: 4}.Status())
	assert.Equal(t, StatusMatched, Line{Expected: 3, Observed: 3}.Status())
	assert.Equal(t, -1, Line{Expected: 3, Observed: 4}.Discrepancy())
}

func TestMatchKey(t *testing.T) {
	assert.Equal(t, NewMatchKey("B1", "M", nil), NewMatchKey(" B1", "M ", strp("")))
	assert.NotEqual(t, NewMatchKey("B1", "M", nil), NewMatchKey("B1", "M", strp("G1")))

	assert.True(t, MatchKey{Code: "A"}.Less(MatchKey{Code: "B"}))
	assert.True(t, MatchKey{Code: "A", Size: "L"}.Less(MatchKey{Code: "A", Size: "M"}))
	assert.True(t, MatchKey{Code: "A", Size: "M"}.Less(MatchKey{Code: "A", Size: "M", Group: "G"}))
	assert.False(t, MatchKey{Code: "A"}.Less(MatchKey{Code: "A"}))

	assert.Equal(t, "B1/M", MatchKey{Code: "B1", Size: "M"}.String())
	assert.Equal(t, "B1/M/G", MatchKey{Code: "B1", Size: "M", Group: "G"}.String())
}
