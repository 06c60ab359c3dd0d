package reconcile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names so errors read the same as the source payloads.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Manifest is the ordered collection of lines for one document.
// Lines are mutated only through an Engine.
type Manifest struct {
	documentID string
	lines      []Line
	index      map[string]int
	byKey      map[MatchKey][]int
}

// LoadManifest validates raw lines and builds a manifest with every observed quantity at zero.
// It fails with *ValidationError when a line has no code, no expected quantity,
// a negative expected quantity, or an explicit key that collides with another line.
// Lines without a key get code/size[/group], suffixed with #<index> when that is already taken.
func LoadManifest(documentID string, raw []RawLine) (*Manifest, error) {
	m := &Manifest{
		documentID: strings.TrimSpace(documentID),
		lines:      make([]Line, 0, len(raw)),
		index:      make(map[string]int, len(raw)),
		byKey:      make(map[MatchKey][]int, len(raw)),
	}

	for i, r := range raw {
		if err := validate.Struct(r); err != nil {
			return nil, toValidationError(i, err)
		}

		mk := NewMatchKey(r.Code, r.Size, r.Group)
		if mk.Code == "" {
			return nil, &ValidationError{Index: i, Field: "code", Reason: "is blank"}
		}

		key := strings.TrimSpace(r.Key)
		if key == "" {
			key = mk.String()
			// Repeated item-size lines without keys are told apart by position.
			if _, taken := m.index[key]; taken {
				key = fmt.Sprintf("%s#%d", key, i)
			}
		}
		if _, dup := m.index[key]; dup {
			return nil, &ValidationError{Index: i, Field: "key", Reason: "duplicates " + key}
		}

		m.index[key] = len(m.lines)
		m.byKey[mk] = append(m.byKey[mk], len(m.lines))
		m.lines = append(m.lines, Line{
			Key:      key,
			Code:     mk.Code,
			Name:     strings.TrimSpace(r.Name),
			Size:     mk.Size,
			Group:    mk.Group,
			Expected: *r.Expected,
		})
	}

	return m, nil
}

func toValidationError(index int, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Index: index, Reason: err.Error()}
	}

	fe := fieldErrs[0]
	reason := "failed " + fe.Tag()
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "min":
		reason = "must not be negative"
	}
	return &ValidationError{Index: index, Field: fe.Field(), Reason: reason}
}

// DocumentID returns the document the manifest was loaded for.
func (m *Manifest) DocumentID() string {
	return m.documentID
}

// Len returns the number of lines.
func (m *Manifest) Len() int {
	return len(m.lines)
}

// Get returns a copy of the line with the given key.
func (m *Manifest) Get(key string) (Line, bool) {
	i, ok := m.index[key]
	if !ok {
		return Line{}, false
	}
	return m.lines[i], true
}

// Lines returns a copy of every line in canonical (load) order.
func (m *Manifest) Lines() []Line {
	out := make([]Line, len(m.lines))
	copy(out, m.lines)
	return out
}

// Totals aggregates the current line states.
func (m *Manifest) Totals() Totals {
	t := Totals{LineCount: len(m.lines)}
	for _, l := range m.lines {
		t.TotalExpected += l.Expected
		t.TotalObserved += l.Observed
		if l.Matched() {
			t.MatchedCount++
		}
	}
	t.AggregateDiscrepancy = t.TotalExpected - t.TotalObserved
	return t
}

// match returns the positions of every line with the given key.
func (m *Manifest) match(k MatchKey) []int {
	return m.byKey[k]
}

func (m *Manifest) credit(pos, qty int) {
	m.lines[pos].Observed += qty
}

func (m *Manifest) keys() []string {
	keys := make([]string, len(m.lines))
	for i, l := range m.lines {
		keys[i] = l.Key
	}
	return keys
}

func (m *Manifest) clearObserved() {
	for i := range m.lines {
		m.lines[i].Observed = 0
	}
}
