package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromote(t *testing.T) {
	tests := []struct {
		name    string
		order   []string
		touched []string
		want    []string
	}{
		{"Nothing touched", []string{"a", "b", "c"}, nil, []string{"a", "b", "c"}},
		{"Last to front", []string{"a", "b", "c"}, []string{"c"}, []string{"c", "a", "b"}},
		{"Keeps touched order", []string{"a", "b", "c", "d"}, []string{"d", "b"}, []string{"b", "d", "a", "c"}},
		{"All touched", []string{"a", "b"}, []string{"b", "a"}, []string{"a", "b"}},
		{"Empty", []string{}, []string{"a"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := make(map[string]struct{})
			for _, k := range tt.touched {
				set[k] = struct{}{}
			}
			assert.Equal(t, tt.want, promote(tt.order, set))
		})
	}
}
