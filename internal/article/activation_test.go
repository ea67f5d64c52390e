package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestActivation_Validate(t *testing.T) {
	tests := []struct {
		name     string
		x, y, z  *float64
		expected bool
	}{
		{"valid", f(-45), f(12), f(-12), true},
		{"two zeros invalid", f(0), f(0), f(17), false},
		{"one zero ok", f(0), f(12), f(17), true},
		{"out of range", f(101), f(0), f(0), false},
		{"missing x", nil, f(1), f(2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewActivation()
			a.X, a.Y, a.Z = tt.x, tt.y, tt.z
			assert.Equal(t, tt.expected, a.Validate())
		})
	}
}

func TestActivation_SetCoords_OverridesPriorAssignment(t *testing.T) {
	a := NewActivation()
	a.X, a.Y, a.Z = f(1), f(2), f(3)
	a.SetCoords(-45, 12, -12)
	assert.Equal(t, -45.0, *a.X)
	assert.Equal(t, 12.0, *a.Y)
	assert.Equal(t, -12.0, *a.Z)
}

func TestOrderedMap_PreservesInsertionOrder(t *testing.T) {
	m := NewOrderedMap()
	m.Set("z", "1")
	m.Set("a", "2")
	m.Set("z", "3") // re-set existing key: order unchanged
	assert.Equal(t, []string{"z", "a"}, m.Keys())
	v, ok := m.Get("z")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}
