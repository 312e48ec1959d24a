package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jabaum/bosy/solution"
)

func TestLoadFile(t *testing.T) {
	in, err := LoadFile("testdata/arbiter.yaml")
	require.NoError(t, err)

	assert.Equal(t, "arbiter", in.Name)
	assert.Equal(t, solution.Mealy, in.Semantics)
	assert.Equal(t, []string{"r_0", "r_1"}, in.Inputs)
	assert.Equal(t, []string{"g_0", "g_1"}, in.Outputs)
	assert.Len(t, in.Guarantees, 3)
	assert.Equal(t, "(G (!g_0 || !g_1)) && (G (r_0 -> F g_0)) && (G (r_1 -> F g_1))", in.LTL())
}

func TestLTL(t *testing.T) {
	tests := []struct {
		name string
		in   Instance
		want string
	}{
		{"no guarantees", Instance{}, "true"},
		{"single guarantee", Instance{Guarantees: []string{"G F g"}}, "G F g"},
		{
			"assumption",
			Instance{Assumptions: []string{"G F r"}, Guarantees: []string{"G F g"}},
			"(G F r) -> (G F g)",
		},
		{
			"several assumptions",
			Instance{Assumptions: []string{"a", "b"}, Guarantees: []string{"c", "d"}},
			"((a) && (b)) -> ((c) && (d))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.LTL())
			assert.Equal(t, "!("+tt.want+")", tt.in.Negated())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "instance: [unclosed"},
		{"bad semantics", "instance:\n  semantics: turing\n  outputs: [g]\n"},
		{"no outputs", "instance:\n  inputs: [r]\n"},
		{"duplicate signal", "instance:\n  inputs: [r]\n  outputs: [r]\n"},
		{"empty formula", "instance:\n  outputs: [g]\n  guarantees: ['  ']\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseDefaultsToMealy(t *testing.T) {
	in, err := Parse([]byte("instance:\n  semantics: Moore\n  outputs: [g]\n"))
	require.NoError(t, err)
	assert.Equal(t, solution.Moore, in.Semantics)

	in, err = Parse([]byte("instance:\n  outputs: [g]\n"))
	require.NoError(t, err)
	assert.Equal(t, solution.Mealy, in.Semantics)
}

func TestLoadControllerFile(t *testing.T) {
	c, err := LoadControllerFile("testdata/arbiter_controller.yaml")
	require.NoError(t, err)

	assert.Equal(t, 2, c.Bound)
	assert.True(t, c.Guard(0, 1).IsTrue())
	g, ok := c.OutputGuard(0, "g_0")
	require.True(t, ok)
	assert.True(t, g.IsTrue())
	g, ok = c.OutputGuard(0, "g_1")
	require.True(t, ok)
	assert.True(t, g.IsFalse())

	_, err = c.Verilog()
	assert.NoError(t, err)
}

func TestParseControllerAccumulates(t *testing.T) {
	doc := `
controller:
  bound: 1
  inputs: [a]
  outputs: [o]
  transitions:
    - {from: 0, to: 0, guard: "a"}
    - {from: 0, to: 0, guard: "!a"}
  output_guards:
    - {state: 0, output: o, guard: "a"}
`
	c, err := ParseController([]byte(doc))
	require.NoError(t, err)
	assert.True(t, c.Guard(0, 0).IsTrue())
}

func TestParseControllerErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"bad guard", "controller:\n  bound: 1\n  outputs: [o]\n  transitions:\n    - {from: 0, to: 0, guard: 'a &'}\n", nil},
		{"unknown state", "controller:\n  bound: 1\n  transitions:\n    - {from: 0, to: 1}\n", solution.ErrUnknownState},
		{"unknown output", "controller:\n  bound: 1\n  output_guards:\n    - {state: 0, output: o}\n", solution.ErrUnknownOutput},
		{"missing mealy output", "controller:\n  bound: 1\n  outputs: [o]\n  transitions:\n    - {from: 0, to: 0}\n", solution.ErrMissingOutputGuard},
		{"zero bound", "controller:\n  outputs: [o]\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseController([]byte(tt.doc))
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
