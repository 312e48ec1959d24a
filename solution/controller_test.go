package solution

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jabaum/bosy/expr"
)

// arbiter is a three-state Mealy controller: it waits for r, grants in the
// following step while r holds, then returns to the idle state.
func arbiter(t *testing.T) *Controller {
	t.Helper()
	c := New(3, []string{"r"}, []string{"g"}, Mealy)
	require.NoError(t, c.AddTransition(0, 0, expr.MustParse("!r")))
	require.NoError(t, c.AddTransition(0, 1, expr.MustParse("r")))
	require.NoError(t, c.AddTransition(1, 2, expr.True()))
	require.NoError(t, c.AddTransition(2, 0, expr.True()))
	require.NoError(t, c.AddOutput("g", 0, expr.False()))
	require.NoError(t, c.AddOutput("g", 1, expr.MustParse("r")))
	require.NoError(t, c.AddOutput("g", 2, expr.True()))
	return c
}

func TestParseSemantics(t *testing.T) {
	sem, err := ParseSemantics("Moore")
	require.NoError(t, err)
	assert.Equal(t, Moore, sem)

	sem, err = ParseSemantics("mealy")
	require.NoError(t, err)
	assert.Equal(t, Mealy, sem)
	assert.Equal(t, "mealy", sem.String())

	_, err = ParseSemantics("moorely")
	assert.Error(t, err)
}

func TestGuardsAccumulate(t *testing.T) {
	c := New(2, []string{"a", "b"}, []string{"o"}, Mealy)

	require.NoError(t, c.AddTransition(0, 1, expr.MustParse("a")))
	require.NoError(t, c.AddTransition(0, 1, expr.MustParse("!a")))
	assert.True(t, c.Guard(0, 1).IsTrue())

	require.NoError(t, c.AddOutput("o", 1, expr.MustParse("a")))
	require.NoError(t, c.AddOutput("o", 1, expr.MustParse("b")))
	g, ok := c.OutputGuard(1, "o")
	require.True(t, ok)
	eq, err := expr.Equivalent(g, expr.MustParse("a | b"))
	require.NoError(t, err)
	assert.True(t, eq)

	assert.True(t, c.Guard(1, 0).IsFalse())
}

func TestAddRejectsUnknownNames(t *testing.T) {
	c := New(2, []string{"a"}, []string{"o"}, Mealy)
	assert.ErrorIs(t, c.AddTransition(0, 2, expr.True()), ErrUnknownState)
	assert.ErrorIs(t, c.AddTransition(-1, 0, expr.True()), ErrUnknownState)
	assert.ErrorIs(t, c.AddOutput("p", 0, expr.True()), ErrUnknownOutput)
	assert.ErrorIs(t, c.AddOutput("o", 5, expr.True()), ErrUnknownState)
}

func TestReachable(t *testing.T) {
	c := New(4, []string{"a"}, nil, Mealy)
	require.NoError(t, c.AddTransition(0, 1, expr.MustParse("a")))
	require.NoError(t, c.AddTransition(1, 0, expr.True()))
	require.NoError(t, c.AddTransition(0, 2, expr.False()))
	require.NoError(t, c.AddTransition(3, 0, expr.True()))

	reach := c.Reachable()
	assert.True(t, reach.Test(0))
	assert.True(t, reach.Test(1))
	assert.False(t, reach.Test(2), "false guard")
	assert.False(t, reach.Test(3))
	assert.Equal(t, uint(2), reach.Count())
}

func TestValidate(t *testing.T) {
	require.NoError(t, arbiter(t).Validate())

	tests := []struct {
		name  string
		build func() *Controller
		want  error
	}{
		{
			name:  "no states",
			build: func() *Controller { return New(0, nil, nil, Mealy) },
			want:  ErrNoStates,
		},
		{
			name: "initial out of range",
			build: func() *Controller {
				c := New(1, nil, nil, Mealy)
				c.Initial = 3
				return c
			},
			want: ErrUnknownState,
		},
		{
			name:  "input and output share a name",
			build: func() *Controller { return New(1, []string{"x"}, []string{"x"}, Mealy) },
			want:  ErrNameClash,
		},
		{
			name: "guard over an undeclared input",
			build: func() *Controller {
				c := New(1, []string{"x"}, nil, Mealy)
				_ = c.AddTransition(0, 0, expr.MustParse("y"))
				return c
			},
			want: ErrUnknownInput,
		},
		{
			name: "mealy output missing in reachable state",
			build: func() *Controller {
				c := New(2, []string{"x"}, []string{"o"}, Mealy)
				_ = c.AddTransition(0, 1, expr.True())
				_ = c.AddTransition(1, 1, expr.True())
				_ = c.AddOutput("o", 0, expr.True())
				return c
			},
			want: ErrMissingOutputGuard,
		},
		{
			name: "moore guard depends on input",
			build: func() *Controller {
				c := New(1, []string{"x"}, []string{"o"}, Moore)
				_ = c.AddTransition(0, 0, expr.True())
				_ = c.AddOutput("o", 0, expr.MustParse("x"))
				return c
			},
			want: ErrNonLiteralMooreGuard,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.build().Validate(), tt.want)
		})
	}
}

func TestValidateIgnoresUnreachableStates(t *testing.T) {
	c := New(2, nil, []string{"o"}, Mealy)
	require.NoError(t, c.AddTransition(0, 0, expr.True()))
	require.NoError(t, c.AddOutput("o", 0, expr.False()))
	assert.NoError(t, c.Validate())
}

func TestNonExhaustiveStates(t *testing.T) {
	c := New(3, []string{"a", "b"}, nil, Mealy)
	require.NoError(t, c.AddTransition(0, 0, expr.MustParse("a & b")))
	require.NoError(t, c.AddTransition(0, 1, expr.MustParse("!a | !b")))
	require.NoError(t, c.AddTransition(1, 0, expr.MustParse("a")))

	states, err := c.NonExhaustiveStates()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, states)
}

func TestStep(t *testing.T) {
	c := arbiter(t)

	next, out, err := c.Step(0, expr.Env{"r": true})
	require.NoError(t, err)
	assert.Equal(t, 1, next)
	assert.Equal(t, map[string]bool{"g": false}, out)

	next, out, err = c.Step(1, expr.Env{"r": true})
	require.NoError(t, err)
	assert.Equal(t, 2, next)
	assert.True(t, out["g"])

	_, _, err = c.Step(0, expr.Env{})
	assert.Error(t, err)

	d := New(1, nil, nil, Mealy)
	_, _, err = d.Step(0, expr.Env{})
	assert.ErrorIs(t, err, ErrNoTransition)
}

func TestBitsNeeded(t *testing.T) {
	for n, want := range map[int]int{0: 0, 1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4} {
		assert.Equal(t, want, BitsNeeded(n), "n=%d", n)
	}
}

func TestWriteAIGERRejectsUndefinedOutput(t *testing.T) {
	c := New(1, nil, []string{"o"}, Moore)
	require.NoError(t, c.AddTransition(0, 0, expr.True()))
	var buf bytes.Buffer
	assert.ErrorIs(t, c.WriteAIGER(&buf, false), ErrUndefinedOutput)
	assert.Zero(t, buf.Len())
}

func TestWriteAIGER(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, arbiter(t).WriteAIGER(&buf, false))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "aag "))
	assert.Contains(t, out, "i0 r\n")
	assert.Contains(t, out, "l0 s0\n")
	assert.Contains(t, out, "l1 s1\n")
	assert.Contains(t, out, "o0 g\n")

	buf.Reset()
	require.NoError(t, arbiter(t).WriteAIGER(&buf, true))
	assert.True(t, strings.HasPrefix(buf.String(), "aig "))
}
