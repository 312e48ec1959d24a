package solution

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jabaum/bosy/expr"
)

func TestCircuitSingleState(t *testing.T) {
	c := New(1, nil, []string{"o"}, Mealy)
	require.NoError(t, c.AddTransition(0, 0, expr.True()))
	require.NoError(t, c.AddOutput("o", 0, expr.True()))

	circ, err := c.Circuit()
	require.NoError(t, err)
	assert.Empty(t, circ.Latches)
	assert.Empty(t, circ.Next)
	require.Len(t, circ.Outputs, 1)
	assert.Equal(t, "o", circ.Outputs[0].Name)
	assert.True(t, circ.Outputs[0].Formula.IsTrue())

	aig, err := circ.AIG()
	require.NoError(t, err)
	assert.Empty(t, aig.Latches)
	require.Len(t, aig.Outputs, 1)
	assert.Equal(t, aig.S.T, aig.Outputs[0])
}

func TestCircuitMatchesStep(t *testing.T) {
	c := arbiter(t)
	c.Initial = 2

	circ, err := c.Circuit()
	require.NoError(t, err)
	assert.Equal(t, []string{"s0", "s1"}, circ.Latches)
	assert.Equal(t, []bool{false, true}, circ.Init)

	for _, st := range c.States() {
		for _, r := range []bool{false, true} {
			env := expr.Env{"r": r}
			for i, name := range circ.Latches {
				env[name] = st>>i&1 == 1
			}

			next, outputs, err := c.Step(st, expr.Env{"r": r})
			require.NoError(t, err)

			for i, sig := range circ.Next {
				v, err := expr.Eval(sig.Formula, env)
				require.NoError(t, err)
				assert.Equal(t, next>>i&1 == 1, v, "state %d r=%v latch %s", st, r, sig.Name)
			}
			for _, sig := range circ.Outputs {
				v, err := expr.Eval(sig.Formula, env)
				require.NoError(t, err)
				assert.Equal(t, outputs[sig.Name], v, "state %d r=%v output %s", st, r, sig.Name)
			}
		}
	}

	aig, err := circ.AIG()
	require.NoError(t, err)
	assert.Len(t, aig.Inputs, 1)
	assert.Len(t, aig.Latches, 2)
	assert.Len(t, aig.Outputs, 1)
}

func TestCircuitRejectsLatchNameClash(t *testing.T) {
	c := New(2, []string{"s0"}, nil, Mealy)
	_, err := c.Circuit()
	assert.ErrorIs(t, err, ErrNameClash)
}

func TestCircuitRejectsInconsistentController(t *testing.T) {
	t.Run("mealy output missing in reachable state", func(t *testing.T) {
		c := New(2, []string{"a"}, []string{"o"}, Mealy)
		require.NoError(t, c.AddTransition(0, 1, expr.True()))
		require.NoError(t, c.AddTransition(1, 0, expr.True()))
		require.NoError(t, c.AddOutput("o", 0, expr.Var("a")))

		_, err := c.Circuit()
		assert.ErrorIs(t, err, ErrMissingOutputGuard)
		assert.ErrorIs(t, c.WriteAIGER(&strings.Builder{}, false), ErrMissingOutputGuard)
	})

	t.Run("moore output depends on input", func(t *testing.T) {
		c := New(1, []string{"a"}, []string{"o"}, Moore)
		require.NoError(t, c.AddTransition(0, 0, expr.True()))
		require.NoError(t, c.AddOutput("o", 0, expr.Var("a")))

		_, err := c.Circuit()
		assert.ErrorIs(t, err, ErrNonLiteralMooreGuard)
	})

	t.Run("unreachable state may omit outputs", func(t *testing.T) {
		c := New(2, nil, []string{"o"}, Mealy)
		require.NoError(t, c.AddTransition(0, 0, expr.True()))
		require.NoError(t, c.AddOutput("o", 0, expr.True()))

		_, err := c.Circuit()
		assert.NoError(t, err)
	})
}

func edges(dot string) []string {
	var out []string
	for _, line := range strings.Split(dot, "\n") {
		line = strings.TrimSpace(line)
		if strings.Contains(line, "->") && !strings.HasPrefix(line, "_init") {
			out = append(out, line)
		}
	}
	return out
}

func TestMealyDotSplitsComplementaryOutputs(t *testing.T) {
	c := New(1, []string{"x"}, []string{"o1", "o2"}, Mealy)
	require.NoError(t, c.AddTransition(0, 0, expr.True()))
	require.NoError(t, c.AddOutput("o1", 0, expr.MustParse("x")))
	require.NoError(t, c.AddOutput("o2", 0, expr.MustParse("!x")))

	dot, err := c.Dot()
	require.NoError(t, err)
	assert.Contains(t, dot, "_init -> s0")
	assert.Equal(t, []string{
		`s0 -> s0 [label="x / o1"];`,
		`s0 -> s0 [label="!x / o2"];`,
	}, edges(dot))
}

func TestMealyDotCombinesTransitionAndOutputs(t *testing.T) {
	c := arbiter(t)
	dot, err := c.Dot()
	require.NoError(t, err)
	assert.Equal(t, []string{
		`s0 -> s0 [label="!r / "];`,
		`s0 -> s1 [label="r / "];`,
		`s1 -> s2 [label="r / g"];`,
		`s1 -> s2 [label="!r / "];`,
		`s2 -> s0 [label="true / g"];`,
	}, edges(dot))
}

func TestMooreDot(t *testing.T) {
	c := New(2, []string{"x", "y"}, []string{"o", "p"}, Moore)
	require.NoError(t, c.AddTransition(0, 1, expr.MustParse("x")))
	require.NoError(t, c.AddTransition(0, 0, expr.MustParse("!x")))
	require.NoError(t, c.AddTransition(1, 0, expr.True()))
	// A tautology that only the semantic check recognizes.
	require.NoError(t, c.AddOutput("o", 0, expr.MustParse("(x & y) | !x | !y")))
	require.NoError(t, c.AddOutput("p", 0, expr.False()))
	require.NoError(t, c.AddOutput("p", 1, expr.True()))

	dot, err := c.Dot()
	require.NoError(t, err)
	assert.Contains(t, dot, `s0 [shape=rectangle,label="s0\no"];`)
	assert.Contains(t, dot, `s1 [shape=rectangle,label="s1\np"];`)
	assert.Equal(t, []string{
		`s0 -> s0 [label="!x"];`,
		`s0 -> s1 [label="x"];`,
		`s1 -> s0 [label="true"];`,
	}, edges(dot))

	require.NoError(t, c.AddOutput("p", 1, expr.MustParse("y")))
	require.NoError(t, c.AddOutput("o", 1, expr.MustParse("y")))
	_, err = c.Dot()
	assert.ErrorIs(t, err, ErrNonLiteralMooreGuard)
}

// twoState has a disjunctive guard to exercise parenthesization.
func twoState(t *testing.T) *Controller {
	t.Helper()
	c := New(2, []string{"r", "x"}, []string{"g", "h"}, Mealy)
	require.NoError(t, c.AddTransition(0, 0, expr.MustParse("!r")))
	require.NoError(t, c.AddTransition(0, 1, expr.MustParse("r")))
	require.NoError(t, c.AddTransition(1, 0, expr.MustParse("r | x")))
	require.NoError(t, c.AddOutput("g", 0, expr.False()))
	require.NoError(t, c.AddOutput("g", 1, expr.MustParse("r")))
	require.NoError(t, c.AddOutput("h", 0, expr.False()))
	require.NoError(t, c.AddOutput("h", 1, expr.False()))
	return c
}

func TestSMV(t *testing.T) {
	smv, err := twoState(t).SMV()
	require.NoError(t, err)

	for _, want := range []string{
		"MODULE main\n",
		"\t\tstate : {s0, s1};\n",
		"\t\tr : boolean;\n",
		"\t\tx : boolean;\n",
		"\t\tinit(state) := s0;\n",
		"\t\t\tstate = s0 & !r : s0;\n",
		"\t\t\tstate = s0 & r : s1;\n",
		"\t\t\tstate = s1 & (r | x) : s0;\n",
		"\t\t\tTRUE : state;\n\t\tesac;\n",
		"\t\tg := (state = s1 & r);\n",
		"\t\th := (FALSE);\n",
	} {
		assert.Contains(t, smv, want)
	}
}

func TestVerilog(t *testing.T) {
	v, err := twoState(t).Verilog()
	require.NoError(t, err)

	for _, want := range []string{
		"module fsm(r, x, g, h);\n",
		"  input r;\n",
		"  output h;\n",
		"  reg [0:0] state;\n",
		"  `define S0 1'b0\n",
		"  `define S1 1'b1\n",
		"  assign g = ((state == `S1) && r) ? 1 : 0;\n",
		"  assign h = (0) ? 1 : 0;\n",
		"    state = `S0;\n",
		"      `S0: begin\n        if (!r)\n          state = `S0;\n        else\n          state = `S1;\n      end\n",
		"      `S1: begin\n        state = `S0;\n      end\n",
		"endmodule\n",
	} {
		assert.Contains(t, v, want)
	}
}

func TestVerilogStateEncoding(t *testing.T) {
	c := New(5, nil, nil, Mealy)
	c.Initial = 4
	v, err := c.Verilog()
	require.NoError(t, err)
	assert.Contains(t, v, "  reg [2:0] state;\n")
	assert.Contains(t, v, "  `define S4 3'b100\n")
	assert.Contains(t, v, "    state = `S4;\n")
	assert.NotContains(t, v, ": begin")
}

func TestRenderersRejectEmptyController(t *testing.T) {
	c := New(0, nil, nil, Mealy)
	_, err := c.Dot()
	assert.ErrorIs(t, err, ErrNoStates)
	_, err = c.SMV()
	assert.ErrorIs(t, err, ErrNoStates)
	_, err = c.Verilog()
	assert.ErrorIs(t, err, ErrNoStates)
	_, err = c.Circuit()
	assert.ErrorIs(t, err, ErrNoStates)
}
