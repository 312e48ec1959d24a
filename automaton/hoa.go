package automaton

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jabaum/bosy/expr"
)

// Only state-based Büchi acceptance is understood. The accepting states of
// the Büchi automaton for the negated specification are the rejecting
// states of the co-Büchi automaton for the specification.
const (
	hoaAccName    = "acc-name: Buchi"
	hoaAcceptance = "Acceptance: 1 Inf(0)"
)

func hoaState(n int) State {
	return State("s" + strconv.Itoa(n))
}

// ParseHOA reads the restricted subset of the Hanoi Omega-Automata format
// produced by `ltl2tgba -H -B`: explicit labels, state-based Büchi
// acceptance. Both acceptance headers must be present verbatim; any other
// acceptance condition is rejected. The result is
// simplified and SCC-annotated.
func ParseHOA(text string) (*Annotated, error) {
	a := New()
	var (
		aps            []string
		inBody         bool
		current        State
		hasCurrent     bool
		seenAccName    bool
		seenAcceptance bool
	)

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		fail := func(err error) (*Annotated, error) {
			return nil, &ParseError{Line: i + 1, Text: line, Err: err}
		}

		switch {
		case strings.HasPrefix(line, "acc-name:"):
			if line != hoaAccName {
				return fail(ErrUnsupportedAcceptance)
			}
			seenAccName = true

		case strings.HasPrefix(line, "Acceptance:"):
			if line != hoaAcceptance {
				return fail(ErrUnsupportedAcceptance)
			}
			seenAcceptance = true

		case strings.HasPrefix(line, "States:"):
			n, err := headerInt(line)
			if err != nil {
				return fail(err)
			}
			for k := 0; k < n; k++ {
				a.AddState(hoaState(k))
			}

		case strings.HasPrefix(line, "Start:"):
			k, err := headerInt(line)
			if err != nil {
				return fail(err)
			}
			a.Initial.Add(hoaState(k))

		case strings.HasPrefix(line, "AP:"):
			parsed, err := parseAP(line)
			if err != nil {
				return fail(err)
			}
			aps = parsed

		case strings.HasPrefix(line, "--BODY--"):
			inBody = true

		case strings.HasPrefix(line, "--END--"):
			inBody = false

		case inBody && strings.HasPrefix(line, "State:"):
			parts := strings.Fields(line)
			if len(parts) < 2 {
				return fail(fmt.Errorf("%w: missing state number", ErrMalformedLine))
			}
			k, err := strconv.Atoi(parts[1])
			if err != nil {
				return fail(fmt.Errorf("%w: state number %q", ErrMalformedLine, parts[1]))
			}
			current, hasCurrent = hoaState(k), true
			a.AddState(current)
			if len(parts) > 2 && !strings.HasPrefix(parts[len(parts)-1], `"`) {
				a.Rejecting.Add(current)
			}

		case inBody && strings.HasPrefix(line, "["):
			if !hasCurrent {
				return fail(fmt.Errorf("%w: transition outside of a state", ErrMalformedLine))
			}
			guard, target, err := scanTransition(line, aps)
			if err != nil {
				return fail(err)
			}
			a.AddTransition(current, target, guard)
		}
	}

	if !seenAccName || !seenAcceptance {
		return nil, &ParseError{Err: fmt.Errorf("%w: missing acc-name or Acceptance header", ErrUnsupportedAcceptance)}
	}

	annotated, err := Annotate(a)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return annotated, nil
}

func headerInt(line string) (int, error) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return 0, fmt.Errorf("%w: missing value", ErrMalformedLine)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedLine, parts[1])
	}
	return n, nil
}

// parseAP reads `AP: n "a" "b" ...`. Order matters: labels refer to
// propositions by index.
func parseAP(line string) ([]string, error) {
	var aps []string
	var cur *strings.Builder
	for _, ch := range strings.TrimPrefix(line, "AP:") {
		if ch == '"' {
			if cur != nil {
				aps = append(aps, cur.String())
				cur = nil
			} else {
				cur = &strings.Builder{}
			}
			continue
		}
		if cur != nil {
			cur.WriteRune(ch)
		}
	}
	if cur != nil {
		return nil, fmt.Errorf("%w: unterminated proposition name", ErrMalformedLine)
	}
	if fields := strings.Fields(strings.TrimPrefix(line, "AP:")); len(fields) > 0 {
		if n, err := strconv.Atoi(fields[0]); err == nil && n != len(aps) {
			return nil, fmt.Errorf("%w: declared %d propositions, found %d", ErrMalformedLine, n, len(aps))
		}
	}
	return aps, nil
}

// scanTransition reads `[label] target`. The label is rewritten into guard
// text: t becomes 1, proposition indices (possibly multi-digit) become
// their names, connectives are copied. After the closing bracket the digits
// of the target state are collected.
func scanTransition(line string, aps []string) (*expr.Node, State, error) {
	var (
		formula   strings.Builder
		prop      = -1
		inLabel   bool
		labelDone bool
		target    = -1
	)

	flush := func() error {
		if prop < 0 {
			return nil
		}
		if prop >= len(aps) {
			return fmt.Errorf("%w: index %d", ErrUnknownProposition, prop)
		}
		formula.WriteString(aps[prop])
		prop = -1
		return nil
	}

scan:
	for _, ch := range line {
		switch {
		case !inLabel && !labelDone:
			if ch == '[' {
				inLabel = true
			}

		case inLabel:
			switch {
			case ch == ']':
				if err := flush(); err != nil {
					return nil, "", err
				}
				inLabel, labelDone = false, true
			case ch == 't':
				formula.Reset()
				formula.WriteString("1")
			case ch == 'f':
				formula.Reset()
				formula.WriteString("0")
			case strings.ContainsRune("!|& ()", ch):
				if err := flush(); err != nil {
					return nil, "", err
				}
				formula.WriteRune(ch)
			case ch >= '0' && ch <= '9':
				if prop < 0 {
					prop = 0
				}
				prop = prop*10 + int(ch-'0')
			default:
				return nil, "", fmt.Errorf("%w: unexpected %q in label", ErrMalformedLine, ch)
			}

		default:
			switch {
			case ch >= '0' && ch <= '9':
				if target < 0 {
					target = 0
				}
				target = target*10 + int(ch-'0')
			case target >= 0:
				break scan
			}
		}
	}

	if !labelDone {
		return nil, "", fmt.Errorf("%w: unterminated label", ErrMalformedLine)
	}
	if target < 0 {
		return nil, "", fmt.Errorf("%w: missing target state", ErrMalformedLine)
	}
	guard, err := expr.Parse(formula.String())
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidGuard, err)
	}
	return guard, hoaState(target), nil
}
