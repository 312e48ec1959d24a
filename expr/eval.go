package expr

import (
	"fmt"
)

// Env maps proposition names to their values.
type Env map[string]bool

// Eval evaluates a formula under env. A proposition missing from env is an
// error rather than silently false.
func Eval(node *Node, env Env) (bool, error) {
	switch node.Type {
	case NodeLit:
		return node.Value, nil

	case NodeVar:
		v, ok := env[node.Name]
		if !ok {
			return false, fmt.Errorf("undefined proposition %q", node.Name)
		}
		return v, nil

	case NodeNot:
		v, err := Eval(node.Children[0], env)
		if err != nil {
			return false, err
		}
		return !v, nil

	case NodeAnd:
		for _, c := range node.Children {
			v, err := Eval(c, env)
			if err != nil {
				return false, err
			}
			if !v {
				return false, nil
			}
		}
		return true, nil

	case NodeOr:
		for _, c := range node.Children {
			v, err := Eval(c, env)
			if err != nil {
				return false, err
			}
			if v {
				return true, nil
			}
		}
		return false, nil

	default:
		return false, fmt.Errorf("unknown node type %d", node.Type)
	}
}
