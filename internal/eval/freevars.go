package eval

import (
	"github.com/tine-lang/tine/internal/model"
	"github.com/tine-lang/tine/internal/pattern"
)

// freeVars computes the free identifiers of e (spec §4.E, "Free-variable
// computation for paths"): everything a closure over e would need to
// capture. Order is first-occurrence, depth-first; duplicates collapsed.
func freeVars(e model.Expr) []string {
	seen := map[string]bool{}
	var out []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	var walk func(model.Expr)
	walk = func(e model.Expr) {
		switch n := e.(type) {
		case *model.IntLit, *model.BoolLit:
			// no identifiers
		case *model.Var:
			add(n.Name)
		case *model.Call:
			walk(n.Callee)
			for _, a := range n.Args {
				walk(a)
			}
		case *model.FunDef:
			for _, p := range n.Paths {
				bound := patternVarSet(p.Input)
				for _, fv := range freeVars(p.Body) {
					if !bound[fv] {
						add(fv)
					}
				}
			}
		case *model.LetIn:
			walk(n.Value)
			bound := map[string]bool{}
			for _, v := range pattern.Vars(n.Pattern) {
				bound[v] = true
			}
			for _, fv := range freeVars(n.Body) {
				if !bound[fv] {
					add(fv)
				}
			}
		}
	}
	walk(e)
	return out
}

func patternVarSet(inputs []pattern.Pattern) map[string]bool {
	out := map[string]bool{}
	for _, p := range inputs {
		for _, v := range pattern.Vars(p) {
			out[v] = true
		}
	}
	return out
}
