package irx

// FreeVars returns the set of Identifier names referenced in e that
// are not bound by an enclosing Let within e itself.
func FreeVars(e *Expr) map[string]bool {
	fv := make(map[string]bool)
	collectFreeVars(e, map[string]bool{}, fv)
	return fv
}

func collectFreeVars(e *Expr, bound map[string]bool, fv map[string]bool) {
	if e == nil {
		return
	}
	switch e.Op {
	case OpIdentifier:
		if !bound[e.Name] {
			fv[e.Name] = true
		}
		return
	case OpLet:
		collectFreeVars(e.Kids[0], bound, fv)
		inner := cloneSet(bound)
		inner[e.Name] = true
		collectFreeVars(e.Kids[1], inner, fv)
		return
	case OpSeq:
		for _, s := range e.Seq {
			collectFreeVars(s, bound, fv)
		}
		return
	}
	for _, k := range e.Kids {
		collectFreeVars(k, bound, fv)
	}
}

func cloneSet(s map[string]bool) map[string]bool {
	out := make(map[string]bool, len(s)+1)
	for k := range s {
		out[k] = true
	}
	return out
}
