package hir

// Walk visits expr and every expression nested below it, top-down, calling
// visit before descending. A nil expr is a no-op. Patterns are not visited;
// passes reach bindings through the arms they match on.
func Walk(expr *Expr, visit func(*Expr)) {
	if expr == nil {
		return
	}
	visit(expr)

	switch data := expr.Data.(type) {
	case CallData:
		Walk(data.Callee, visit)
		for _, arg := range data.Args {
			Walk(arg, visit)
		}
	case AddrOfData:
		Walk(data.Inner, visit)
	case ArrayData:
		for _, el := range data.Elements {
			Walk(el, visit)
		}
	case TupleData:
		for _, el := range data.Elements {
			Walk(el, visit)
		}
	case StructData:
		for i := range data.Fields {
			Walk(data.Fields[i].Value, visit)
		}
	case MatchData:
		Walk(data.Scrutinee, visit)
		for i := range data.Arms {
			Walk(data.Arms[i].Body, visit)
		}
	case BlockData:
		for _, st := range data.Stmts {
			Walk(st, visit)
		}
		Walk(data.Tail, visit)
	case BinaryData:
		Walk(data.Left, visit)
		Walk(data.Right, visit)
	}
}

// CountExprs returns the number of expression nodes reachable from expr.
func CountExprs(expr *Expr) int {
	n := 0
	Walk(expr, func(*Expr) { n++ })
	return n
}
