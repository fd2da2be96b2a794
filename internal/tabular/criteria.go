// Implements the conjunctive-normal-form selection criteria and their
// evaluation against live rows.

package tabular

// Clause is one element of a selection. The top-level clause list passed to
// [Table.Select] is a conjunction: a row matches when every clause holds.
//
// Three shapes exist: [Eq] (a single field equality), [And] (every equality
// must hold) and [Or] (at least one equality must hold). Nesting is limited
// to these two levels; a compound clause inside another compound clause is
// rejected with [InvalidCriteriaError].
type Clause interface {
	clause()
}

// Eq matches rows whose field equals the given value. Dates compare by
// instant, not by object identity.
type Eq struct {
	Field string
	Value any
}

func (Eq) clause() {}

type andClause []Clause

func (andClause) clause() {}

type orClause []Clause

func (orClause) clause() {}

// And returns a clause that holds when every inner equality holds. An empty
// And holds vacuously.
func And(clauses ...Clause) Clause {
	return andClause(clauses)
}

// Or returns a clause that holds when at least one inner equality holds. An
// empty Or never holds.
func Or(clauses ...Clause) Clause {
	return orClause(clauses)
}

// matchRow reports whether the row satisfies every clause. It short-circuits
// on the first failing clause.
func matchRow(r *Row, clauses []Clause) (bool, error) {
	for _, c := range clauses {
		ok, err := matchClause(r, c, true)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func matchClause(r *Row, c Clause, allowCompound bool) (bool, error) {
	switch cl := c.(type) {
	case Eq:
		v, err := r.Value(cl.Field)
		if err != nil {
			return false, err
		}
		return equalValues(v, cl.Value), nil
	case andClause:
		if !allowCompound {
			return false, &InvalidCriteriaError{Reason: "compound clause nested inside a compound clause"}
		}
		for _, inner := range cl {
			ok, err := matchClause(r, inner, false)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case orClause:
		if !allowCompound {
			return false, &InvalidCriteriaError{Reason: "compound clause nested inside a compound clause"}
		}
		for _, inner := range cl {
			ok, err := matchClause(r, inner, false)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case nil:
		return false, &InvalidCriteriaError{Reason: "nil clause"}
	default:
		return false, &InvalidCriteriaError{Reason: "unsupported clause type"}
	}
}
