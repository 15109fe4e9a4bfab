package applicability

import "github.com/kbukum/supplysched/util"

// EvaluateRule decides whether a checklist item applies in the given
// context. A disabled rule or a rule with no clauses is vacuously
// applicable.
func EvaluateRule(rule Rule, clauses []Clause, ctx Context, ranks RankOrder) bool {
	if !rule.Enabled || len(clauses) == 0 {
		return true
	}

	if rule.Operator == OperatorAny {
		for _, c := range clauses {
			if evaluateClause(c, ctx, ranks) {
				return true
			}
		}
		return false
	}

	for _, c := range clauses {
		if !evaluateClause(c, ctx, ranks) {
			return false
		}
	}
	return true
}

// EvaluateMany evaluates each template's rule in one pass. Templates
// without a rule map to true.
func EvaluateMany(templates []Template, ctx Context, ranks RankOrder) map[string]bool {
	out := make(map[string]bool, len(templates))
	for _, tpl := range templates {
		if tpl.Rule == nil {
			out[tpl.ID] = true
			continue
		}
		out[tpl.ID] = EvaluateRule(*tpl.Rule, tpl.Clauses, ctx, ranks)
	}
	return out
}

func evaluateClause(c Clause, ctx Context, ranks RankOrder) bool {
	switch c.Subject {
	case SubjectSupplierNMR:
		return compareValue(ctx.SupplierNMRRank, c.Comparator, c.Value, ranks)
	case SubjectPartPA:
		// Any one part satisfying the clause is enough. No parts, no match.
		for _, rank := range ctx.PartPARanks {
			if compareValue(&rank, c.Comparator, c.Value, ranks) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func compareValue(subject *string, cmp Comparator, clauseValue string, ranks RankOrder) bool {
	if subject == nil {
		// An unrated subject differs from everything.
		return cmp == CompNEQ || cmp == CompNotIn
	}
	s := *subject

	switch cmp {
	case CompEQ:
		return s == clauseValue
	case CompNEQ:
		return s != clauseValue
	case CompIn:
		return util.Contains(util.SplitTrimmed(clauseValue, ","), s)
	case CompNotIn:
		return !util.Contains(util.SplitTrimmed(clauseValue, ","), s)
	case CompGTE:
		si, ci := ranks.Index(s), ranks.Index(clauseValue)
		if si < 0 || ci < 0 {
			return false
		}
		// Lower index is the higher rank, so "at least as high" means
		// an index at or before the clause value's.
		return si <= ci
	case CompLTE:
		si, ci := ranks.Index(s), ranks.Index(clauseValue)
		if si < 0 || ci < 0 {
			return false
		}
		return si >= ci
	default:
		return false
	}
}
