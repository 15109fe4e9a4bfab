package applicability

import "github.com/kbukum/supplysched/util"

// Operator combines a rule's clauses.
type Operator string

const (
	// OperatorAll requires every clause to hold.
	OperatorAll Operator = "ALL"
	// OperatorAny requires at least one clause to hold.
	OperatorAny Operator = "ANY"
)

// Subject selects which fact of the context a clause tests.
type Subject string

const (
	// SubjectSupplierNMR tests the supplier's NMR rank.
	SubjectSupplierNMR Subject = "SUPPLIER_NMR"
	// SubjectPartPA tests the PA ranks of the supplied parts. A clause
	// holds when any one part satisfies it.
	SubjectPartPA Subject = "PART_PA"
)

// Comparator is the comparison a clause applies.
type Comparator string

const (
	CompEQ    Comparator = "EQ"
	CompNEQ   Comparator = "NEQ"
	CompIn    Comparator = "IN"
	CompNotIn Comparator = "NOT_IN"
	CompGTE   Comparator = "GTE"
	CompLTE   Comparator = "LTE"
)

// Rule gates a checklist item on supplier and part facts.
type Rule struct {
	Operator Operator `json:"operator" validate:"required,oneof=ALL ANY"`
	Enabled  bool     `json:"enabled"`
}

// Clause is one condition inside a rule. For IN and NOT_IN, Value is a
// comma-separated list; tokens are trimmed before matching.
type Clause struct {
	Subject    Subject    `json:"subject" validate:"required,oneof=SUPPLIER_NMR PART_PA"`
	Comparator Comparator `json:"comparator" validate:"required,oneof=EQ NEQ IN NOT_IN GTE LTE"`
	Value      string     `json:"value"`
}

// Context carries the concrete facts to test a rule against.
type Context struct {
	// SupplierNMRRank is the supplier's rank label, nil when unrated.
	SupplierNMRRank *string `json:"supplier_nmr_rank"`
	// PartPARanks are the rank labels of the supplied parts.
	PartPARanks []string `json:"part_pa_ranks"`
}

// RankOrder is the configured ordering of rank labels. Earlier entries
// denote a higher rank; GTE and LTE compare index positions in this
// list, never the label strings themselves.
type RankOrder []string

// Index returns the position of label in the order, or -1 if absent.
func (r RankOrder) Index(label string) int {
	return util.IndexOf(r, label)
}

// Template pairs a template id with its optional rule for batch
// evaluation. A nil rule means the template always applies.
type Template struct {
	ID      string   `json:"id" validate:"required"`
	Rule    *Rule    `json:"rule,omitempty"`
	Clauses []Clause `json:"clauses,omitempty"`
}
