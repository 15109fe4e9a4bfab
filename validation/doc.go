// Package validation provides input validation for schedule item, rule,
// and settings definitions before they reach the computation engines.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type Clause struct {
//	    Comparator string `validate:"required,oneof=EQ NEQ IN NOT_IN GTE LTE"`
//	}
//	err := validation.Validate(clause)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.RequiredDate("fixed_date", item.FixedDate)
//	err := v.Validate()
package validation
