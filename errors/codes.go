package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidDate indicates a date string is not a valid calendar date.
	ErrCodeInvalidDate ErrorCode = "INVALID_DATE"
)

// Schedule graph errors
const (
	// ErrCodeCircularDependency indicates an item never resolved because its
	// anchor chain loops back on itself or is otherwise irresolvable.
	ErrCodeCircularDependency ErrorCode = "CIRCULAR_DEPENDENCY"
	// ErrCodeDanglingReference indicates an anchor points at an item id that
	// does not exist in the referenced set.
	ErrCodeDanglingReference ErrorCode = "DANGLING_REFERENCE"
	// ErrCodeMissingFixedDate indicates a fixed-date item carries no date.
	ErrCodeMissingFixedDate ErrorCode = "MISSING_FIXED_DATE"
	// ErrCodeMissingMilestoneRef indicates a milestone-anchored item carries
	// no milestone reference.
	ErrCodeMissingMilestoneRef ErrorCode = "MISSING_MILESTONE_REF"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeConflict indicates a conflict with the current state of the resource.
	ErrCodeConflict ErrorCode = "CONFLICT"
)

// Propagation errors
const (
	// ErrCodeSupplierFailed indicates one supplier in a batch could not be
	// processed. The batch continues; the error is collected per supplier.
	ErrCodeSupplierFailed ErrorCode = "SUPPLIER_FAILED"
	// ErrCodePropagationStalled indicates cascading propagation hit its
	// iteration bound without reaching a fixed point.
	ErrCodePropagationStalled ErrorCode = "PROPAGATION_STALLED"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeSupplierFailed:      true,
	ErrCodePropagationStalled:  true,
	ErrCodeInternal:            false,
	ErrCodeCircularDependency:  false,
	ErrCodeDanglingReference:   false,
	ErrCodeMissingFixedDate:    false,
	ErrCodeMissingMilestoneRef: false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
