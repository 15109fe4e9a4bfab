// Package templatesync compares a materialized schedule against the
// template it was copied from and reports the drift as add, remove, and
// update suggestions. It never mutates either side; applying (or
// ignoring) the report is the caller's decision.
package templatesync
