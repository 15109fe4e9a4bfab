// Package util provides generic utility functions shared across the
// supplysched packages.
//
// It includes slice operations, pointer helpers, and string splitting
// used by the rule evaluation code.
package util
