// Package materialize turns template schedule items into live copies for
// a project or supplier. Copies get fresh ids, remember their source
// item for later template sync, and have their internal anchor refs
// rewired so the copied graph stands on its own.
package materialize
