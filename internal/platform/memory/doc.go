// Package memory provides volatile, process-local implementations of the
// store interfaces. Data is lost when the process exits.
package memory
