// Package shared holds helpers used across the bikeshare packages that belong
// to no single layer.
//
// The testutil subpackage provides:
//
//	- a buffered slog handler for asserting on structured log output
//	- trip dataset fixtures written as CSV files into a test's temp directory
//
// Nothing in shared may import a domain package; it sits below all of them.
package shared
