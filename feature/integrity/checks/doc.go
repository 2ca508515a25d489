// Package checks holds the individual integrity checks. Each returns a report
// value; an error means the check itself could not run.
package checks
