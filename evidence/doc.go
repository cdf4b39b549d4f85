// Package evidence seals the artifacts of an ingestion run into a
// tamper-evident manifest and a ZIP audit package.
package evidence
