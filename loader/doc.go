// Package loader extracts per-page plain text from source PDF files and
// assembles core.Documents from it.
//
// Loading is tolerant: a file that cannot be parsed, or that
// yields no non-empty page after trimming, is reported as a skip Outcome and
// excluded from the result. Partial failure across a folder of inputs is
// expected and never aborts a run.
//
// Page extraction sits behind the PageExtractor interface so tests can
// inject fakes; the default implementation parses PDFs.
package loader
