// Package pipeline orchestrates a full ingestion run: enumerate and load
// source PDFs, chunk their pages into word windows, embed the chunks in
// batches, and persist the assembled knowledge base as JSON.
//
// The stages run strictly in sequence. A run either produces a complete
// knowledge base file or fails without touching the output path.
package pipeline
