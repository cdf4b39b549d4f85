// Package kb assembles chunks and their embeddings into the persisted
// knowledge base record consumed by downstream retrieval.
//
// Build pairs the two lists strictly by index and groups chunks under their
// owning documents; Save writes the result as a single JSON record,
// replacing any previous store atomically via a temp file rename.
package kb
