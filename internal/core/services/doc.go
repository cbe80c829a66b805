// Package services contains the core application logic, implementing
// the driving port interfaces using the driven ports for persistence,
// extraction, embedding and generation.
//
// Services:
//   - Pipeline: document upload and background ingestion
//   - Dispatcher: per-document serialisation of ingestion runs
//   - Retriever: semantic search over one document's chunks
//   - QA: question answering grounded in retrieved chunks
package services
