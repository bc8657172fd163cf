// Package core provides the business logic for importing CRM contacts from CSV.
//
// The package has no transport dependencies. It is used by the HTTP server,
// the CLI, and tests without modification.
//
// # Pipeline
//
// An import runs as one sequential operation:
//
//  1. [ParseCSV] turns file text into [RawRow] values (RFC 4180 grammar).
//  2. A [RowMapper] built from the header row turns each data row into a
//     [CandidateContact], applying defaults for optional fields.
//  3. [ValidateContact] reports every rule violation of a row at once.
//  4. A [Submitter] sends valid records to a [ContactCreator] in batches of
//     at most [MaxBatchSize], in file order.
//  5. The created contacts are appended to the injected [Collection] once.
//
// [Importer] ties the steps together and produces an [ImportResult].
//
// # Error Handling
//
// There are three error classes:
//
//   - File-level: the file cannot be read as CSV text. The import aborts
//     with no partial data ([ErrParse], [ErrEmptyFile], [ErrFileTooLarge]).
//   - Row-level: validation failures are collected as [ValidationError]
//     values and never returned as errors.
//   - Batch-level: a failed [ContactCreator.CreateMany] call stops
//     submission. Earlier batches stay persisted and are reported
//     precisely through [BatchError] and the [ImportResult] counts.
//
// Technical errors are mapped to user-facing messages with [MapError].
package core
