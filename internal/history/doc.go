// Package history keeps a SQLite ledger of speaker reconstructions.
//
// Every requested speaker produces one Run row, whether it completed, failed,
// or was rejected for bad input. FailureStatus decides between the last two
// from the error's ErrorKind. Schema changes ship as numbered files under
// migrations/ and are applied on Open.
package history
