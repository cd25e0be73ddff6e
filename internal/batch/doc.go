// Package batch provides concurrent rendering of multiple discovery documents.
//
// The render command accepts any number of input files. Rendering them one by
// one wastes time when reports are written to separate files, so this package
// fans the work out across a bounded set of goroutines and hands back one
// Outcome per input, in input order.
//
// Design decision: We buffer each rendered report in memory instead of
// streaming it because:
// 1. Reports are small (a few kilobytes) even for large discovery runs
// 2. Buffering lets concurrent renders share a single ordered output stream
// 3. A failed render produces no partial output
//
// Concurrency control uses errgroup with SetLimit. A render failure never
// stops the batch; it is recorded in the outcome for that input.
package batch
