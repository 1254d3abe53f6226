// Package reactive provides observable collection facades: a list, a set, and
// a map whose every committed mutation publishes one immutable snapshot to a
// latest-value stream.
//
// Responsibilities:
//   - Flow[T] holds the current snapshot, replays it synchronously to new
//     subscribers, and fans out each commit in subscription order.
//   - List, Set, and Map own their live backing collections; reads pass
//     through, mutations notify exactly once per outermost call. BatchUpdate
//     collapses any number of mutations (including nested batches) into a
//     single commit that also fires on error, panic, and cancellation paths.
//   - Derived views (WatchIndex, WatchKey, WatchRange, WatchExpr) project each
//     snapshot through a fixed function and suppress consecutive equal results.
//
// Data flow:
//
//	facade mutation -> notifier commit -> Flow.replace(snapshot) -> subscribers
//	                                   -> ChangeLogger / activity hooks
//
// Expression evaluation (Evaluate, EvaluateWith, WatchExpr) runs through a
// pluggable Evaluator; the default engine is expr-lang/expr, with cel-go and
// goja (behind the js_eval build tag) available via WithEvaluator. Snapshots
// are bound into the environment as "items" or "entries" plus "size".
//
// Facades assume a single writer; callers with multiple writers must
// serialize mutations themselves. Snapshots handed to subscribers must be
// treated as immutable.
package reactive
