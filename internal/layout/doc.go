// Package layout implements the in-process document layout engine.
//
// The engine consumes a linear stream of markup events (see Event) and turns
// it into absolute-positioned drawing instructions (see Instruction) written
// to a Writer. It measures text itself through a Metrics resolver and wraps
// lines greedily, so no browser engine is involved.
//
// # Coordinates
//
// All lengths are in points. Page space has its origin at the bottom-left
// corner with y pointing up, so the pen moves down the page by decreasing y.
// Writers that use a top-left origin must flip y themselves.
//
// # State
//
// One call to Render owns all of its state (cursor, typography, list and
// table contexts) and renders exactly one document. Separate documents can be
// rendered concurrently as long as each call gets its own Writer and Metrics.
//
// # Pagination
//
// By default the engine lays out onto a single logical page and lets the
// cursor run past the bottom margin. Config.Paginate opts into starting a new
// page whenever a line break crosses the bottom content edge.
package layout
