// Package dashboard derives every display-ready structure from an analysis
// result: the overall tally, the zero-filtered pie series, the sorted
// per-topic series and the drilldown comment list for one topic.
//
// All builders are pure functions of the result they are given. They never
// perform I/O, never mutate the result and never return errors; missing
// optional data yields an empty structure instead.
package dashboard
