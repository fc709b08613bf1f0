// Package progress observes job counters and drives a caller-supplied sink.
//
// A Tracker polls a Counters view on a fixed interval and forwards finished
// increments to its Sink. The tracked total is fixed at start: jobs submitted
// after the tracker begins belong to a later run and do not extend the
// current one. Trackers never mutate the counters they observe; any number
// of trackers may watch the same counters.
package progress
