// Package proc binds a pipeline label to a dataset bucket and runs the jobs
// a pipeline step submits.
//
// An Interface tracks the step directories a pipeline has produced in each
// dataset category (processed output, reports, masks), keyed by the three
// character step code that prefixes every step directory name. Jobs run on a
// bounded worker pool; the queued and finished counters the pool maintains
// are the source a progress tracker observes.
package proc
