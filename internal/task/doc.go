// Package task provides the in-memory task queue and worker pool used
// to process resources concurrently. Tasks are units of work satisfying
// the Task interface; the queue hands them to a fixed set of workers
// and tracks completion so a run can wait for full drainage before
// shutting the workers down.
package task
