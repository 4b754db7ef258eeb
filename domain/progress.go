package domain

// ProgressManager creates progress indicators for long running tasks
type ProgressManager interface {
	// StartTask begins a task with a description and total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive reports whether progress is rendered
	IsInteractive() bool

	// Close finishes every task
	Close()
}

// TaskProgress tracks one task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// ResultCache stores per-file results keyed by path and validated by
// the file content
type ResultCache interface {
	// Get returns the cached result for path when content is unchanged
	Get(path string, content []byte) (*FileResult, bool)

	// Put stores the result for path and content
	Put(path string, content []byte, result *FileResult)

	// Invalidate drops the entry for path
	Invalidate(path string)

	// Close releases the cache
	Close()
}
