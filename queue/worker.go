package queue

// TaskQueue is a buffered in-memory queue of functions to run. The
// redirect path uses it for post-miss cache fills so the visitor never
// waits on a cache write.
var TaskQueue = make(chan func(), 100)

// StartWorker launches a background goroutine that processes queued tasks.
func StartWorker() {
	go func() {
		for task := range TaskQueue {
			task()
		}
	}()
}

// Enqueue adds a task without blocking; if the queue is full the task
// is dropped. Every queued task is best-effort by definition.
func Enqueue(task func()) {
	select {
	case TaskQueue <- task:
	default:
	}
}
