package renderer

import (
	"runtime"
	"sync"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// PixelTask represents a single pixel to trace
type PixelTask struct {
	Row, Col int
}

// PixelResult contains the traced color for one pixel
type PixelResult struct {
	Row, Col int
	Color    core.Color
	Hit      bool
}

// WorkerPool manages parallel pixel tracing. Results are reported on a
// completion channel keyed by row and column, in no particular order.
type WorkerPool struct {
	raytracer   *Raytracer
	taskQueue   chan PixelTask
	resultQueue chan PixelResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A non-positive count uses one worker per CPU.
func NewWorkerPool(rt *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		raytracer:   rt,
		taskQueue:   make(chan PixelTask, numWorkers*4),
		resultQueue: make(chan PixelResult, numWorkers*4),
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop closes the task queue, waits for in-flight tasks and closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a pixel task to the worker pool
func (wp *WorkerPool) SubmitTask(task PixelTask) {
	wp.taskQueue <- task
}

// Results returns the completion channel. It is closed after Stop.
func (wp *WorkerPool) Results() <-chan PixelResult {
	return wp.resultQueue
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		color, hit := wp.raytracer.tracePixel(task.Col, task.Row)
		wp.resultQueue <- PixelResult{
			Row:   task.Row,
			Col:   task.Col,
			Color: color,
			Hit:   hit,
		}
	}
}
