package compute

import (
	"runtime"
	"sync"
)

// ParallelFor executes fn over [0, n) split into contiguous chunks of at
// least minChunk elements, one goroutine per chunk.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.NumCPU()
	if minChunk < 1 {
		minChunk = 1
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}
	parallelChunks(n, workers, fn)
}

func parallelChunks(n, workers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if workers <= 1 || n == 1 {
		fn(0, n)
		return
	}
	if workers > n {
		workers = n
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
