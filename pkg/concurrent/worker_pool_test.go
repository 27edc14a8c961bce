package concurrent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	testCases := []struct {
		name       string
		numWorkers int
		jobs       []int
		expected   []int
	}{
		{"empty", 4, []int{}, []int{}},
		{"single worker", 1, []int{1, 2, 3}, []int{1, 4, 9}},
		{"more workers than jobs", 16, []int{3, 1, 2}, []int{9, 1, 4}},
		{"invalid worker count", 0, []int{5}, []int{25}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Map(tc.numWorkers, tc.jobs, func(x int) int { return x * x })
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestWorkerPool(t *testing.T) {
	wp := NewWorkerPool[int, int](3, 10)
	wp.Start(func(x int) int { return x + 1 })
	for i := 0; i < 10; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Wait()

	sum := 0
	for res := range wp.CollectResults() {
		sum += res
	}
	assert.Equal(t, 55, sum)
}
