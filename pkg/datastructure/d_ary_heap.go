package datastructure

import (
	"errors"
)

type PriorityQueueNode[T comparable] struct {
	rank    float64
	item    T
	itemPos int
}

func (p *PriorityQueueNode[T]) GetItem() T {
	return p.item
}

func (p *PriorityQueueNode[T]) GetRank() float64 {
	return p.rank
}

func (p *PriorityQueueNode[T]) SetRank(rank float64) {
	p.rank = rank
}
func (p *PriorityQueueNode[T]) SetPos(i int) {
	p.itemPos = i
}

func (p *PriorityQueueNode[T]) GetPos() int {
	return p.itemPos
}

func NewPriorityQueueNode[T comparable](rank float64, item T) *PriorityQueueNode[T] {
	return &PriorityQueueNode[T]{rank: rank, item: item}
}

// MinHeap d-ary heap priorityqueue
type MinHeap[T comparable] struct {
	heap []*PriorityQueueNode[T]
	d    int
}

func NewFourAryHeap[T comparable]() *MinHeap[T] {
	return NewdAryHeap[T](4)
}

func NewdAryHeap[T comparable](d int) *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]*PriorityQueueNode[T], 0),
		d:    d,
	}
}

func (h *MinHeap[T]) Preallocate(maxSearchSize int) {
	h.heap = make([]*PriorityQueueNode[T], 0, maxSearchSize)
}

func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / h.d
}

// heapifyUp. swap with parent while the parent rank is bigger. O(log_d N)
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.heap[index].rank < h.heap[h.parent(index)].rank {
		h.Swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown. swap with the smallest child while it is smaller. O(d log_d N)
func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		leftMostChild := index*h.d + 1
		if leftMostChild >= len(h.heap) {
			return
		}

		sentinel := leftMostChild + h.d
		if sentinel > len(h.heap) {
			sentinel = len(h.heap)
		}

		smallest := leftMostChild
		for i := leftMostChild + 1; i < sentinel; i++ {
			if h.heap[i].rank < h.heap[smallest].rank {
				smallest = i
			}
		}

		if h.heap[smallest].rank >= h.heap[index].rank {
			return
		}
		h.Swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap[T]) Swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]

	h.heap[i].SetPos(i)
	h.heap[j].SetPos(j)
}

func (h *MinHeap[T]) IsEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}


func (h *MinHeap[T]) Insert(key *PriorityQueueNode[T]) {
	h.heap = append(h.heap, key)
	index := h.Size() - 1
	key.SetPos(index)
	h.heapifyUp(index)
}

// ExtractMin. pop the minimum rank node. O(d log_d N)
func (h *MinHeap[T]) ExtractMin() (*PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return &PriorityQueueNode[T]{}, errors.New("heap is empty")
	}
	root := h.heap[0]

	h.Swap(0, h.Size()-1)

	h.heap = h.heap[:h.Size()-1]
	root.SetPos(-1)
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}

	return root, nil
}

// DecreaseKey. update rank of an item already in the heap. O(log_d N)
func (h *MinHeap[T]) DecreaseKey(item *PriorityQueueNode[T], rank float64) error {
	itemPos := item.GetPos()
	if itemPos < 0 || itemPos >= h.Size() || h.heap[itemPos].GetRank() < rank {
		return errors.New("invalid index or new value")
	}

	h.heap[itemPos].SetRank(rank)
	h.heapifyUp(itemPos)
	return nil
}
