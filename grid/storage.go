package grid

import "iter"

const blockChunkSize = 64

// blockStorage keeps blocks in fixed-size chunks so that slot indices stay
// stable across deletes. Freed slots are reused by later appends.
type blockStorage struct {
	chunks    [][blockChunkSize]Block
	filled    [][blockChunkSize]bool
	freeSlots []int
	nextIndex int
}

// Append stores b and returns its slot index.
func (bs *blockStorage) Append(b Block) int {
	if len(bs.freeSlots) > 0 {
		index := bs.freeSlots[len(bs.freeSlots)-1]
		bs.freeSlots = bs.freeSlots[:len(bs.freeSlots)-1]

		chunkIdx := index / blockChunkSize
		slotIdx := index % blockChunkSize

		bs.chunks[chunkIdx][slotIdx] = b
		bs.filled[chunkIdx][slotIdx] = true
		return index
	}

	index := bs.nextIndex
	bs.nextIndex++

	chunkIdx := index / blockChunkSize
	slotIdx := index % blockChunkSize

	if chunkIdx >= len(bs.chunks) {
		bs.chunks = append(bs.chunks, [blockChunkSize]Block{})
		bs.filled = append(bs.filled, [blockChunkSize]bool{})
	}

	bs.chunks[chunkIdx][slotIdx] = b
	bs.filled[chunkIdx][slotIdx] = true
	return index
}

// Get returns a pointer to the block at index, or nil for an empty slot.
func (bs *blockStorage) Get(index int) *Block {
	if index < 0 || index >= bs.nextIndex {
		return nil
	}

	chunkIdx := index / blockChunkSize
	slotIdx := index % blockChunkSize

	if !bs.filled[chunkIdx][slotIdx] {
		return nil
	}
	return &bs.chunks[chunkIdx][slotIdx]
}

// Delete marks a slot as empty. Returns false if it already was.
func (bs *blockStorage) Delete(index int) bool {
	if index < 0 || index >= bs.nextIndex {
		return false
	}

	chunkIdx := index / blockChunkSize
	slotIdx := index % blockChunkSize

	if !bs.filled[chunkIdx][slotIdx] {
		return false
	}
	bs.filled[chunkIdx][slotIdx] = false
	bs.chunks[chunkIdx][slotIdx] = Block{}
	bs.freeSlots = append(bs.freeSlots, index)
	return true
}

// Len returns the number of stored blocks.
func (bs *blockStorage) Len() int {
	return bs.nextIndex - len(bs.freeSlots)
}

// Fragmented reports whether more than half of the allocated slots are free.
func (bs *blockStorage) Fragmented() bool {
	return len(bs.freeSlots) > blockChunkSize && len(bs.freeSlots)*2 > bs.nextIndex
}

// Compact moves all blocks to the front of the storage and drops empty
// chunks. Slot indices change; the returned map is old index -> new index.
func (bs *blockStorage) Compact() map[int]int {
	indexMap := make(map[int]int)

	total := bs.Len()
	if total == 0 {
		bs.Reset()
		return indexMap
	}

	numChunks := (total + blockChunkSize - 1) / blockChunkSize
	newChunks := make([][blockChunkSize]Block, numChunks)
	newFilled := make([][blockChunkSize]bool, numChunks)

	writePos := 0
	for readIdx := range bs.Iter() {
		indexMap[readIdx] = writePos

		writeChunk := writePos / blockChunkSize
		writeSlot := writePos % blockChunkSize
		newChunks[writeChunk][writeSlot] = bs.chunks[readIdx/blockChunkSize][readIdx%blockChunkSize]
		newFilled[writeChunk][writeSlot] = true

		writePos++
	}

	bs.chunks = newChunks
	bs.filled = newFilled
	bs.freeSlots = nil
	bs.nextIndex = writePos

	return indexMap
}

// Reset drops every block and releases all but one chunk.
func (bs *blockStorage) Reset() {
	bs.chunks = make([][blockChunkSize]Block, 1)
	bs.filled = make([][blockChunkSize]bool, 1)
	bs.freeSlots = nil
	bs.nextIndex = 0
}

// Iter yields the slot index of every stored block in slot order.
func (bs *blockStorage) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < bs.nextIndex; i++ {
			if bs.filled[i/blockChunkSize][i%blockChunkSize] {
				if !yield(i) {
					return
				}
			}
		}
	}
}
