package autopas

// loadDataLayout converts every cell's AoS side to SoA if layout requires
// it; it is a no-op for AoS-native traversals (§4.7). Conversion is
// parallel-safe because each cell is independent, so it is dispatched
// through the shared worker pool the same way a C08 color or sliced slab
// is, grounded on the teacher's "build once, iterate many" ShapeIndex
// phase separation.
func loadDataLayout(cells []Cell, layout DataLayoutOption, pool *workerPool) {
	if layout != DataLayoutSoA {
		return
	}
	pool.forEach(len(cells), func(i int) {
		cells[i].LoadSoA()
	})
}

// storeDataLayout writes the SoA buffer back to the AoS side after a
// traversal completes (§4.7). No-op for AoS-native traversals.
func storeDataLayout(cells []Cell, layout DataLayoutOption, pool *workerPool) {
	if layout != DataLayoutSoA {
		return
	}
	pool.forEach(len(cells), func(i int) {
		cells[i].StoreSoA()
	})
}
