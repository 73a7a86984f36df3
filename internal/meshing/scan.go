package meshing

// inclusiveScan rewrites per-slot 0/1 flags into inclusive running totals,
// in place and in slot order, and returns the final total. After the scan,
// counts[i] is the number of faces in slots 0..i, which is exactly the
// (1-based) output position of slot i's face if it has one.
//
// This is the synchronization point between the two parallel passes: the
// count pass must have fully finished before the scan runs, and the emit
// pass must not start before it returns.
func inclusiveScan(counts []uint32) uint32 {
	var acc uint32
	for i, v := range counts {
		acc += v
		counts[i] = acc
	}
	return acc
}
