package partition

import "hash/fnv"

// Count is the fixed number of logical partitions a business can land in.
// Changing it remaps every stored document.
const Count = 256

// For returns the logical partition of a business. The mapping is FNV-32a modulo Count,
// so every document of one business shares a partition_id.
func For(business string) int {
	h := fnv.New32a()
	h.Write([]byte(business))
	return int(h.Sum32() % Count)
}
