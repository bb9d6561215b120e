// Command heapsim drives the kernel heap allocator over a host memory region and prints the result of
// each operation followed by a JSON map of the heap.
package main

func main() {
	execute()
}
