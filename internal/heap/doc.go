// Package heap reads the two HDF5 heaps.
//
// A [LocalHeap] holds the member names of an old-style group. A
// [GlobalHeap] collection holds variable-length data; UFF files use it for
// the string attributes h5py writes, such as class and name. A
// [GlobalHeapID] addresses one object within a collection.
package heap
