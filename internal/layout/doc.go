// Package layout reads the raw bytes of a dataset from its storage layout.
//
// [New] returns a [Layout] for the layout message of a dataset:
//
//   - [Compact] data lives inside the object header.
//   - [Contiguous] data is one block at a fixed address.
//   - [Chunked] data is split into chunks located through an index.
//
// Every layout can read a hyperslab without reading the rest of the
// dataset. For chunked data only the chunks overlapping the selection are
// fetched and decoded, which is what keeps lazy UFF arrays cheap on large
// channel data.
//
// Chunk indexes are detected by signature. A v1 B-tree ("TREE"), a fixed
// array ("FAHD") and an extensible array ("EAHD") are supported, as is a
// single chunk stored without an index.
package layout
