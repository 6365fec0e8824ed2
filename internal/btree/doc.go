// Package btree reads version 1 B-trees, the index structure of files
// written with the earliest file format.
//
// MATLAB and h5py write UFF files with that format by default, so both
// uses of the tree show up in practice:
//
//   - [ReadGroupEntries] walks a group B-tree and its symbol table nodes,
//     resolving member names through the group's [heap.LocalHeap].
//   - [ReadChunkIndex] walks a chunk B-tree and returns a [ChunkIndex] of
//     [ChunkEntry] values, one per stored chunk.
//
// Files written with the latest format index chunks with fixed or
// extensible arrays instead; those are read by the layout package.
package btree
