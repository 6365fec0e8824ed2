// Package alloc hands out file addresses while an HDF5 file is being
// written.
//
// Addresses grow monotonically from the end of the superblock. Freed space
// is never reused, so a file that is rewritten in place only grows; UFF
// writers that replace a node rewrite the owning group header and leave the
// old payload unreferenced.
package alloc
