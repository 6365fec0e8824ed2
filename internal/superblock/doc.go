// Package superblock locates and parses the HDF5 superblock.
//
// [Read] looks for the file signature at offsets 0, 512, 1024 and 2048 and
// returns [ErrNotHDF5] when none is found. Superblock versions 0 and 1
// describe the root group through a symbol table entry. Versions 2 and 3
// point at the root object header directly. Files created by this
// module carry a version 3 superblock written by [Superblock.Write].
package superblock
