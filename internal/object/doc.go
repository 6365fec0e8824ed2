// Package object reads and writes HDF5 object headers.
//
// [Read] accepts both header versions. Version 1 headers come from files
// in the earliest format, which is what MATLAB writes. Version 2 headers
// ("OHDR") are checksummed and are what this module writes itself.
// Continuation blocks are followed transparently, so a [Header] always
// carries the full message list.
package object
