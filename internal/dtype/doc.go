// Package dtype maps HDF5 datatypes to Go types and back.
//
// [GoType] picks the Go element type a stored datatype decodes to and
// [ConvertWithReader] performs the conversion, following global heap
// references for variable-length strings. [Encode] and [GoTypeToDatatype]
// go the other way when a dataset or attribute is written.
//
// UFF payloads are almost always IEEE floats. Integers, fixed-length
// strings and 16-bit character arrays also appear in files written by
// MATLAB, so all of them convert into the requested slice type.
package dtype
