// Package message parses and serializes the header messages that describe
// HDF5 objects.
//
// An object header is a list of messages. The ones this package knows
// cover everything a UFF file needs: [Dataspace], [Datatype], [DataLayout],
// [FilterPipeline], [FillValue], [Attribute], [Link], [SymbolTable] and the
// link and group info messages written for new-style groups. Messages of
// other types are kept as raw bytes so that headers still parse.
//
// [Parse] decodes a single message. The Serialize methods produce the
// version written by this module, which is always the newest version of
// each message.
package message
