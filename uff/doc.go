// Package uff reads and writes Ultrasound File Format (UFF) containers.
//
// A UFF file is an HDF5 file in which every group and dataset carries a
// class attribute naming the node type stored there. Nodes are read lazily:
// binding a node to a Location performs no I/O, and each field is resolved
// from the file the first time it is requested. Numeric fields are exposed as
// LazyArray values that only read the selected part of a dataset.
//
//	f, err := uff.Open("picmus.uff")
//	if err != nil {
//		return err
//	}
//	v, err := f.Read("channel_data")
//	if err != nil {
//		return err
//	}
//	cd := v.(*uff.ChannelData)
//	data, err := cd.Data()
//
// Nodes are written with Write, which lays the node tree out the same way
// the MATLAB toolbox does so that files round-trip between the two.
package uff
