package hdf5

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/robert-malhotra/go-uff/internal/alloc"
	binpkg "github.com/robert-malhotra/go-uff/internal/binary"
	"github.com/robert-malhotra/go-uff/internal/message"
	"github.com/robert-malhotra/go-uff/internal/object"
	"github.com/robert-malhotra/go-uff/internal/superblock"
)

// Create creates a new HDF5 file at the given path.
// The file will be created with a V2 superblock and V2 object headers.
func Create(path string, opts ...FileOption) (*File, error) {
	options := defaultFileOptions()
	for _, opt := range opts {
		opt(options)
	}

	osFile, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	cfg := binpkg.Config{
		ByteOrder:  binary.LittleEndian,
		OffsetSize: options.offsetSize,
		LengthSize: options.lengthSize,
	}
	writer := binpkg.NewWriter(osFile, cfg)

	sb := superblock.NewSuperblock()
	sb.OffsetSize = uint8(options.offsetSize)
	sb.LengthSize = uint8(options.lengthSize)

	// Root group goes right after the superblock
	sbSize := sb.Size()
	rootGroupAddr := uint64(sbSize)
	sb.RootGroupAddress = rootGroupAddr

	// Use minimum chunk size for compatibility with h5py
	rootMessages := object.NewEmptyGroupHeader()
	headerSize := object.HeaderSizeWithMinChunk(writer, rootMessages, object.MinGroupChunkSize)
	eofAddr := uint64(sbSize + headerSize)
	sb.EOFAddress = eofAddr

	if _, err := sb.Write(writer); err != nil {
		osFile.Close()
		os.Remove(path)
		return nil, err
	}

	if _, err := object.WriteHeaderWithMinChunk(writer, rootMessages, object.MinGroupChunkSize); err != nil {
		osFile.Close()
		os.Remove(path)
		return nil, err
	}

	f := &File{
		path:       path,
		file:       osFile,
		reader:     binpkg.NewReader(osFile, cfg),
		superblock: sb,
		writable:   true,
		writer:     writer,
		allocator:  alloc.New(eofAddr),
		groups:     make(map[string]*Group),
	}

	f.root = &Group{
		file:         f,
		path:         "/",
		header:       &object.Header{Version: 2, Address: rootGroupAddr, Messages: rootMessages},
		addr:         rootGroupAddr,
		loaded:       true,
		pendingLinks: []*message.Link{},
	}
	f.groups["/"] = f.root

	return f, nil
}

// Flush writes any pending changes to disk.
func (f *File) Flush() error {
	if !f.writable {
		return nil
	}
	if f.closed {
		return ErrClosed
	}
	return f.sync()
}

// sync writes dirty groups, then the superblock with the current EOF and
// root address.
func (f *File) sync() error {
	if err := f.flushGroups(); err != nil {
		return err
	}

	f.superblock.EOFAddress = f.allocator.EOFAddr()

	w := f.writer.At(0)
	if _, err := f.superblock.Write(w); err != nil {
		return err
	}

	return f.file.Sync()
}

// allocate reserves space in the file and returns the address.
func (f *File) allocate(size int64) uint64 {
	return f.allocator.Alloc(uint64(size))
}

// AllocStats reports the space allocated since the file was opened for
// writing. Read-only files report zero.
func (f *File) AllocStats() alloc.Stats {
	if f.allocator == nil {
		return alloc.Stats{}
	}
	return f.allocator.Stats()
}

// closeWritable handles closing a writable file.
func (f *File) closeWritable() error {
	return f.sync()
}

// OpenReadWrite opens an existing HDF5 file for reading and writing.
// This allows adding new groups, datasets, and attributes to existing files.
// Only files with a version 2 or later superblock can be modified.
func OpenReadWrite(path string) (*File, error) {
	osFile, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	sb, err := superblock.Read(osFile)
	if err != nil {
		osFile.Close()
		return nil, err
	}
	if sb.Version < 2 {
		osFile.Close()
		return nil, fmt.Errorf("%w: writing to superblock version %d", ErrUnsupported, sb.Version)
	}

	// Writer shares the reader's byte order, offset size, and length size
	readerCfg := sb.ReaderConfig()
	reader := binpkg.NewReader(osFile, readerCfg)
	writer := binpkg.NewWriter(osFile, readerCfg)

	f := &File{
		path:       path,
		file:       osFile,
		reader:     reader,
		superblock: sb,
		writable:   true,
		writer:     writer,
		allocator:  alloc.New(sb.EOFAddress),
		groups:     make(map[string]*Group),
	}

	root, err := f.openGroupAt(sb.RootGroupAddress, "/")
	if err != nil {
		osFile.Close()
		return nil, err
	}
	root.addr = sb.RootGroupAddress
	f.root = root
	f.groups["/"] = root

	return f, nil
}

// IsWritable returns true if the file was opened for writing.
func (f *File) IsWritable() bool {
	return f.writable
}
