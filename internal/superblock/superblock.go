package superblock

import (
	"encoding/binary"
	"errors"
	"io"

	binpkg "github.com/robert-malhotra/go-uff/internal/binary"
)

// Signature opens every HDF5 file.
var Signature = []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}

var searchOffsets = []int64{0, 512, 1024, 2048}

var (
	ErrNotHDF5            = errors.New("not an HDF5 file: signature not found")
	ErrUnsupportedVersion = errors.New("unsupported superblock version")
	ErrInvalidSuperblock  = errors.New("invalid superblock structure")
)

// Superblock holds the file-wide layout found at the signature.
type Superblock struct {
	Version    uint8
	OffsetSize uint8 // 2, 4 or 8
	LengthSize uint8 // 2, 4 or 8

	// FileConsistencyFlags is only stored by versions 2 and 3.
	FileConsistencyFlags uint8

	BaseAddress                uint64
	SuperblockExtensionAddress uint64
	EOFAddress                 uint64
	RootGroupAddress           uint64

	// Versions 0 and 1 may cache the root group's symbol table in the
	// scratch pad of its symbol table entry. Zero when not cached.
	RootGroupBTreeAddress     uint64
	RootGroupLocalHeapAddress uint64

	// FileOffset is where the signature was found.
	FileOffset int64
}

// Read finds the signature and parses the superblock that follows it.
func Read(r io.ReaderAt) (*Superblock, error) {
	// Offset and length sizes are not known until the fixed fields are
	// read, so start with the widest and narrow afterwards.
	br := binpkg.NewReader(r, binpkg.Config{ByteOrder: binary.LittleEndian, OffsetSize: 8, LengthSize: 8})

	for _, offset := range searchOffsets {
		sig, err := br.At(offset).Peek(len(Signature) + 1)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if !bytesEqual(sig[:len(Signature)], Signature) {
			continue
		}

		var sb *Superblock
		switch version := sig[len(Signature)]; version {
		case 0, 1:
			sb, err = readV0V1(r, offset, version)
		case 2, 3:
			sb, err = readV2V3(br.At(offset), offset)
		default:
			return nil, ErrUnsupportedVersion
		}
		if err != nil {
			return nil, err
		}
		sb.FileOffset = offset
		return sb, nil
	}
	return nil, ErrNotHDF5
}

// ReaderConfig returns the integer layout readers of this file use. HDF5
// metadata is always little-endian.
func (sb *Superblock) ReaderConfig() binpkg.Config {
	return binpkg.Config{
		ByteOrder:  binary.LittleEndian,
		OffsetSize: int(sb.OffsetSize),
		LengthSize: int(sb.LengthSize),
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
