package superblock

import (
	"io"

	binpkg "github.com/robert-malhotra/go-uff/internal/binary"
)

// readV0V1 parses a version 0 or 1 superblock whose signature is at offset.
func readV0V1(src io.ReaderAt, offset int64, version uint8) (*Superblock, error) {
	fixed := make([]byte, 16)
	if _, err := src.ReadAt(fixed, offset+8); err != nil {
		return nil, err
	}
	sb := &Superblock{Version: version, OffsetSize: fixed[5], LengthSize: fixed[6]}

	r := binpkg.NewReader(src, sb.ReaderConfig()).At(offset + 24)
	if version == 1 {
		// Indexed storage K and two reserved bytes.
		r.Skip(4)
	}
	var err error

	// Base, free-space info, end of file and driver info addresses.
	var addrs [4]uint64
	for i := range addrs {
		if addrs[i], err = r.ReadOffset(); err != nil {
			return nil, err
		}
	}
	sb.BaseAddress, sb.EOFAddress = addrs[0], addrs[2]

	// Root group symbol table entry: link name offset, object header
	// address, cache type, reserved word and a 16 byte scratch pad.
	if _, err := r.ReadOffset(); err != nil {
		return nil, err
	}
	if sb.RootGroupAddress, err = r.ReadOffset(); err != nil {
		return nil, err
	}
	cacheType, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	r.Skip(4)
	if cacheType == 1 {
		if sb.RootGroupBTreeAddress, err = r.ReadOffset(); err != nil {
			return nil, err
		}
		if sb.RootGroupLocalHeapAddress, err = r.ReadOffset(); err != nil {
			return nil, err
		}
	}
	return sb, nil
}

// readV2V3 parses a version 2 or 3 superblock starting at its signature
// and verifies the trailing lookup3 checksum.
func readV2V3(r *binpkg.Reader, offset int64) (*Superblock, error) {
	fixed, err := r.At(offset + 8).ReadBytes(4)
	if err != nil {
		return nil, err
	}
	sb := &Superblock{
		Version:              fixed[0],
		OffsetSize:           fixed[1],
		LengthSize:           fixed[2],
		FileConsistencyFlags: fixed[3],
	}

	body := 12 + 4*int(sb.OffsetSize)
	raw, err := r.At(offset).ReadBytes(body + 4)
	if err != nil {
		return nil, err
	}
	stored := uint32(raw[body]) | uint32(raw[body+1])<<8 | uint32(raw[body+2])<<16 | uint32(raw[body+3])<<24
	if binpkg.Lookup3Checksum(raw[:body]) != stored {
		return nil, ErrInvalidSuperblock
	}

	fields := []*uint64{&sb.BaseAddress, &sb.SuperblockExtensionAddress, &sb.EOFAddress, &sb.RootGroupAddress}
	for i, f := range fields {
		at := 12 + i*int(sb.OffsetSize)
		*f = decodeLE(raw[at : at+int(sb.OffsetSize)])
	}
	return sb, nil
}

func decodeLE(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
