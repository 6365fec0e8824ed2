package superblock

import (
	binpkg "github.com/robert-malhotra/go-uff/internal/binary"
)

// NewSuperblock returns a version 3 superblock with 8 byte offsets and
// lengths. Callers fill in the addresses before writing.
func NewSuperblock() *Superblock {
	return &Superblock{Version: 3, OffsetSize: 8, LengthSize: 8}
}

// Size is the encoded size of a version 2 or 3 superblock.
func (sb *Superblock) Size() int {
	o := int(sb.OffsetSize)
	if o == 0 {
		o = 8
	}
	return 12 + 4*o + 4
}

// Write encodes the superblock as version 2 or 3 at w's position and
// returns the number of bytes written. An unset extension address is
// written as undefined.
func (sb *Superblock) Write(w *binpkg.Writer) (int64, error) {
	version := sb.Version
	if version < 2 {
		version = 2
	}
	ext := sb.SuperblockExtensionAddress
	if ext == 0 {
		ext = w.UndefinedOffset()
	}

	o := w.OffsetSize()
	buf := make([]byte, 12, 12+4*o+4)
	copy(buf, Signature)
	buf[8], buf[9], buf[10], buf[11] = version, sb.OffsetSize, sb.LengthSize, sb.FileConsistencyFlags
	for _, v := range []uint64{sb.BaseAddress, ext, sb.EOFAddress, sb.RootGroupAddress} {
		buf = appendLE(buf, v, o)
	}
	buf = appendLE(buf, uint64(binpkg.Lookup3Checksum(buf)), 4)

	if err := w.WriteBytes(buf); err != nil {
		return 0, err
	}
	return int64(len(buf)), nil
}

func appendLE(b []byte, v uint64, n int) []byte {
	for i := 0; i < n; i++ {
		b = append(b, byte(v>>(8*i)))
	}
	return b
}
