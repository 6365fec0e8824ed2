package superblock

import (
	"encoding/binary"
	"testing"

	binpkg "github.com/robert-malhotra/go-uff/internal/binary"
)

// memFile is a growable in-memory io.ReaderAt and io.WriterAt.
type memFile []byte

func (m memFile) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(m)) {
		return 0, nil
	}
	return copy(p, m[off:]), nil
}

func (m *memFile) WriteAt(p []byte, off int64) (int, error) {
	if end := int(off) + len(p); end > len(*m) {
		*m = append(*m, make([]byte, end-len(*m))...)
	}
	return copy((*m)[off:], p), nil
}

func writeAt(t *testing.T, sb *Superblock, offset int64) memFile {
	t.Helper()
	var f memFile
	cfg := sb.ReaderConfig()
	n, err := sb.Write(binpkg.NewWriter(&f, cfg).At(offset))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if int(n) != sb.Size() {
		t.Fatalf("Write returned %d bytes, Size says %d", n, sb.Size())
	}
	return append(f, make([]byte, 64)...)
}

func TestReadNotHDF5(t *testing.T) {
	if _, err := Read(make(memFile, 4096)); err != ErrNotHDF5 {
		t.Errorf("expected ErrNotHDF5, got %v", err)
	}
}

func TestReadUnsupportedVersion(t *testing.T) {
	data := make(memFile, 256)
	copy(data, Signature)
	data[8] = 99
	if _, err := Read(data); err != ErrUnsupportedVersion {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestWriteThenRead(t *testing.T) {
	tests := []struct {
		name   string
		size   uint8
		offset int64
	}{
		{"8 byte offsets", 8, 0},
		{"4 byte offsets", 4, 0},
		{"after user block", 8, 512},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := NewSuperblock()
			sb.OffsetSize, sb.LengthSize = tt.size, tt.size
			sb.EOFAddress = 0x4000
			sb.RootGroupAddress = 0x30

			got, err := Read(writeAt(t, sb, tt.offset))
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if got.Version != 3 {
				t.Errorf("version: got %d, want 3", got.Version)
			}
			if got.FileOffset != tt.offset {
				t.Errorf("file offset: got %d, want %d", got.FileOffset, tt.offset)
			}
			if got.OffsetSize != tt.size || got.LengthSize != tt.size {
				t.Errorf("sizes: got %d/%d, want %d", got.OffsetSize, got.LengthSize, tt.size)
			}
			if got.EOFAddress != 0x4000 || got.RootGroupAddress != 0x30 {
				t.Errorf("addresses: eof 0x%x root 0x%x", got.EOFAddress, got.RootGroupAddress)
			}
			undef := uint64(1)<<(8*uint(tt.size)) - 1
			if tt.size == 8 {
				undef = ^uint64(0)
			}
			if got.SuperblockExtensionAddress != undef {
				t.Errorf("extension address: got 0x%x, want undefined", got.SuperblockExtensionAddress)
			}
		})
	}
}

func TestReadChecksumMismatch(t *testing.T) {
	sb := NewSuperblock()
	sb.RootGroupAddress = 0x30
	data := writeAt(t, sb, 0)
	data[20] ^= 0xff

	if _, err := Read(data); err != ErrInvalidSuperblock {
		t.Errorf("expected ErrInvalidSuperblock, got %v", err)
	}
}

// v0Superblock lays out a version 0 or 1 superblock with 4 byte offsets.
func v0Superblock(version uint8, cacheType uint32) memFile {
	data := make(memFile, 256)
	copy(data, Signature)
	data[8] = version
	data[13], data[14] = 4, 4
	pos := 24
	if version == 1 {
		pos += 4
	}
	le := binary.LittleEndian
	le.PutUint32(data[pos+8:], 0x2000) // end of file
	entry := pos + 16
	le.PutUint32(data[entry+4:], 0x60) // object header
	le.PutUint32(data[entry+8:], cacheType)
	le.PutUint32(data[entry+16:], 0x88) // B-tree
	le.PutUint32(data[entry+20:], 0x2a0)
	return data
}

func TestReadV0V1(t *testing.T) {
	for _, version := range []uint8{0, 1} {
		sb, err := Read(v0Superblock(version, 1))
		if err != nil {
			t.Fatalf("version %d: %v", version, err)
		}
		if sb.Version != version || sb.OffsetSize != 4 {
			t.Errorf("version %d: got version %d offset size %d", version, sb.Version, sb.OffsetSize)
		}
		if sb.EOFAddress != 0x2000 || sb.RootGroupAddress != 0x60 {
			t.Errorf("version %d: eof 0x%x root 0x%x", version, sb.EOFAddress, sb.RootGroupAddress)
		}
		if sb.RootGroupBTreeAddress != 0x88 || sb.RootGroupLocalHeapAddress != 0x2a0 {
			t.Errorf("version %d: cached btree 0x%x heap 0x%x", version, sb.RootGroupBTreeAddress, sb.RootGroupLocalHeapAddress)
		}
	}
}

func TestReadV0WithoutCachedSymbolTable(t *testing.T) {
	sb, err := Read(v0Superblock(0, 0))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if sb.RootGroupBTreeAddress != 0 || sb.RootGroupLocalHeapAddress != 0 {
		t.Errorf("expected no cached addresses, got 0x%x 0x%x", sb.RootGroupBTreeAddress, sb.RootGroupLocalHeapAddress)
	}
}
