package btree

import (
	"bytes"
	"testing"

	"github.com/robert-malhotra/go-uff/internal/binary"
)

func TestReadChunkBTreeInvalidSignature(t *testing.T) {
	// Create a buffer with invalid signature
	buf := bytes.NewBuffer(nil)
	buf.WriteString("XXXX") // Invalid signature

	r := binary.NewReader(bytes.NewReader(buf.Bytes()), binary.Config{
		OffsetSize: 8,
		LengthSize: 8,
	})

	_, err := ReadChunkIndex(r, 0, 2)
	if err == nil {
		t.Error("expected error for invalid signature")
	}
	if !bytes.Contains([]byte(err.Error()), []byte("invalid B-tree signature")) {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestReadChunkBTreeWrongNodeType(t *testing.T) {
	// Create a buffer with TREE signature but wrong node type (0 = group instead of 1 = chunk)
	buf := bytes.NewBuffer(nil)
	buf.WriteString("TREE")       // Valid signature
	buf.WriteByte(0)              // Node type 0 (group, not chunk)
	buf.WriteByte(0)              // Node level 0 (leaf)
	buf.Write([]byte{0, 0})       // Entries used = 0
	buf.Write(make([]byte, 16))   // Left/right siblings (8 bytes each)

	r := binary.NewReader(bytes.NewReader(buf.Bytes()), binary.Config{
		OffsetSize: 8,
		LengthSize: 8,
	})

	_, err := ReadChunkIndex(r, 0, 2)
	if err == nil {
		t.Error("expected error for wrong node type")
	}
	if !bytes.Contains([]byte(err.Error()), []byte("unexpected B-tree node type")) {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestGroupEntryStruct(t *testing.T) {
	// Test GroupEntry structure
	entry := GroupEntry{
		Name:          "test_dataset",
		ObjectAddress: 12345,
		LinkType:      0,
		SoftLinkValue: "",
	}

	if entry.Name != "test_dataset" {
		t.Errorf("unexpected name: %s", entry.Name)
	}
	if entry.ObjectAddress != 12345 {
		t.Errorf("unexpected address: %d", entry.ObjectAddress)
	}

	// Test soft link entry
	softEntry := GroupEntry{
		Name:          "soft_link",
		ObjectAddress: 0,
		LinkType:      1,
		SoftLinkValue: "/target/path",
	}

	if softEntry.LinkType != 1 {
		t.Errorf("expected link type 1, got %d", softEntry.LinkType)
	}
	if softEntry.SoftLinkValue != "/target/path" {
		t.Errorf("unexpected soft link value: %s", softEntry.SoftLinkValue)
	}
}

func TestChunkEntryStruct(t *testing.T) {
	entry := ChunkEntry{
		Offset:     []uint64{100, 200, 300},
		FilterMask: 0x3, // Filters 0 and 1 skipped
		Size:       1024,
		Address:    8192,
	}

	if len(entry.Offset) != 3 {
		t.Errorf("expected 3 dimensions, got %d", len(entry.Offset))
	}
	if entry.Offset[0] != 100 || entry.Offset[1] != 200 || entry.Offset[2] != 300 {
		t.Errorf("unexpected offsets: %v", entry.Offset)
	}
	if entry.FilterMask != 0x3 {
		t.Errorf("expected filter mask 3, got %d", entry.FilterMask)
	}
	if entry.Size != 1024 {
		t.Errorf("expected size 1024, got %d", entry.Size)
	}
	if entry.Address != 8192 {
		t.Errorf("expected address 8192, got %d", entry.Address)
	}
}

func TestReadGroupEntriesInvalidSignature(t *testing.T) {
	// Create a buffer with invalid B-tree signature
	buf := bytes.NewBuffer(nil)
	buf.WriteString("XXXX") // Invalid signature

	r := binary.NewReader(bytes.NewReader(buf.Bytes()), binary.Config{
		OffsetSize: 8,
		LengthSize: 8,
	})

	_, err := ReadGroupEntries(r, 0, nil)
	if err == nil {
		t.Error("expected error for invalid signature")
	}
}
