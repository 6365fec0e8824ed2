package binary

import "testing"

func TestLookup3Checksum(t *testing.T) {
	if got := Lookup3Checksum(nil); got != 0xdeadbeef {
		t.Errorf("empty input: 0x%08x, want 0xdeadbeef", got)
	}

	// Every length around the 12 byte block boundary hashes differently.
	seen := make(map[uint32]int)
	for n := 0; n <= 25; n++ {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i + 1)
		}
		sum := Lookup3Checksum(data)
		if prev, ok := seen[sum]; ok {
			t.Errorf("lengths %d and %d collide: 0x%08x", prev, n, sum)
		}
		seen[sum] = n
		if again := Lookup3Checksum(data); again != sum {
			t.Errorf("length %d not stable: 0x%08x then 0x%08x", n, sum, again)
		}
	}
}

func TestFletcher32(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want uint32
	}{
		{"empty", nil, 0},
		{"one word", []byte{0x01, 0x02}, 0x02010201},
		{"odd length", []byte{0x01, 0x02, 0x03}, 0x04050204},
	}
	for _, tt := range tests {
		if got := Fletcher32(tt.in); got != tt.want {
			t.Errorf("%s: 0x%08x, want 0x%08x", tt.name, got, tt.want)
		}
	}
	if Fletcher32([]byte{1, 2, 3}) != Fletcher32([]byte{1, 2, 3, 0}) {
		t.Error("odd input is not zero padded")
	}
}
