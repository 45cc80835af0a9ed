package govp9

import (
	"bytes"
	"testing"
)

func TestSplitSuperframe(t *testing.T) {
	a := []byte{0x82, 0x49, 0x83, 0x42, 0x00}
	b := bytes.Repeat([]byte{0x55}, 300)
	c := []byte{0x89}

	tests := []struct {
		name   string
		frames [][]byte
	}{
		{"single", [][]byte{a}},
		{"two", [][]byte{a, c}},
		{"two byte sizes", [][]byte{a, b, c}},
		{"eight", [][]byte{a, c, a, c, a, c, a, c}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := AppendSuperframe(nil, tt.frames...)
			got, err := SplitSuperframe(data)
			if err != nil {
				t.Fatalf("SplitSuperframe: %v", err)
			}
			if len(got) != len(tt.frames) {
				t.Fatalf("got %d frames, want %d", len(got), len(tt.frames))
			}
			for i := range got {
				if !bytes.Equal(got[i], tt.frames[i]) {
					t.Errorf("frame %d = %x, want %x", i, got[i], tt.frames[i])
				}
			}
		})
	}
}

func TestSplitSuperframeIndexLayout(t *testing.T) {
	data := AppendSuperframe(nil, []byte{1, 2, 3}, bytes.Repeat([]byte{9}, 256))
	// two frames, two-byte sizes: marker 0b110_01_001
	index := data[len(data)-6:]
	want := []byte{0xc9, 3, 0, 0, 1, 0xc9}
	if !bytes.Equal(index, want) {
		t.Errorf("index = %x, want %x", index, want)
	}
}

func TestSplitSuperframeNoIndex(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"plain", []byte{0x82, 0x49, 0x83}},
		// A marker-like last byte without the leading marker.
		{"lone marker", []byte{0x82, 0x05, 0x07, 0xc0}},
		{"short", []byte{0xc1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitSuperframe(tt.data)
			if err != nil {
				t.Fatalf("SplitSuperframe: %v", err)
			}
			if len(got) != 1 || !bytes.Equal(got[0], tt.data) {
				t.Errorf("got %x, want the input as one frame", got)
			}
		})
	}

	if got, err := SplitSuperframe(nil); err != nil || got != nil {
		t.Errorf("SplitSuperframe(nil) = %v, %v", got, err)
	}
}

func TestSplitSuperframeErrors(t *testing.T) {
	// Sizes 4 and 4 with only 5 payload bytes.
	data := []byte{1, 2, 3, 4, 5, 0xc1, 4, 4, 0xc1}
	if _, err := SplitSuperframe(data); err != ErrInvalidSuperframe {
		t.Errorf("err = %v, want ErrInvalidSuperframe", err)
	}
}

func TestSplitSuperframeDropsEmpty(t *testing.T) {
	data := []byte{7, 8, 0xc1, 0, 2, 0xc1}
	got, err := SplitSuperframe(data)
	if err != nil {
		t.Fatalf("SplitSuperframe: %v", err)
	}
	if len(got) != 1 || !bytes.Equal(got[0], []byte{7, 8}) {
		t.Errorf("got %x, want [0708]", got)
	}
}

func FuzzSplitSuperframe(f *testing.F) {
	f.Add([]byte{1, 2, 3, 4, 0xc1, 2, 2, 0xc1})
	f.Add([]byte{0xc0})
	f.Fuzz(func(t *testing.T, data []byte) {
		frames, err := SplitSuperframe(data)
		if err != nil {
			return
		}
		total := 0
		for _, fr := range frames {
			total += len(fr)
		}
		if total > len(data) {
			t.Fatalf("frames hold %d bytes of %d", total, len(data))
		}
	})
}
