package systems

import "testing"

func TestMorton_Bijection(t *testing.T) {
	// Full 16-bit round trip on both axes, striding one axis to keep the
	// test fast while still covering every value of each coordinate.
	for x := uint32(0); x <= 0xffff; x++ {
		gx, gy := MortonDecode(MortonEncode(x, x^0xffff))
		if gx != x || gy != x^0xffff {
			t.Fatalf("decode(encode(%d, %d)) = (%d, %d)", x, x^0xffff, gx, gy)
		}
	}
	for _, c := range [][2]uint32{{0, 0}, {1, 0}, {0, 1}, {65535, 65535}, {12345, 54321}} {
		gx, gy := MortonDecode(MortonEncode(c[0], c[1]))
		if gx != c[0] || gy != c[1] {
			t.Errorf("decode(encode(%d, %d)) = (%d, %d)", c[0], c[1], gx, gy)
		}
	}
}

func TestMorton_EncodeOrdering(t *testing.T) {
	// Z-order basics: the four cells of a 2x2 block are contiguous codes.
	want := []uint32{0, 1, 2, 3}
	got := []uint32{
		MortonEncode(0, 0),
		MortonEncode(1, 0),
		MortonEncode(0, 1),
		MortonEncode(1, 1),
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("code[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestCacheOrder_VisitsEveryCellOnce(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		c := NewCacheOrder()
		c.Enabled = enabled

		const rows, cols = 7, 13
		seen := map[[2]int]int{}
		c.Iterate(rows, cols, func(row, col int) {
			seen[[2]int{row, col}]++
		})

		if len(seen) != rows*cols {
			t.Fatalf("enabled=%v: visited %d cells, want %d", enabled, len(seen), rows*cols)
		}
		for cell, count := range seen {
			if count != 1 {
				t.Fatalf("enabled=%v: cell %v visited %d times", enabled, cell, count)
			}
		}
	}
}

func TestCacheOrder_EnabledWalksAscendingCodes(t *testing.T) {
	c := NewCacheOrder()
	c.Enabled = true

	last := int64(-1)
	c.Iterate(8, 8, func(row, col int) {
		code := int64(MortonEncode(uint32(col), uint32(row)))
		if code <= last {
			t.Fatalf("codes not ascending: %d after %d", code, last)
		}
		last = code
	})
}

func TestCacheOrder_RebuildMemoizes(t *testing.T) {
	c := NewCacheOrder()
	c.Enabled = true
	c.Rebuild(4, 4)
	first := c.order

	c.Rebuild(4, 4)
	if &c.order[0] != &first[0] {
		t.Error("Rebuild with unchanged shape rebuilt the ordering")
	}

	c.Rebuild(4, 8)
	if len(c.order) != 32 {
		t.Errorf("order length after reshape = %d, want 32", len(c.order))
	}
}
