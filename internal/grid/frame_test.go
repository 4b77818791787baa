package grid

import "testing"

func TestFrame_SetClamps(t *testing.T) {
	f := NewFrame(8, 8)

	f.Set(2, 3, 20)
	if got := f.At(2, 3); got != LevelMax {
		t.Errorf("At(2,3) = %d, want %d", got, LevelMax)
	}

	f.Set(2, 3, -5)
	if got := f.At(2, 3); got != LevelOff {
		t.Errorf("At(2,3) = %d, want %d", got, LevelOff)
	}

	// Out-of-bounds writes and reads are silent.
	f.Set(-1, 0, 10)
	f.Set(8, 0, 10)
	f.Set(0, 8, 10)
	if got := f.At(8, 8); got != LevelOff {
		t.Errorf("At(8,8) = %d, want %d", got, LevelOff)
	}
}

func TestFrame_Clear(t *testing.T) {
	f := NewFrame(4, 4)
	f.Set(1, 1, 7)
	f.Set(3, 2, 12)
	f.Clear()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if f.At(x, y) != LevelOff {
				t.Fatalf("At(%d,%d) = %d after Clear", x, y, f.At(x, y))
			}
		}
	}
}

func TestFrame_Clone(t *testing.T) {
	f := NewFrame(4, 4)
	f.Set(1, 2, 9)
	cp := f.Clone()
	f.Set(1, 2, 3)
	if got := cp.At(1, 2); got != 9 {
		t.Errorf("clone cell = %d, want 9", got)
	}
}

func TestFramePool(t *testing.T) {
	pool := NewFramePool(8, 8)

	f := pool.Get()
	if f.Width != 8 || f.Height != 8 {
		t.Fatalf("pool frame is %dx%d, want 8x8", f.Width, f.Height)
	}

	f.Set(0, 0, 15)
	pool.Put(f)

	got := pool.Get()
	if got.At(0, 0) != LevelOff {
		t.Errorf("reused frame not zeroed: At(0,0) = %d", got.At(0, 0))
	}

	// Wrong-size frames are rejected rather than poisoning the pool.
	pool.Put(NewFrame(16, 8))
	if f := pool.Get(); f.Width != 8 || f.Height != 8 {
		t.Errorf("pool returned %dx%d frame", f.Width, f.Height)
	}
}
