package serialosc

import (
	"github.com/hypebeast/go-osc/osc"

	"github.com/johnmatter/gridui/internal/grid"
)

func allDark(f *grid.Frame) bool {
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if f.At(x, y) != 0 {
				return false
			}
		}
	}
	return true
}

// quadMessages splits a frame into 8x8 level maps, one message per
// quad in row-major quad order. Arguments are the quad offset followed
// by 64 levels, rows first, as the level/map call expects.
func quadMessages(prefix string, f *grid.Frame) []*osc.Message {
	var msgs []*osc.Message
	for yoff := 0; yoff < f.Height; yoff += 8 {
		for xoff := 0; xoff < f.Width; xoff += 8 {
			msg := osc.NewMessage(prefix + "/grid/led/level/map")
			msg.Append(int32(xoff))
			msg.Append(int32(yoff))
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					msg.Append(int32(f.At(xoff+x, yoff+y)))
				}
			}
			msgs = append(msgs, msg)
		}
	}
	return msgs
}
