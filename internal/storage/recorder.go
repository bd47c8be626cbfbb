package storage

import (
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/vec"
)

// Recorder is a sim.Observer that samples every Nth frame for Save.
type Recorder struct {
	every  int
	frames []FrameRecord
}

func NewRecorder(every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{every: every}
}

func (r *Recorder) OnFrame(f sim.Frame) {
	if f.Index%r.every != 0 {
		return
	}
	pos := make([]vec.Vector, len(f.State.Bodies))
	for i, b := range f.State.Bodies {
		pos[i] = b.Pos
	}
	r.frames = append(r.frames, FrameRecord{
		Time:      f.Time,
		Gravity:   f.State.Gravity,
		Energy:    f.State.KineticEnergy(),
		Positions: pos,
	})
}

func (r *Recorder) Frames() []FrameRecord { return r.frames }
