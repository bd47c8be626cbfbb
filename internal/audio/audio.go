package audio

import (
	"io"
	"math"
	"math/cmplx"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/bounce/internal/sim"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	maxVoices = 16
)

// Processor turns simulation frames into sound: a pad whose filter opens with
// kinetic energy, plus a short click for every wall hit. The portaudio
// callback only reads the mailbox fields under mu; it never sees sim.State.
type Processor struct {
	stream *portaudio.Stream
	logger *log.Logger

	mu        sync.Mutex
	energy    float64
	reference float64
	clicks    int
	levels    Levels

	// Owned by the audio callback.
	time         float64
	energySmooth float64
	filter       [2]float64
	delay        [2][]float64
	delayHead    int
	voices       []voice
	mono         []complex128
	maxLevel     float64

	active bool
}

// Levels is the smoothed band energy of the generated output, 0..1.
type Levels struct {
	Bass, Mid, High float64
}

type voice struct {
	freq float64
	age  float64
}

// G minor pentatonic, two octaves.
var clickScale = []float64{392.00, 466.16, 523.25, 587.33, 698.46, 783.99, 932.33, 1046.50, 1174.66, 1396.91}

func NewProcessor(logger *log.Logger) *Processor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	delayLen := int(float64(SampleRate) * 0.45)
	return &Processor{
		logger:   logger,
		delay:    [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
		mono:     make([]complex128, BufferSize),
		maxLevel: 0.1,
	}
}

func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.ProcessAudio)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	a.stream = stream
	a.active = true
	a.logger.Info("audio started", "rate", SampleRate, "buffer", BufferSize)
	return nil
}

func (a *Processor) Stop() {
	if !a.active {
		return
	}
	if err := a.stream.Stop(); err != nil {
		a.logger.Warn("audio stop", "err", err)
	}
	a.stream.Close()
	portaudio.Terminate()
	a.active = false
	a.logger.Debug("audio stopped")
}

func (a *Processor) Active() bool { return a.active }

// OnFrame feeds the mailbox; it makes Processor a sim.Observer.
func (a *Processor) OnFrame(f sim.Frame) {
	hits := 0
	for _, h := range f.Hits {
		hits += h.Count()
	}
	a.UpdatePhysics(f.State.KineticEnergy(), hits)
}

// UpdatePhysics records the latest energy and queues hit clicks. The first
// non-zero energy becomes the reference the pad is scaled against.
func (a *Processor) UpdatePhysics(energy float64, hits int) {
	a.mu.Lock()
	a.energy = energy
	if a.reference == 0 && energy > 0 {
		a.reference = energy
	}
	a.clicks += hits
	a.mu.Unlock()
}

func (a *Processor) Levels() Levels {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.levels
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// One-pole low pass.
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

func (a *Processor) ProcessAudio(out [][]float32) {
	a.mu.Lock()
	energy, ref, clicks := a.energy, a.reference, a.clicks
	a.clicks = 0
	a.mu.Unlock()

	ratio := 0.0
	if ref > 0 {
		ratio = energy / ref
	}
	for i := 0; i < clicks && len(a.voices) < maxVoices; i++ {
		note := clickScale[(len(a.voices)+int(a.time*7))%len(clickScale)]
		a.voices = append(a.voices, voice{freq: note})
	}

	// Gm7 add9
	freqs := []float64{98.00, 116.54, 146.83, 174.61, 220.00}
	a.energySmooth = a.energySmooth*0.995 + ratio*0.005
	cutoff := 300.0 + math.Min(a.energySmooth*600.0, 900.0)
	dt := 1.0 / float64(SampleRate)
	vol := 0.25

	for i := 0; i < len(out[0]); i++ {
		sampleL, sampleR := 0.0, 0.0
		g := 1.0 / float64(len(freqs))
		for j, f := range freqs {
			lfo := math.Sin(a.time*0.2 + float64(j))
			sampleL += triangle(a.time*f*0.999) * g * (0.7 + 0.3*lfo)
			sampleR += triangle(a.time*f*1.001) * g * (0.7 + 0.3*lfo)
		}

		a.filter[0] = lpf(sampleL, cutoff, dt, a.filter[0])
		a.filter[1] = lpf(sampleR, cutoff, dt, a.filter[1])

		click := 0.0
		for k := range a.voices {
			v := &a.voices[k]
			click += math.Sin(2*math.Pi*v.freq*v.age) * math.Exp(-v.age*30) * 0.3
			v.age += dt
		}

		delayL := a.delay[0][a.delayHead]
		delayR := a.delay[1][a.delayHead]
		mixL := a.filter[0] + click + delayL*0.3 + delayR*0.1
		mixR := a.filter[1] + click + delayR*0.3 + delayL*0.1
		a.delay[0][a.delayHead] = mixL * 0.6
		a.delay[1][a.delayHead] = mixR * 0.6
		a.delayHead = (a.delayHead + 1) % len(a.delay[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)
		if i < len(a.mono) {
			window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(len(a.mono)-1)))
			a.mono[i] = complex((mixL+mixR)*0.5*window, 0)
		}

		a.time += dt
	}

	live := a.voices[:0]
	for _, v := range a.voices {
		if v.age < 0.25 {
			live = append(live, v)
		}
	}
	a.voices = live

	a.meter()
}

// meter runs an FFT over the last output block and smooths three bands.
func (a *Processor) meter() {
	spectrum := fft.FFT(a.mono)

	bassSum, midSum, highSum := 0.0, 0.0, 0.0
	for i := 0; i < len(spectrum)/2; i++ {
		mag := cmplx.Abs(spectrum[i])
		switch {
		case i < 5:
			bassSum += mag
		case i < 46:
			midSum += mag
		case i < 460:
			highSum += mag
		}
	}

	peak := math.Max(bassSum/100.0, math.Max(midSum/500.0, highSum/1000.0))
	if peak > a.maxLevel {
		a.maxLevel = peak
	} else {
		a.maxLevel *= 0.999
	}
	gain := 1.0
	if a.maxLevel > 0.001 {
		gain = math.Min(1.0/a.maxLevel, 50.0)
	}

	a.mu.Lock()
	l := &a.levels
	l.Bass = l.Bass*0.9 + math.Min(bassSum/100.0*gain, 1.0)*0.1
	l.Mid = l.Mid*0.9 + math.Min(midSum/500.0*gain, 1.0)*0.1
	l.High = l.High*0.9 + math.Min(highSum/1000.0*gain, 1.0)*0.1
	a.mu.Unlock()
}
