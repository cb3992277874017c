package driver

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Peak is one Gaussian emission line of the simulated source.
type Peak struct {
	Center    float64 // nm
	Sigma     float64 // nm
	Amplitude float64 // counts at the reference integration time
	Jitter    float64 // half width of the uniform center drift per sample, nm
}

// Defaults for the simulated instrument.
const (
	DefaultPixels        = 2048
	DefaultWavelengthMin = 350.0
	DefaultWavelengthMax = 1000.0

	// referenceIntegration is the integration time (ms) at which peak
	// amplitudes are quoted.
	referenceIntegration = 10.0
	baseline             = 10.0
	noiseScale           = 2.0
)

// DefaultPeaks is a drifting main line at 600 nm plus a broad secondary line.
func DefaultPeaks() []Peak {
	return []Peak{
		{Center: 600, Sigma: 8, Amplitude: 100, Jitter: 0.5},
		{Center: 850, Sigma: 20, Amplitude: 40},
	}
}

// SimulatorConfig parameterizes a Simulator.
type SimulatorConfig struct {
	Pixels        int
	WavelengthMin float64
	WavelengthMax float64
	Peaks         []Peak
	// Seed for the noise source; 0 seeds from the clock.
	Seed uint64
}

// Simulator is a synthetic spectrometer producing noisy multi-peak spectra.
type Simulator struct {
	mu          sync.Mutex
	connected   bool
	wavelengths []float64
	peaks       []Peak
	src         rand.Source
}

// NewSimulator builds the fixed wavelength axis and the noise source.
func NewSimulator(cfg SimulatorConfig) *Simulator {
	if cfg.Pixels < 2 {
		cfg.Pixels = DefaultPixels
	}
	if cfg.WavelengthMax <= cfg.WavelengthMin {
		cfg.WavelengthMin, cfg.WavelengthMax = DefaultWavelengthMin, DefaultWavelengthMax
	}
	if cfg.Peaks == nil {
		cfg.Peaks = DefaultPeaks()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Simulator{
		wavelengths: floats.Span(make([]float64, cfg.Pixels), cfg.WavelengthMin, cfg.WavelengthMax),
		peaks:       append([]Peak(nil), cfg.Peaks...),
		src:         rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}
}

func (s *Simulator) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = true
	return nil
}

func (s *Simulator) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	return nil
}

func (s *Simulator) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Pixels returns the length of the wavelength axis.
func (s *Simulator) Pixels() int { return len(s.wavelengths) }

// Generate synthesizes one spectrum. Amplitudes scale linearly with the
// integration time, the noise standard deviation with its square root.
func (s *Simulator) Generate(integrationMs float64) (Spectrum, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return Spectrum{}, false
	}

	gain := integrationMs / referenceIntegration
	noise := distuv.Normal{Mu: 0, Sigma: noiseScale * math.Sqrt(math.Max(gain, 0)), Src: s.src}

	out := Spectrum{
		Wavelengths: append([]float64(nil), s.wavelengths...),
		Intensities: make([]float64, len(s.wavelengths)),
	}
	for i := range out.Intensities {
		out.Intensities[i] = baseline
		if noise.Sigma > 0 {
			out.Intensities[i] += noise.Rand()
		}
	}
	for _, p := range s.peaks {
		center := p.Center
		if p.Jitter > 0 {
			center += distuv.Uniform{Min: -p.Jitter, Max: p.Jitter, Src: s.src}.Rand()
		}
		height := p.Amplitude * gain
		for i, wl := range out.Wavelengths {
			z := (wl - center) / p.Sigma
			out.Intensities[i] += height * math.Exp(-0.5*z*z)
		}
	}
	return out, true
}

// Close disconnects the simulator.
func (s *Simulator) Close() error {
	return s.Disconnect()
}
