package driver

import "gonum.org/v1/gonum/floats"

// Device defines the instrument contract the acquisition loop drives.
type Device interface {
	Connect() error
	Disconnect() error
	Connected() bool
	// Generate returns one sample for the given integration time in ms.
	// ok is false when the device is not connected.
	Generate(integrationMs float64) (s Spectrum, ok bool)
	Close() error
}

// Spectrum is one intensity-vs-wavelength reading.
type Spectrum struct {
	Wavelengths []float64 // nm, strictly increasing
	Intensities []float64 // counts
}

// Len returns the number of pixels in the sample.
func (s Spectrum) Len() int {
	if len(s.Wavelengths) < len(s.Intensities) {
		return len(s.Wavelengths)
	}
	return len(s.Intensities)
}

// Empty reports whether the sample carries no points.
func (s Spectrum) Empty() bool { return s.Len() == 0 }

// WavelengthExtent returns the first and last wavelength.
func (s Spectrum) WavelengthExtent() (float64, float64) {
	n := s.Len()
	if n == 0 {
		return 0, 0
	}
	return s.Wavelengths[0], s.Wavelengths[n-1]
}

// IntensityExtent returns the smallest and largest intensity.
func (s Spectrum) IntensityExtent() (float64, float64) {
	n := s.Len()
	if n == 0 {
		return 0, 0
	}
	return floats.Min(s.Intensities[:n]), floats.Max(s.Intensities[:n])
}
