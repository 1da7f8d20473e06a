// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Interpolates interleaved int16 frames between arbitrary rates

package resample

// Resampler performs linear interpolation to convert between sample rates.
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
}

// New creates a new resampler.
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
	}
}

// Resample converts a whole interleaved sample slice from the input rate
// to the output rate. When the rates match the input is returned as is.
func (r *Resampler) Resample(input []int16) []int16 {
	if r.inputRate == r.outputRate || len(input) == 0 {
		return input
	}

	inputFrames := len(input) / r.channels
	if inputFrames == 0 {
		return nil
	}
	outputFrames := int(float64(inputFrames) * float64(r.outputRate) / float64(r.inputRate))
	output := make([]int16, outputFrames*r.channels)

	for outIdx := 0; outIdx < outputFrames; outIdx++ {
		inputPos := float64(outIdx) * r.ratio
		inputIdx := int(inputPos)
		if inputIdx >= inputFrames-1 {
			// Past the last interpolatable frame: hold the final sample.
			for ch := 0; ch < r.channels; ch++ {
				output[outIdx*r.channels+ch] = input[(inputFrames-1)*r.channels+ch]
			}
			continue
		}

		frac := inputPos - float64(inputIdx)
		for ch := 0; ch < r.channels; ch++ {
			sample1 := input[inputIdx*r.channels+ch]
			sample2 := input[(inputIdx+1)*r.channels+ch]
			interpolated := float64(sample1)*(1.0-frac) + float64(sample2)*frac
			output[outIdx*r.channels+ch] = int16(interpolated)
		}
	}

	return output
}
