// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Brings arbitrary-rate recordings to the detector's configured rate
package resample

// Resampler performs linear interpolation to convert between sample rates
type Resampler struct {
	inputRate  int
	outputRate int
	ratio      float64
	position   float64

	// Input not yet consumed, carried into the next Resample call
	pending []float32
}

// New creates a new mono resampler
func New(inputRate, outputRate int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		ratio:      float64(inputRate) / float64(outputRate),
		position:   0.0,
	}
}

// Resample converts input samples to the output rate using linear interpolation.
// Returns the number of output samples produced. Input that does not fit the
// output buffer is held and consumed by the next call.
func (r *Resampler) Resample(input []float32, output []float32) int {
	buf := input
	if len(r.pending) > 0 {
		buf = append(r.pending, input...)
	}
	if len(buf) < 2 {
		r.pending = append([]float32(nil), buf...)
		return 0
	}

	outIdx := 0
	for outIdx < len(output) {
		inputPos := r.position
		inputIdx := int(inputPos)

		if inputIdx >= len(buf)-1 {
			break
		}

		frac := inputPos - float64(inputIdx)
		s1 := float64(buf[inputIdx])
		s2 := float64(buf[inputIdx+1])
		output[outIdx] = float32(s1*(1.0-frac) + s2*frac)

		outIdx++
		r.position += r.ratio
	}

	// Carry unconsumed samples and the fractional position into the next
	// chunk; the loop may have stopped on a full output buffer
	consumed := int(r.position)
	if consumed > len(buf) {
		consumed = len(buf)
	}
	r.position -= float64(consumed)
	r.pending = append([]float32(nil), buf[consumed:]...)

	return outIdx
}

// Convert resamples a whole buffer at once, allocating the output
func Convert(input []float32, inputRate, outputRate int) []float32 {
	if inputRate == outputRate || len(input) == 0 {
		out := make([]float32, len(input))
		copy(out, input)
		return out
	}

	r := New(inputRate, outputRate)
	output := make([]float32, r.OutputSamplesNeeded(len(input)))
	n := r.Resample(input, output)
	return output[:n]
}

// Reset resets the resampler state
func (r *Resampler) Reset() {
	r.position = 0.0
	r.pending = nil
}

// OutputSamplesNeeded calculates how many output samples input samples will produce
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	return int(float64(inputSamples) / r.ratio)
}

// InputSamplesNeeded calculates how many input samples produce outputSamples
func (r *Resampler) InputSamplesNeeded(outputSamples int) int {
	return int(float64(outputSamples) * r.ratio)
}
