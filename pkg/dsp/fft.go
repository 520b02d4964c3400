// ABOUTME: Radix-2 FFT implementation
// ABOUTME: Iterative Cooley-Tukey with bit-reversal permutation
package dsp

import (
	"math"
	"math/bits"
)

// FFT computes the discrete Fourier transform of x in place.
// len(x) must be a power of two.
func FFT(x []complex128) {
	n := len(x)
	if n <= 1 {
		return
	}

	// Bit-reversal permutation
	shift := 64 - uint(bits.TrailingZeros(uint(n)))
	for i := 0; i < n; i++ {
		j := int(bits.Reverse64(uint64(i)) >> shift)
		if j > i {
			x[i], x[j] = x[j], x[i]
		}
	}

	// Butterflies
	for size := 2; size <= n; size *= 2 {
		half := size / 2
		step := -2 * math.Pi / float64(size)
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				angle := step * float64(k)
				w := complex(math.Cos(angle), math.Sin(angle))
				even := x[start+k]
				odd := w * x[start+k+half]
				x[start+k] = even + odd
				x[start+k+half] = even - odd
			}
		}
	}
}

// NextPow2 returns the smallest power of two >= n
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// Spectrum computes the magnitude spectrum of samples, zero-padded to the
// next power of two. Only the first half (up to Nyquist) is returned.
func Spectrum(samples []float64) []float64 {
	n := NextPow2(len(samples))
	buf := make([]complex128, n)
	for i, s := range samples {
		buf[i] = complex(s, 0)
	}

	FFT(buf)

	mags := make([]float64, n/2)
	for i := range mags {
		mags[i] = cmplxAbs(buf[i])
	}
	return mags
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
