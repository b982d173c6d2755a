// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 scales x by 32768, rounds to the nearest integer and
// saturates to the int16 range. NaN maps to 0.
func Float32ToInt16(x float32) int16 {
	v := math.Round(float64(x) * 32768.0)

	switch {
	case math.IsNaN(v):
		return 0
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}

	return int16(v)
}

// Int16ToFloat32 maps a 16-bit sample onto [-1, 1).
func Int16ToFloat32(s int16) float32 {
	return float32(s) / 32768.0
}
