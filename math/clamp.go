// SPDX-License-Identifier: GPL-2.0-or-later

package math

type Number interface {
	int64 | float64 | float32 | int
}

func Clamp[K Number](min, val, max K) K {
	if min > val {
		return min
	} else if max < val {
		return max
	}
	return val
}

// InRange reports whether val lies in [min-eps, max+eps].
func InRange[K Number](val, min, max, eps K) bool {
	return val+eps >= min && val-eps <= max
}
