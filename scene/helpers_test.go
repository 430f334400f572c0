package scene_test

import "github.com/chewxy/math32"

func clampUnit(v float32) float32 {
	return math32.Max(-1, math32.Min(1, v))
}

func acos(v float32) float32 {
	return math32.Acos(v)
}
