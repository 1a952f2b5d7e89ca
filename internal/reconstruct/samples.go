package reconstruct

import "math"

// floorFrame converts seconds to a frame index by truncating toward negative
// infinity.
func floorFrame(seconds float64, sampleRate int) int {
	return int(math.Floor(float64(sampleRate) * seconds))
}

// roundFrame converts seconds to the nearest frame index.
func roundFrame(seconds float64, sampleRate int) int {
	return int(math.Round(seconds * float64(sampleRate)))
}
