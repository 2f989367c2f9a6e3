package agent

// IsRepeating reports whether the current batch of tool calls repeats
// the batch issued two rounds earlier. Only tool names are compared,
// pairwise: same length, same name at every position. Argument values
// are ignored, so a model re-running the same tools with cosmetic
// argument changes still trips the detector. Needs at least two
// recorded batches before it can fire.
func IsRepeating(current []string, history [][]string) bool {
	if len(current) == 0 || len(history) < 2 {
		return false
	}
	prior := history[len(history)-2]
	if len(prior) != len(current) {
		return false
	}
	for i := range current {
		if current[i] != prior[i] {
			return false
		}
	}
	return true
}
