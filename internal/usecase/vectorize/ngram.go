package vectorize

// ngrams extracts every overlapping character n-gram for n in [minN, maxN]
// from a normalized string. Extraction order is fixed (all n-grams of length
// minN left to right, then minN+1, ...), which keeps first-seen vocabulary
// indices deterministic for a given corpus order. Operates on runes; spaces
// are part of the alphabet, so n-grams cross what were word boundaries.
func ngrams(s string, minN, maxN int) []string {
	runes := []rune(s)
	var out []string
	for n := minN; n <= maxN; n++ {
		if n > len(runes) {
			break
		}
		for i := 0; i+n <= len(runes); i++ {
			out = append(out, string(runes[i:i+n]))
		}
	}
	return out
}
