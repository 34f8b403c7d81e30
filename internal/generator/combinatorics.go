package generator

import "strings"

// Arrangements emits every ordered arrangement of every unordered subset of
// words with size between minSize and maxSize inclusive, joined with sep.
// Arrangements are produced lazily through the channel so callers never hold
// the full cross product in memory; the channel is closed once exhausted.
func Arrangements(words []string, minSize, maxSize int, sep string) <-chan string {
	out := make(chan string, 256)

	go func() {
		defer close(out)
		uniq := dedupeWords(words)
		if minSize < 1 {
			minSize = 1
		}
		if maxSize > len(uniq) {
			maxSize = len(uniq)
		}
		for size := minSize; size <= maxSize; size++ {
			combo := make([]string, 0, size)
			chooseRec(uniq, 0, size, combo, func(chosen []string) {
				perm := make([]string, 0, len(chosen))
				used := make([]bool, len(chosen))
				permuteRec(chosen, used, perm, sep, out)
			})
		}
	}()

	return out
}

// chooseRec walks index-ordered subsets of size k starting at from.
func chooseRec(words []string, from, k int, current []string, visit func([]string)) {
	if k == 0 {
		visit(current)
		return
	}
	for i := from; i <= len(words)-k; i++ {
		current = append(current, words[i])
		chooseRec(words, i+1, k-1, current, visit)
		current = current[:len(current)-1]
	}
}

func permuteRec(chosen []string, used []bool, current []string, sep string, out chan<- string) {
	if len(current) == len(chosen) {
		out <- strings.Join(current, sep)
		return
	}
	for i, w := range chosen {
		if used[i] {
			continue
		}
		used[i] = true
		current = append(current, w)
		permuteRec(chosen, used, current, sep, out)
		current = current[:len(current)-1]
		used[i] = false
	}
}

func dedupeWords(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, w := range in {
		w = strings.TrimSpace(strings.ToLower(w))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
