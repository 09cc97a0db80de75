// Package assessment holds small standalone text utilities: word frequency
// ranking, a flexible anagram check and a word-overlap similarity score.
package assessment

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var wordRE = regexp.MustCompile(`[a-z]+`)

// words lowercases text and returns its runs of ASCII letters. Digits and
// punctuation act as separators.
func words(text string) []string {
	return wordRE.FindAllString(strings.ToLower(text), -1)
}

// WordCount is one entry of a frequency ranking.
type WordCount struct {
	Word  string
	Count int
}

// TopWords returns the n most frequent words, most frequent first. Words with
// equal counts keep the order in which they first appear in text.
func TopWords(text string, n int) []WordCount {
	counts := make(map[string]int)
	var order []WordCount
	for _, w := range words(text) {
		if _, ok := counts[w]; !ok {
			order = append(order, WordCount{Word: w})
		}
		counts[w]++
	}
	for i := range order {
		order[i].Count = counts[order[i].Word]
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].Count > order[j].Count })
	if n >= 0 && n < len(order) {
		order = order[:n]
	}
	return order
}

// Top5Words is TopWords with n = 5.
func Top5Words(text string) []WordCount { return TopWords(text, 5) }

// FlexibleAnagram reports "YES" when a and b are anagrams up to one character,
// ignoring case:
//   - equal length: the strings may differ in one character (one swapped
//     out, one swapped in);
//   - lengths differ by one: every character of the shorter string must be
//     available in the longer one;
//   - otherwise "NO".
func FlexibleAnagram(a, b string) string {
	s1, s2 := []rune(strings.ToLower(a)), []rune(strings.ToLower(b))
	diff := len(s1) - len(s2)
	if diff < -1 || diff > 1 {
		return "NO"
	}
	c1, c2 := runeCounts(s1), runeCounts(s2)

	if diff == 0 {
		total := 0
		for r, n := range c1 {
			total += absInt(n - c2[r])
		}
		for r, n := range c2 {
			if _, ok := c1[r]; !ok {
				total += n
			}
		}
		if total <= 2 {
			return "YES"
		}
		return "NO"
	}

	longer, shorter := c1, c2
	if diff < 0 {
		longer, shorter = c2, c1
	}
	for r, n := range shorter {
		if longer[r] < n {
			return "NO"
		}
	}
	return "YES"
}

// TextSimilarity is 2|A∩B| / (|A|+|B|) over the sets of unique words of the
// two sentences, rounded to two decimals. Two wordless inputs score 0.
func TextSimilarity(sentence1, sentence2 string) float64 {
	a, b := wordSet(sentence1), wordSet(sentence2)
	if len(a)+len(b) == 0 {
		return 0
	}
	common := 0
	for w := range a {
		if _, ok := b[w]; ok {
			common++
		}
	}
	score := float64(2*common) / float64(len(a)+len(b))
	return round2(score)
}

// round2 rounds the exact binary value of x to two decimals, ties to even,
// so 0.125 becomes 0.12 and 0.625 becomes 0.62.
func round2(x float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		panic(err)
	}
	return v
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range words(s) {
		set[w] = struct{}{}
	}
	return set
}

func runeCounts(rs []rune) map[rune]int {
	m := make(map[rune]int, len(rs))
	for _, r := range rs {
		m[r]++
	}
	return m
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
