package assessment

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	sampleTexts = []string{
		"The quick brown fox jumps over the lazy dog. The fox was very quick and very smart.",
		"Python is great. Python is powerful. Python is easy to learn. Java is also popular.",
	}

	sampleAnagrams = [][2]string{
		{"abcd", "abce"},
		{"abc", "abcd"},
		{"abc", "abxyz"},
		{"aabb", "abbb"},
		{"abc", "def"},
		{"listen", "silent"},
		{"hello", "helo"},
	}

	sampleSentences = [][2]string{
		{"Artificial intelligence is transforming the world.", "AI is changing the world."},
		{"Generative AI creates new content.", "AI models can generate text, images, or music."},
		{"Cats are lovely animals.", "Dogs are friendly pets."},
		{"Machine learning is a subset of AI.", "Machine learning uses algorithms to learn patterns."},
	}
)

// RunSamples prints every utility applied to the built-in sample inputs.
func RunSamples(w io.Writer) {
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "MACHINE LEARNING ENGINEER - CODING ASSESSMENT")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "QUESTION 1: Top 5 Most Frequent Words")
	fmt.Fprintln(w, rule)
	for _, text := range sampleTexts {
		fmt.Fprintf(w, "Input: %s\n", text)
		fmt.Fprintln(w, "Output:")
		fmt.Fprintln(w, "Top 5 Most Frequent Words:")
		fmt.Fprintln(w, strings.Repeat("-", 30))
		for _, wc := range Top5Words(text) {
			fmt.Fprintf(w, "%s %d\n", wc.Word, wc.Count)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "QUESTION 2: Flexible Anagram Checker")
	fmt.Fprintln(w, rule)
	for _, c := range sampleAnagrams {
		fmt.Fprintf(w, "Input: str1 = '%s', str2 = '%s'\n", c[0], c[1])
		fmt.Fprintf(w, "Output: %s\n\n", FlexibleAnagram(c[0], c[1]))
	}

	fmt.Fprintln(w, "QUESTION 3: Simple Text Similarity Score")
	fmt.Fprintln(w, rule)
	for _, c := range sampleSentences {
		fmt.Fprintf(w, "Input:\n  sentence1 = '%s'\n  sentence2 = '%s'\n", c[0], c[1])
		fmt.Fprintf(w, "Output: %s\n\n", formatScore(TextSimilarity(c[0], c[1])))
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "ASSESSMENT COMPLETE")
	fmt.Fprintln(w, rule)
}

// formatScore prints the shortest decimal form, keeping one fractional digit
// for whole numbers: 0.55, 1.0, 0.0.
func formatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
