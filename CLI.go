package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/Linux-Server/ML-Task/IO"
	"github.com/Linux-Server/ML-Task/bigram"
	"github.com/Linux-Server/ML-Task/params"
)

// ChatCLI reads one seed per line and prints maxNew sampled characters after
// it. Seeds with characters outside the vocabulary are reported and skipped.
func ChatCLI(in io.Reader, out io.Writer, model *bigram.Model, vocab params.Vocabulary, rng *rand.Rand, maxNew int) {
	reader := bufio.NewReader(in)
	fmt.Fprintln(out, "Type a seed and press enter. Type 'exit' to quit.")
	for {
		fmt.Fprint(out, "You: ")
		line, err := reader.ReadString('\n')
		seed := strings.TrimRight(line, "\r\n")
		if seed == "exit" || (seed == "" && err != nil) {
			return
		}
		if seed != "" {
			reply(out, model, vocab, rng, seed, maxNew)
		}
		if err != nil {
			return
		}
	}
}

func reply(out io.Writer, model *bigram.Model, vocab params.Vocabulary, rng *rand.Rand, seed string, maxNew int) {
	ids, err := IO.Encode(vocab, seed)
	if errors.Is(err, IO.ErrUnknownSymbol) {
		fmt.Fprintln(out, "Seed rejected:", err)
		return
	}
	gen, err := model.Generate(ids, maxNew, rng)
	if err != nil {
		fmt.Fprintln(out, "Error:", err)
		return
	}
	text, err := IO.Decode(vocab, gen)
	if err != nil {
		fmt.Fprintln(out, "Error:", err)
		return
	}
	fmt.Fprintln(out, "Bot:", text)
}
