package IO

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Linux-Server/ML-Task/params"
)

var (
	ErrEmptyCorpus   = errors.New("corpus is empty")
	ErrUnknownSymbol = errors.New("unknown symbol")
	ErrUnknownID     = errors.New("unknown token id")
)

// BuildVocab collects the distinct characters of text, sorted by code point.
func BuildVocab(text string) (params.Vocabulary, error) {
	if text == "" {
		return params.Vocabulary{}, ErrEmptyCorpus
	}
	seen := make(map[rune]struct{}, 128)
	for _, r := range text {
		seen[r] = struct{}{}
	}
	idToToken := make([]rune, 0, len(seen))
	for r := range seen {
		idToToken = append(idToToken, r)
	}
	slices.Sort(idToToken)

	tok2id := make(map[rune]int, len(idToToken))
	for i, r := range idToToken {
		tok2id[r] = i
	}
	return params.Vocabulary{TokenToID: tok2id, IDToToken: idToToken}, nil
}

// VocabLookup returns the code for r or an ErrUnknownSymbol error.
func VocabLookup(v params.Vocabulary, r rune) (int, error) {
	if id, ok := v.TokenToID[r]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownSymbol, r)
}

// Encode maps every character of s to its code.
func Encode(v params.Vocabulary, s string) ([]int, error) {
	out := make([]int, 0, len(s))
	for off, r := range s {
		id, err := VocabLookup(v, r)
		if err != nil {
			return nil, fmt.Errorf("encode at byte %d: %w", off, err)
		}
		out = append(out, id)
	}
	return out, nil
}

// Decode is the inverse of Encode.
func Decode(v params.Vocabulary, ids []int) (string, error) {
	var sb strings.Builder
	sb.Grow(len(ids))
	for i, id := range ids {
		if id < 0 || id >= len(v.IDToToken) {
			return "", fmt.Errorf("decode at position %d: %w %d (vocab size %d)", i, ErrUnknownID, id, len(v.IDToToken))
		}
		sb.WriteRune(v.IDToToken[id])
	}
	return sb.String(), nil
}
