package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/Linux-Server/ML-Task/IO"
	"github.com/Linux-Server/ML-Task/assessment"
	"github.com/Linux-Server/ML-Task/bigram"
	"github.com/Linux-Server/ML-Task/params"
	"github.com/Linux-Server/ML-Task/train"
)

var (
	inputPath  string
	exportPath string
	importPath string
	cliFlag    bool
	assessFlag bool
)

func init() {
	flag.StringVar(&inputPath, "input", params.Config.InputPath, "Training corpus (UTF-8 text)")
	flag.StringVar(&exportPath, "export-vocab", "", "Also write the vocabulary as JSON to this path")
	flag.StringVar(&importPath, "import-vocab", "", "Use the vocabulary stored at this path instead of building one from the corpus")
	flag.BoolVar(&cliFlag, "cli", false, "After training, read seed text from stdin and print continuations")
	flag.BoolVar(&assessFlag, "assess", false, "Print the text-utility sample runs and exit")
}

func main() {
	flag.Parse()

	if assessFlag {
		assessment.RunSamples(os.Stdout)
		return
	}

	cfg := params.Config
	cfg.InputPath = inputPath
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))

	text, err := IO.ReadCorpus(cfg.InputPath)
	if err != nil {
		panic(err)
	}
	vocab, err := IO.VocabFor(text, importPath)
	if err != nil {
		panic(err)
	}
	if exportPath != "" {
		if err := IO.ExportVocabJSON(vocab, exportPath); err != nil {
			panic(err)
		}
		fmt.Printf("Exported vocab (%d symbols) to %s\n", vocab.Size(), exportPath)
	}

	data, err := IO.Encode(vocab, text)
	if err != nil {
		panic(err)
	}
	trainData, valData, err := IO.SplitCorpus(data, cfg.TrainFrac)
	if err != nil {
		panic(err)
	}

	model, err := bigram.New(vocab.Size(), rng)
	if err != nil {
		panic(err)
	}
	trainer, err := train.New(model, trainData, valData, cfg, rng, os.Stdout)
	if err != nil {
		panic(err)
	}
	if err := trainer.Run(); err != nil {
		panic(err)
	}

	ids, err := model.Generate([]int{0}, cfg.MaxNewTokens, rng)
	if err != nil {
		panic(err)
	}
	sample, err := IO.Decode(vocab, ids)
	if err != nil {
		panic(err)
	}
	fmt.Println(sample)

	if cliFlag {
		ChatCLI(os.Stdin, os.Stdout, model, vocab, rng, cfg.MaxNewTokens)
	}
}
