// Command simcheck prints how close guesses are to a secret word using the
// offline embedder, so operators can sanity check a model before deploying it.
//
// Usage:
//
//	simcheck [-models dir] [-model name] [secret guess...]
//
// Without arguments it reads "secret guess" pairs from stdin.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"

	"github.com/iamwavecut/guessbot/internal/adapters/llm/local"
	"github.com/iamwavecut/guessbot/internal/game"
	"github.com/iamwavecut/guessbot/internal/oracle"
)

func main() {
	modelsDir := flag.String("models", "models", "directory with downloaded models")
	modelName := flag.String("model", local.DefaultModel, "sentence encoder to load")
	vocabularyFile := flag.String("vocabulary", "", "word list, the embedded one when empty")
	debug := flag.Bool("debug", false, "log timings")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	logrus.SetLevel(logrus.WarnLevel)

	vocabulary, err := oracle.LoadVocabulary(*vocabularyFile)
	if err != nil {
		log.Fatal().Err(err).Msg("cant load vocabulary")
	}
	encoder, err := local.NewEncoder(*modelsDir, *modelName, logrus.WithField("context", "simcheck"))
	if err != nil {
		log.Fatal().Err(err).Str("model", *modelName).Msg("cant load model")
	}
	words, err := oracle.New(vocabulary, encoder, oracle.DefaultCacheSize)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	fn := func(text string) error {
		fields := strings.Fields(strings.ToLower(text))
		if len(fields) < 2 {
			log.Warn().Str("input", text).Msg("expected a secret word and at least one guess")
			return nil
		}
		secret := fields[0]
		for _, guess := range fields[1:] {
			start := time.Now()
			similarity, err := words.Similarity(context.Background(), secret, guess)
			if err != nil {
				return err
			}
			log.Debug().Dur("took", time.Since(start)).Str("guess", guess).Send()
			known := ""
			if !words.IsKnown(guess) {
				known = "\t(not in vocabulary)"
			}
			fmt.Printf("%s\t%s\t%s%s\n", secret, guess, game.ToPercent(similarity), known)
		}
		return nil
	}

	if flag.NArg() > 0 {
		err = fn(strings.Join(flag.Args(), " "))
	} else {
		err = ForEachInput(os.Stdin, fn)
	}
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

// ForEachInput calls the given callback function for each line of input.
func ForEachInput(r io.Reader, callback func(text string) error) error {
	scanner := bufio.NewScanner(r)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		text := scanner.Text()
		if text == "" {
			return nil
		}
		if err := callback(text); err != nil {
			return err
		}
	}
}
