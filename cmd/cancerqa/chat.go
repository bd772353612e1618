package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/cancerqa/internal/cli"
	"github.com/hyperjump/cancerqa/internal/models"
	"github.com/hyperjump/cancerqa/internal/session"
)

// askFunc answers one question, directly or through a server.
type askFunc func(ctx context.Context, question string) (models.MatchResult, error)

const chatBanner = `Women's cancer awareness chatbot. Ask in English or Bengali (বাংলা).
Commands: :history  :clear  :quit`

// chatLoop reads questions line by line from in until EOF or :quit. showTurns
// bounds how many turns :history prints.
func chatLoop(ctx context.Context, in io.Reader, out io.Writer, ask askFunc, hist *session.History, showTurns int) error {
	fmt.Fprintln(out, chatBanner)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			fmt.Fprintln(out, "Please enter a question.")
			continue
		case ":quit", ":exit", ":q":
			return nil
		case ":clear":
			hist.Clear()
			fmt.Fprintln(out, "History cleared.")
			continue
		case ":history":
			if err := cli.WriteHistory(out, hist.Recent(showTurns), hist.Len(), cli.OutputText); err != nil {
				return err
			}
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := ask(ctx, line)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		hist.Add(line, res)
		if err := cli.WriteAnswer(out, line, res, cli.OutputText); err != nil {
			return err
		}
	}
}
