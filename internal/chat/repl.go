package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	welcomeBanner = "Welcome to the SQL Chatbot!\nNote: Using simplified response generation (no LLM for responses)\n"
	prompt        = "\nWhat do you want to ask? (type 'exit' to quit)\n> "
)

// Asker is the part of Service the interactive loop needs.
type Asker interface {
	Ask(ctx context.Context, question string) (Answer, error)
}

// REPL reads questions line by line from in and writes answers to out until
// the user types exit or quit, the input ends, or ctx is canceled.
func REPL(ctx context.Context, asker Asker, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	if _, err := io.WriteString(out, welcomeBanner); err != nil {
		return err
	}
	for {
		if _, err := io.WriteString(out, prompt); err != nil {
			return err
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read question: %w", err)
			}
			_, err := fmt.Fprintln(out, "\nGoodbye!")
			return err
		}
		question := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(question) {
		case "exit", "quit":
			_, err := fmt.Fprintln(out, "Goodbye!")
			return err
		case "":
			continue
		}

		answer, err := asker.Ask(ctx, question)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		writeAnswer(out, answer, err)
	}
}

func writeAnswer(out io.Writer, answer Answer, err error) {
	if answer.SQL != "" {
		fmt.Fprintf(out, "\nGenerated SQL Query:\n%s\n", answer.SQL)
	}
	if err != nil {
		fmt.Fprintf(out, "Error: %v\nPlease try again with a different question.\n", err)
		return
	}
	if answer.NoData {
		fmt.Fprintf(out, "\n%s\n", NoDataMessage)
		return
	}
	fmt.Fprintf(out, "\nAI Response:\n%s\n", answer.Response)
}
