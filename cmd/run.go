package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	commands "github.com/aria-assistant/cli/internal/commands"
	domain "github.com/aria-assistant/cli/internal/domain"
	services "github.com/aria-assistant/cli/internal/services"
)

var runCmd = &cobra.Command{
	Use:   "run [command text]",
	Short: "Run a single assistant command, or start the interactive loop",
	Long: `With arguments, submits them as one command and prints the result:

  aria run open firefox
  aria run "cpu usage"

Without arguments, reads commands line by line from stdin until EOF or
interrupt. Submissions are serialized: each result is printed before the
next prompt.`,
	RunE: runAssistant,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runAssistant(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := commands.DefaultRegistry()
	executor := services.NewTaskExecutor(cfg, GetVersionInfo())
	dispatcher := services.NewDispatcher(cfg, registry, executor)
	defer dispatcher.Shutdown(context.Background())

	if len(args) > 0 {
		return submitAndWait(ctx, dispatcher, strings.Join(args, " "))
	}

	return interactiveLoop(ctx, dispatcher)
}

// submitAndWait submits one command and blocks until its terminal event
// arrives. The dispatcher delivers exactly one event per submission, so with
// serialized submissions the next event is always ours.
func submitAndWait(ctx context.Context, dispatcher *services.Dispatcher, text string) error {
	dispatcher.Submit(ctx, text)

	select {
	case event := <-dispatcher.Completions():
		fmt.Println(event.Message)
		return nil
	case event := <-dispatcher.Failures():
		return fmt.Errorf("%s", event.Message)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func interactiveLoop(ctx context.Context, dispatcher *services.Dispatcher) error {
	fmt.Println("Aria assistant. Type 'help' for available commands, Ctrl-D to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		dispatcher.Submit(ctx, line)

		select {
		case event := <-dispatcher.Completions():
			fmt.Println(event.Message)
		case event := <-dispatcher.Failures():
			printFailure(event)
		case <-ctx.Done():
			return nil
		}
	}

	return scanner.Err()
}

func printFailure(event domain.CommandFailedEvent) {
	fmt.Fprintf(os.Stderr, "error: %s\n", event.Message)
}
