package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"shortener/internal/config"
	"shortener/internal/shortener"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// errNotShortened makes the command exit with status 1 after the outcome has
// been printed.
var errNotShortened = errors.New("url was not shortened")

// readInput returns the first line of r without its line terminator.
func readInput(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("could not read url from stdin: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// shortenCommand constructs the 'shorten' subcommand: the URL given as
// argument (or read from stdin) is sent to the shorten endpoint and the
// result is printed on stdout.
func shortenCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "shorten [url]",
		Short:         "Shortens a URL using the configured endpoint",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if endpoint, _ := cmd.Flags().GetString("endpoint"); endpoint != "" {
				cfg.Client.Endpoint = endpoint
			}
			if token, _ := cmd.Flags().GetString("token"); token != "" {
				cfg.Client.Token = token
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Client.Timeout, _ = cmd.Flags().GetDuration("timeout")
			}

			var input string
			if len(args) > 0 {
				input = args[0]
			} else {
				var err error
				if input, err = readInput(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			handler := shortener.New(getShortClient(cfg))
			outcome := handler.Handle(cmd.Context(), input, shortener.NewWriterDisplay(cmd.OutOrStdout()))
			if outcome.Err != nil {
				return errNotShortened
			}

			return nil
		},
	}

	cmd.Flags().String("endpoint", "", "Shortener service base URL (overrides client.endpoint)")
	cmd.Flags().String("token", "", "Bearer token (overrides client.token)")
	cmd.Flags().Duration("timeout", 10*time.Second, "Request timeout, 0 disables it (overrides client.timeout)")

	return cmd
}
