package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/spendtrack/spendtrack/internal/ui"
)

func newShellCommand(flags *globalFlags) *cobra.Command {
	var prompt string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Read commands line by line from standard input",
		Long: `Read commands line by line from standard input:

  add <category> <amount>   record an expense
  chart                     show the pie chart
  save                      write the report file
  close                     exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closer, err := newApp(*flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			if !cmd.Flags().Changed("prompt") && !isatty.IsTerminal(os.Stdin.Fd()) {
				prompt = ""
			}
			return ui.NewShell(a, cmd.InOrStdin(), cmd.OutOrStdout(), prompt).Run()
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "> ", "prompt shown before each command")

	return cmd
}
