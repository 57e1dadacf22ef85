package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/genie/internal/core/domain"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <appId> <message...>",
		Short: "Send a message to an app's generator and stream the output",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAppID(args[0])
			if err != nil {
				return err
			}
			c.app.Enter(appPath(id) + "/chat")

			p := newPrinter(cmd.OutOrStdout())
			n, err := c.app.Generate(cmd.Context(), id, strings.Join(args[1:], " "), func(chunk domain.GenerationChunk) {
				p.chunk(chunk)
			})
			if n > 0 {
				p.line("")
			}
			if err != nil {
				return err
			}

			newPrinter(cmd.ErrOrStderr()).muted(fmt.Sprintf("%d chunks received", n))
			return nil
		},
	}
}
