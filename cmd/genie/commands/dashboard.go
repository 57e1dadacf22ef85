package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your account, your apps and the featured apps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Enter("/")

			d, err := c.app.Dashboard(cmd.Context())
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			if d.User != nil {
				p.user(d.User)
			} else {
				p.muted("Not signed in")
			}
			p.line("")
			p.page("Your apps", d.Mine)
			p.line("")
			p.page("Featured apps", d.Featured)
			return nil
		},
	}
}
