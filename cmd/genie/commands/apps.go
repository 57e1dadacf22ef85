package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/genie/internal/app"
	"go.trai.ch/genie/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newAppsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List and manage apps",
	}

	cmd.AddCommand(c.newAppsListCmd("mine", "List your apps", "/apps/mine", c.app.MyApps))
	cmd.AddCommand(c.newAppsListCmd("featured", "List featured apps", "/apps/featured", c.app.FeaturedApps))
	cmd.AddCommand(c.newAppsGetCmd())
	cmd.AddCommand(c.newAppsCreateCmd())
	cmd.AddCommand(c.newAppsUpdateCmd())
	cmd.AddCommand(c.newAppsDeleteCmd())
	cmd.AddCommand(c.newAppsDeployCmd())
	cmd.AddCommand(c.newAppsDownloadURLCmd())

	return cmd
}

func (c *CLI) newAppsListCmd(
	use, short, path string,
	list func(ctx context.Context, q domain.AppQuery) (*app.AppPage, error),
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Enter(path)

			pageNum, _ := cmd.Flags().GetInt("page")
			size, _ := cmd.Flags().GetInt("size")
			name, _ := cmd.Flags().GetString("name")

			page, err := list(cmd.Context(), domain.AppQuery{
				PageRequest: domain.PageRequest{Current: pageNum, PageSize: size},
				AppName:     name,
			})
			if err != nil {
				return err
			}

			newPrinter(cmd.OutOrStdout()).page(short, page)
			return nil
		},
	}
	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("size", 10, "Page size")
	cmd.Flags().String("name", "", "Filter by app name")
	return cmd
}

func (c *CLI) newAppsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAppID(args[0])
			if err != nil {
				return err
			}
			c.app.Enter(appPath(id))

			a, err := c.app.App(cmd.Context(), id)
			if err != nil {
				return err
			}

			newPrinter(cmd.OutOrStdout()).app(a, c.app.DeployedURL(a.DeployKey))
			return nil
		},
	}
}

func (c *CLI) newAppsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an app from a prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Enter("/")

			prompt, _ := cmd.Flags().GetString("prompt")
			name, _ := cmd.Flags().GetString("name")
			genType, _ := cmd.Flags().GetString("type")

			id, err := c.app.CreateApp(cmd.Context(), domain.AppAddRequest{
				AppName:     name,
				InitPrompt:  prompt,
				CodeGenType: domain.CodeGenType(genType),
			})
			if err != nil {
				return err
			}

			newPrinter(cmd.OutOrStdout()).success(fmt.Sprintf("Created app %d", id))
			return nil
		},
	}
	cmd.Flags().StringP("prompt", "p", "", "Initial prompt describing the app")
	cmd.Flags().String("name", "", "App name")
	cmd.Flags().String("type", "", "Code generation type: html, multi_file or vue_project")
	return cmd
}

func (c *CLI) newAppsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename an app or change its cover",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAppID(args[0])
			if err != nil {
				return err
			}
			c.app.Enter(appPath(id) + "/edit")

			name, _ := cmd.Flags().GetString("name")
			cover, _ := cmd.Flags().GetString("cover")

			if err := c.app.UpdateApp(cmd.Context(), domain.AppUpdateRequest{
				ID:      id,
				AppName: name,
				Cover:   cover,
			}); err != nil {
				return err
			}

			newPrinter(cmd.OutOrStdout()).success(fmt.Sprintf("Updated app %d", id))
			return nil
		},
	}
	cmd.Flags().String("name", "", "New app name")
	cmd.Flags().String("cover", "", "New cover image URL")
	return cmd
}

func (c *CLI) newAppsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAppID(args[0])
			if err != nil {
				return err
			}
			c.app.Enter(appPath(id))

			if err := c.app.DeleteApp(cmd.Context(), id); err != nil {
				return err
			}

			newPrinter(cmd.OutOrStdout()).success(fmt.Sprintf("Deleted app %d", id))
			return nil
		},
	}
}

func (c *CLI) newAppsDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy <id>",
		Short: "Deploy an app and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAppID(args[0])
			if err != nil {
				return err
			}
			c.app.Enter(appPath(id))

			deployed, err := c.app.DeployApp(cmd.Context(), id)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			p.success(fmt.Sprintf("Deployed app %d", id))
			p.line(deployed)
			return nil
		},
	}
}

func (c *CLI) newAppsDownloadURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download-url <id>",
		Short: "Print the URL of an app's source archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAppID(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), c.app.DownloadURL(id))
			return nil
		},
	}
}

func parseAppID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidAppID, "invalid argument"), "id", raw)
	}
	return id, nil
}

func appPath(id int64) string {
	return "/apps/" + strconv.FormatInt(id, 10)
}
