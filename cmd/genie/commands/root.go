// Package commands implements the CLI commands for genie.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/genie/internal/app"
	"go.trai.ch/genie/internal/build"
	"go.trai.ch/genie/internal/core/domain"
)

// CLI represents the command line interface for genie.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	in      io.Reader
}

// Application represents the application logic interface.
type Application interface {
	ConfigureLogging(jsonMode, verbose bool)
	Enter(path string)

	CurrentUser(ctx context.Context) (*domain.LoginUser, error)
	Login(ctx context.Context, account, password string) (*domain.LoginUser, error)
	Register(ctx context.Context, account, password, confirm string) (int64, error)
	Logout(ctx context.Context) error
	SessionCookie() string

	App(ctx context.Context, id int64) (*domain.App, error)
	MyApps(ctx context.Context, q domain.AppQuery) (*app.AppPage, error)
	FeaturedApps(ctx context.Context, q domain.AppQuery) (*app.AppPage, error)
	CreateApp(ctx context.Context, req domain.AppAddRequest) (int64, error)
	UpdateApp(ctx context.Context, req domain.AppUpdateRequest) error
	DeleteApp(ctx context.Context, id int64) error
	DeployApp(ctx context.Context, id int64) (string, error)
	DownloadURL(id int64) string
	DeployedURL(deployKey string) string

	Dashboard(ctx context.Context) (*app.Dashboard, error)
	Generate(ctx context.Context, appID int64, message string, onChunk func(domain.GenerationChunk)) (int, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "genie",
		Short:         "Build and deploy AI generated web apps from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
		in:      os.Stdin,
	}

	// Flags override the configured log settings only when given.
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		jsonFlag := cmd.Flags().Lookup("json")
		verboseFlag := cmd.Flags().Lookup("verbose")
		if !jsonFlag.Changed && !verboseFlag.Changed {
			return
		}
		jsonMode, _ := cmd.Flags().GetBool("json")
		verbose, _ := cmd.Flags().GetBool("verbose")
		c.app.ConfigureLogging(jsonMode, verbose)
	}

	rootCmd.AddCommand(c.newVersionCmd())
	rootCmd.AddCommand(c.newLoginCmd())
	rootCmd.AddCommand(c.newRegisterCmd())
	rootCmd.AddCommand(c.newLogoutCmd())
	rootCmd.AddCommand(c.newWhoamiCmd())
	rootCmd.AddCommand(c.newAppsCmd())
	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newDashboardCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetInput sets the stream secrets are read from. Used for testing.
func (c *CLI) SetInput(in io.Reader) {
	c.in = in
	c.rootCmd.SetIn(in)
}
