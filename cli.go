package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/akinalp/quickchat/config"
	"github.com/akinalp/quickchat/models"
	"github.com/akinalp/quickchat/pkg/logger"
)

// cliEnv is what every operator command needs: config, a quiet logger, the
// repositories and services. The services have no notifier, so nothing here
// may send messages.
type cliEnv struct {
	cfg   *config.Config
	repos *Repositories
	svcs  *Services
	close func()
}

func openCLIEnv() (*cliEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// Operator output goes to stdout; keep logs to warnings on stderr.
	cfg.Log.Output = "stderr"
	if logger.ParseLevel(cfg.Log.Level) < slog.LevelWarn {
		cfg.Log.Level = "warn"
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	db, repos, err := openStore(cfg, log)
	if err != nil {
		return nil, err
	}
	svcs, err := initServices(repos, nil, cfg, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &cliEnv{
		cfg:   cfg,
		repos: repos,
		svcs:  svcs,
		close: func() {
			svcs.Close()
			db.Close()
		},
	}, nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func newUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Seed and inspect chat identities",
	}
	cmd.AddCommand(newUsersCreateCommand(), newUsersListCommand())
	return cmd
}

func newUsersCreateCommand() *cobra.Command {
	var req models.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user with a preferred language",
		Long: `Create a chat identity. Account management (passwords, sign-up) lives in an
external system; this command only seeds the identity the chat needs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openCLIEnv()
			if err != nil {
				return err
			}
			defer env.close()

			user, err := env.svcs.User.Create(cmd.Context(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s, language %s)\n", user.ID, user.Email, user.PreferredLanguage)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.FullName, "name", "n", "", "Full name")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "Email address")
	cmd.Flags().StringVar(&req.Bio, "bio", "", "Short bio")
	cmd.Flags().StringVarP(&req.PreferredLanguage, "language", "l", models.LanguageDefault, "Preferred language code, or \"default\" for no translation")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newUsersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every user",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openCLIEnv()
			if err != nil {
				return err
			}
			defer env.close()

			users, err := env.repos.User.ListExcept(cmd.Context(), "")
			if err != nil {
				return err
			}

			table := newTable(cmd.OutOrStdout(), "ID", "Name", "Email", "Language")
			for _, u := range users {
				table.Append([]string{u.ID, u.FullName, u.Email, u.PreferredLanguage})
			}
			table.Render()
			return nil
		},
	}
}

func newTokenCommand() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for a user (development)",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openCLIEnv()
			if err != nil {
				return err
			}
			defer env.close()

			user, err := env.svcs.User.GetByID(cmd.Context(), userID)
			if err != nil {
				return err
			}
			token, err := env.svcs.Auth.IssueAccessToken(user.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "User id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "Print the languages the configured backend can translate into",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openCLIEnv()
			if err != nil {
				return err
			}
			defer env.close()

			table := newTable(cmd.OutOrStdout(), "Code", "Name")
			for _, l := range env.svcs.Translation.SupportedLanguages(cmd.Context()) {
				table.Append([]string{l.Code, l.Name})
			}
			table.Render()
			return nil
		},
	}
}
