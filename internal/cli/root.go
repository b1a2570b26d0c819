package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/bootstrap"
)

var readPasswordFunc = term.ReadPassword // mockable

// Execute runs projectctl against the real database
func Execute() {
	if err := NewRootCmd(OpenDatabase).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree; open is called lazily by each subcommand
func NewRootCmd(open Opener) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "projectctl",
		Short:        "ProjectHub maintenance commands",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", bootstrap.DefaultConfigPath, "path to the YAML configuration")

	withOps := func(c *cobra.Command, fn func(ctx context.Context, ops Operations) error) error {
		ops, err := open(c.Context(), configPath)
		if err != nil {
			return err
		}
		defer ops.Close()
		return fn(c.Context(), ops)
	}

	cmd.AddCommand(
		migrateCmd(withOps),
		seedCmd(withOps),
		createAdminCmd(withOps),
		resetLinkCmd(withOps),
	)
	return cmd
}

type runner func(c *cobra.Command, fn func(ctx context.Context, ops Operations) error) error

func migrateCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return run(c, func(ctx context.Context, ops Operations) error {
				if err := ops.Migrate(ctx); err != nil {
					return err
				}
				fmt.Fprintln(c.OutOrStdout(), "Migrations applied")
				return nil
			})
		},
	}
}

func seedCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert default project types and the configured admin",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return run(c, func(ctx context.Context, ops Operations) error {
				if err := ops.Seed(ctx); err != nil {
					return err
				}
				fmt.Fprintln(c.OutOrStdout(), "Default data created")
				return nil
			})
		},
	}
}

func promptPassword(out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errors.New("password must not be empty")
	}
	return string(pwd), nil
}

func createAdminCmd(run runner) *cobra.Command {
	var email, name string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account; the password is prompted",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			password, err := promptPassword(c.OutOrStdout())
			if err != nil {
				return err
			}
			return run(c, func(ctx context.Context, ops Operations) error {
				staff, err := ops.CreateAdmin(ctx, name, email, password)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "Admin %s created with id %d\n", staff.Email, staff.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email (required)")
	cmd.Flags().StringVar(&name, "name", "Administrator", "admin display name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func resetLinkCmd(run runner) *cobra.Command {
	var userID int64
	var role string

	cmd := &cobra.Command{
		Use:   "reset-link",
		Short: "Generate a password reset link for an account",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			r := models.Role(strings.ToLower(role))
			if !r.Valid() {
				return fmt.Errorf("invalid role %q: must be student, faculty or admin", role)
			}
			if userID <= 0 {
				return errors.New("--user-id must be positive")
			}
			return run(c, func(ctx context.Context, ops Operations) error {
				link, err := ops.ResetLink(ctx, userID, r)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.OutOrStdout(), link.Link)
				fmt.Fprintf(c.OutOrStdout(), "Expires at %s\n", link.ExpiresAt.Format("2006-01-02 15:04 MST"))
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "account id (required)")
	cmd.Flags().StringVar(&role, "role", "", "account role: student, faculty or admin (required)")
	_ = cmd.MarkFlagRequired("user-id")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
