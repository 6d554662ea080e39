package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/amenagement/core"
	"github.com/trezcool/amenagement/core/access"
	"github.com/trezcool/amenagement/core/analytics"
	"github.com/trezcool/amenagement/core/collection"
	"github.com/trezcool/amenagement/core/dataset"
	"github.com/trezcool/amenagement/core/user"
	"github.com/trezcool/amenagement/storage/kv"
	"github.com/trezcool/amenagement/storage/kv/sqlkv"
)

const resetPrompt = "Êtes-vous sûr de vouloir restaurer les données initiales ?"

var (
	readPasswordFunc = term.ReadPassword // mockable

	errNoPassword   = errors.New("no password provided")
	errNotConfirmed = errors.New("operation cancelled")
	errNoSQLStore   = errors.New("migrations require a sqlite or postgres store")
)

type commandLine struct {
	store  *kv.Store
	usrSvc *user.Service
	data   *dataset.Dataset
}

func (cli *commandLine) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "admin",
		Short:         "Aménagement administration tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		cli.addUserCommand(),
		cli.resetPasswordCommand(),
		cli.resetCommand(),
		cli.migrateCommand(),
		cli.statsCommand(),
	)
	return cmd
}

func (cli *commandLine) addUserCommand() *cobra.Command {
	var name, email, role string
	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create a user, or update the password (and --name/--role when given) of an existing one. The password is prompted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := promptPassword(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			var usrRole access.Role
			if cmd.Flags().Changed("role") {
				usrRole = access.Role(role)
			}
			usr, err := cli.addUser(cmd.Context(), name, email, usrRole, pwd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s (%s) saved\n", usr.Email, usr.Role.Label())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "the user's full name")
	cmd.Flags().StringVar(&email, "email", "", "the user's email, used to sign in")
	cmd.Flags().StringVar(&role, "role", string(access.RoleUser), "admin|user")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (cli *commandLine) resetPasswordCommand() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "resetpassword",
		Short: "Reset a user's password. The password is prompted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := promptPassword(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return cli.resetPassword(cmd.Context(), email, pwd)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "the user's email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (cli *commandLine) resetCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the initial students, lots, services and amenagements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm := collection.Confirmed
			if !yes {
				confirm = promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			if !confirm.Confirm(resetPrompt) {
				return errNotConfirmed
			}
			if err := cli.data.Reset(cmd.Context()); err != nil {
				return errors.Wrap(err, "resetting dataset")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "data restored")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (cli *commandLine) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [VERSION]",
		Short: "Run a goose command (up, up-by-one, up-to, down, down-to, redo, reset, status, version) against the SQL store",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cli.store == nil || cli.store.DB == nil {
				return errNoSQLStore
			}
			return sqlkv.RunMigration(cli.store.DB, args[0], args[1:]...)
		},
	}
}

func (cli *commandLine) statsCommand() *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the analytics report as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := cli.data.Snapshot(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "loading dataset")
			}
			report := analytics.BuildReport(snap, core.NowFunc(), analytics.Period(period))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	cmd.Flags().StringVar(&period, "period", string(analytics.PeriodMonth), "week|month|quarter|year")
	return cmd
}

// addUser creates a user.User, or updates the one already using email.
// A blank name or role keeps the existing value; a new user defaults to access.RoleUser.
func (cli *commandLine) addUser(ctx context.Context, name, email string, role access.Role, pwd string) (user.User, error) {
	usr, err := cli.usrSvc.GetByEmail(ctx, email)
	switch err {
	case nil:
		if err = cli.usrSvc.SetPassword(ctx, usr.ID, user.SetPassword{Password: pwd, PasswordConfirm: pwd}); err != nil {
			return usr, err
		}
		return cli.usrSvc.Update(ctx, usr.ID, user.UpdateUser{Name: name, Role: role})
	case user.ErrNotFound:
		return cli.usrSvc.Create(ctx, user.NewUser{
			Name:            name,
			Email:           email,
			Role:            role,
			Password:        pwd,
			PasswordConfirm: pwd,
		})
	}
	return usr, err
}

func (cli *commandLine) resetPassword(ctx context.Context, email, pwd string) error {
	usr, err := cli.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return cli.usrSvc.SetPassword(ctx, usr.ID, user.SetPassword{Password: pwd, PasswordConfirm: pwd})
}

func promptPassword(out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errNoPassword
	}
	return string(pwd), nil
}

// promptConfirmer asks on out and accepts o, oui, y or yes on in.
func promptConfirmer(in io.Reader, out io.Writer) collection.Confirmer {
	return collection.ConfirmFunc(func(prompt string) bool {
		fmt.Fprint(out, prompt+" [o/N] ")
		answer, _ := bufio.NewReader(in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "o", "oui", "y", "yes":
			return true
		}
		return false
	})
}
