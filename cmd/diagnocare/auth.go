package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"diagnocare/internal/bootstrap"
	authdto "diagnocare/internal/modules/auth/dto"
)

func newAuthCmd(g *globalFlags) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Sign in, register and manage the session"}

	var email, password string
	login := &cobra.Command{
		Use:   "login --email <email>",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(email) == "" {
				return fmt.Errorf("--email is required")
			}
			if password == "" {
				var err error
				if password, err = promptLine(cmd.ErrOrStderr(), cmd.InOrStdin(), "Mot de passe: "); err != nil {
					return err
				}
			}
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AuthCLI.Login(ctx, email, password)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "connecté: %s (%s)\n", out.User.DisplayName, out.User.Email)
				return nil
			})
		},
	}
	login.Flags().StringVar(&email, "email", "", "account email")
	login.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")

	var reg authdto.RegisterInput
	register := &cobra.Command{
		Use:   "register --email <email> --first-name <name> --last-name <name>",
		Short: "Create a patient account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(reg.Email) == "" {
				return fmt.Errorf("--email is required")
			}
			if reg.Password == "" {
				var err error
				if reg.Password, err = promptLine(cmd.ErrOrStderr(), cmd.InOrStdin(), "Mot de passe: "); err != nil {
					return err
				}
			}
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AuthCLI.Register(ctx, reg)
				if err != nil {
					return err
				}
				if !out.Authenticated {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "compte créé, connectez-vous avec diagnocare auth login")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "compte créé et connecté: %s\n", out.User.DisplayName)
				return nil
			})
		},
	}
	register.Flags().StringVar(&reg.Email, "email", "", "account email")
	register.Flags().StringVar(&reg.FirstName, "first-name", "", "first name")
	register.Flags().StringVar(&reg.LastName, "last-name", "", "last name")
	register.Flags().StringVar(&reg.PhoneNumber, "phone", "", "phone number (optional)")
	register.Flags().StringVar(&reg.Lang, "lang", "fr", "preferred language: fr|en")
	register.Flags().StringVar(&reg.Password, "password", "", "account password (prompted when empty)")
	register.Flags().Int64Var(&reg.RoleID, "role-id", 0, "role id (default: PATIENT)")

	refresh := &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AuthCLI.Refresh(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session renouvelée: %s\n", out.User.DisplayName)
				return nil
			})
		},
	}

	roles := &cobra.Command{
		Use:   "roles",
		Short: "List the roles known to the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.AuthCLI.Roles(ctx)
				if err != nil {
					return err
				}
				for _, r := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", r.ID, r.Name)
				}
				return nil
			})
		},
	}

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.AuthCLI.Logout(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "déconnecté")
				return nil
			})
		},
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				u, err := app.AuthCLI.WhoAmI(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %d\nnom: %s\nemail: %s\nlangue: %s\n", u.ID, u.DisplayName, u.Email, u.Lang)
				return nil
			})
		},
	}

	auth.AddCommand(login, register, refresh, roles, logout, whoami)
	return auth
}

func newAccountCmd(g *globalFlags) *cobra.Command {
	account := &cobra.Command{Use: "account", Short: "Update or delete the signed-in account"}

	var (
		email, firstName, lastName, phone, lang, password string
	)
	update := &cobra.Command{
		Use:   "update",
		Short: "Update account fields; only the given flags change",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := authdto.UpdateUserInput{}
			flags := cmd.Flags()
			set := func(name string, v string, dst **string) {
				if flags.Changed(name) {
					value := v
					*dst = &value
				}
			}
			set("email", email, &in.Email)
			set("first-name", firstName, &in.FirstName)
			set("last-name", lastName, &in.LastName)
			set("phone", phone, &in.PhoneNumber)
			set("lang", lang, &in.Lang)
			set("password", password, &in.Password)
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				u, err := app.AuthCLI.UpdateUser(ctx, in)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "compte mis à jour: %s (%s, %s)\n", u.DisplayName, u.Email, u.Lang)
				return nil
			})
		},
	}
	update.Flags().StringVar(&email, "email", "", "new email")
	update.Flags().StringVar(&firstName, "first-name", "", "new first name")
	update.Flags().StringVar(&lastName, "last-name", "", "new last name")
	update.Flags().StringVar(&phone, "phone", "", "new phone number")
	update.Flags().StringVar(&lang, "lang", "", "new language: fr|en")
	update.Flags().StringVar(&password, "password", "", "new password")

	var confirm bool
	del := &cobra.Command{
		Use:   "delete --yes",
		Short: "Delete the account and sign out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirm {
				return fmt.Errorf("refusing to delete the account without --yes")
			}
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.AuthCLI.DeleteAccount(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "compte supprimé")
				return nil
			})
		},
	}
	del.Flags().BoolVar(&confirm, "yes", false, "confirm deletion")

	account.AddCommand(update, del)
	return account
}
