package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/account"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/db"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var databaseURL string

	root := &cobra.Command{
		Use:           "deskctl",
		Short:         "Lecture desk administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection string")

	connect := func() (db.Store, error) {
		if strings.TrimSpace(databaseURL) == "" {
			return nil, fmt.Errorf("--database-url or DATABASE_URL is required")
		}
		if err := db.Init(databaseURL); err != nil {
			return nil, err
		}
		return db.NewStore(db.DB), nil
	}

	root.AddCommand(newMigrateCmd(connect))
	root.AddCommand(newDoctorCmd(connect))
	return root
}

func newMigrateCmd(connect func() (db.Store, error)) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the SQL migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := connect(); err != nil {
				return err
			}
			if err := db.RunMigrations(path); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "./migrations", "migrations directory")
	return cmd
}

func newDoctorCmd(connect func() (db.Store, error)) *cobra.Command {
	doctor := &cobra.Command{Use: "doctor", Short: "Manage doctor accounts"}

	var email, name, password string
	create := &cobra.Command{
		Use:   "create --email <email> --password <password>",
		Short: "Create a doctor account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := connect()
			if err != nil {
				return err
			}
			id, err := createDoctor(cmd.Context(), store, email, name, password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "doctor created: id=%d email=%s\n", id, email)
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "login email")
	create.Flags().StringVar(&name, "name", "", "display name (optional)")
	create.Flags().StringVar(&password, "password", "", "initial password")

	var resetEmail, resetPassword string
	passwd := &cobra.Command{
		Use:   "passwd --email <email> --password <password>",
		Short: "Reset a doctor's password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := connect()
			if err != nil {
				return err
			}
			if err := resetDoctorPassword(cmd.Context(), store, resetEmail, resetPassword); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "password reset: %s\n", resetEmail)
			return nil
		},
	}
	passwd.Flags().StringVar(&resetEmail, "email", "", "login email")
	passwd.Flags().StringVar(&resetPassword, "password", "", "new password")

	doctor.AddCommand(create, passwd)
	return doctor
}

func createDoctor(ctx context.Context, store db.Store, email, name, password string) (int, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return 0, fmt.Errorf("--email is required")
	}
	if account.NormalizePassword(password) == "" {
		return 0, account.ErrEmptyPassword
	}
	hashed, err := account.HashPassword(password)
	if err != nil {
		return 0, err
	}
	var namePtr *string
	if n := strings.TrimSpace(name); n != "" {
		namePtr = &n
	}
	return store.CreateDoctor(ctx, email, hashed, namePtr)
}

func resetDoctorPassword(ctx context.Context, store db.Store, email, password string) error {
	found, err := store.GetDoctorByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return fmt.Errorf("find doctor %q: %w", email, err)
	}
	svc := account.NewService(nil, store, nil, nil)
	return svc.ChangePassword(ctx, found.ID, password)
}
