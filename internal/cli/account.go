package cli

import (
	"github.com/spf13/cobra"

	"ombela/internal/domain"
)

func (a *app) accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Register, log in and inspect the session",
	}
	cmd.AddCommand(a.accountRegisterCmd(), a.accountLoginCmd(), a.accountLogoutCmd(), a.accountWhoamiCmd())
	return cmd
}

func (a *app) accountRegisterCmd() *cobra.Command {
	var name, email, password, storeName string
	var seller bool
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			role := domain.RoleCustomer
			if seller {
				role = domain.RoleSeller
			}
			user, err := a.account.Register(cmd.Context(), domain.User{
				Name:      name,
				Email:     email,
				Password:  password,
				StoreName: storeName,
				Role:      role,
			})
			if err != nil {
				return err
			}
			cmd.Printf("registered %s (#%d)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&storeName, "store", "", "store name (sellers)")
	cmd.Flags().BoolVar(&seller, "seller", false, "register as a seller")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) accountLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.account.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			cmd.Printf("logged in as %s\n", user.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) accountLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.account.Logout(cmd.Context())
		},
	}
}

func (a *app) accountWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user := a.account.Current()
			if user == nil {
				cmd.Println("not logged in")
				return nil
			}
			cmd.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
			return nil
		},
	}
}
