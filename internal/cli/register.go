package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/bluecup/internal/server/services"
)

func (a *App) registerCommand() *cobra.Command {
	var in services.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user account",
		Long: `Create a user account. The password is read from the terminal
without echo.

Example:
  bluecup-cli register --email alice@example.com --county Kent`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, "Enter password")
			password, err := a.readPassword()
			if err != nil {
				return err
			}
			in.Password = string(password)

			u, err := a.auth.Register(cmd.Context(), in)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Registered %s (id %d)\n", u.Email, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.County, "county", "", "county (optional)")
	cmd.Flags().StringVar(&in.HomeClub, "home-club", "", "home club (optional)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
