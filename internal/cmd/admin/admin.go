// Package admin gates catalog-changing commands behind the administrator
// credential check.
package admin

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/lessonmap/cmd/application"
	"github.com/agentstation/lessonmap/pkg/constants"
	"github.com/agentstation/lessonmap/pkg/errors"
)

// PasswordEnv supplies the password when --password is not given.
const PasswordEnv = "LESSONMAP_PASSWORD"

// Flags holds the supplied credentials.
type Flags struct {
	User     string
	Password string
}

// AddFlags adds --user and --password to cmd.
func AddFlags(cmd *cobra.Command) *Flags {
	f := &Flags{}
	cmd.Flags().StringVar(&f.User, "user", constants.AdminUsername, "administrator user name")
	cmd.Flags().StringVar(&f.Password, "password", "", "administrator password (default $"+PasswordEnv+")")
	return f
}

// Require checks the supplied credentials against the configured administrator.
func (f *Flags) Require(app application.Application) error {
	password := f.Password
	if password == "" {
		password = os.Getenv(PasswordEnv)
	}
	if password == "" {
		return errors.NewAuthenticationError(f.User, "administrator password required", nil)
	}

	auth, err := app.Authenticator()
	if err != nil {
		return err
	}
	if err := auth.Authenticate(f.User, password); err != nil {
		app.Logger().Warn().Str("user", f.User).Msg("Administrator login failed")
		return err
	}

	app.Logger().Debug().Str("user", f.User).Msg("Administrator authenticated")
	return nil
}
