package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/vendorctl/internal/cli"
	"github.com/jacksmith/vendorctl/internal/model"
	"github.com/jacksmith/vendorctl/internal/ops"
)

var (
	// stdin is where secrets and search queries are read from.
	stdin io.Reader = os.Stdin
	// stdinInteractive reports whether prompts can be shown.
	stdinInteractive = cli.StdinInteractive
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your vendor account",
	Long: `Sign in and keep the session for later commands.

The password is prompted for on a terminal. In scripts pass it on stdin:

  echo "$PASSWORD" | vendorctl login --email me@shop.example --password-stdin`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var (
	loginEmail         string
	loginPasswordStdin bool
)

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false, "read the password from stdin")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := anon()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	password, err := cli.ReadSecret(ctx, "Password", loginPasswordStdin, stdinInteractive(), stdin)
	if err != nil {
		return err
	}

	acct := ops.NewAccount(a.backend, a.session, a.busy)
	if err := acct.Login(ctx, model.LoginRequest{Email: loginEmail, Password: password}); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s\n", strings.TrimSpace(loginEmail))
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := anon()
	if err != nil {
		return err
	}
	if err := ops.NewAccount(a.backend, a.session, a.busy).Logout(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in vendor",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := anon()
	if err != nil {
		return err
	}
	if !a.session.Authenticated() {
		fmt.Println("Not logged in.")
		return nil
	}

	p, err := ops.NewProfile(a.backend, a.opts).Load(cmd.Context())
	if err != nil {
		return err
	}
	if !a.tableOutput() {
		return a.write(p, nil)
	}
	fmt.Printf("%s <%s>\n", p.FullName(), p.Email)
	if p.StoreName != "" {
		fmt.Printf("Store: %s\n", p.StoreName)
	}
	return nil
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a vendor account",
	Long: `Create a vendor account. A verification code is emailed to you;
confirm it with 'vendorctl verify-email'.

Example:
  vendorctl register --first-name Ada --last-name Obi --email ada@shop.example \
      --phone 08031234567 --store-name "Ada's Fabrics"`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

var (
	registerFirstName     string
	registerLastName      string
	registerEmail         string
	registerPhone         string
	registerStoreName     string
	registerPasswordStdin bool
)

func init() {
	registerCmd.Flags().StringVar(&registerFirstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&registerLastName, "last-name", "", "last name")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "account email")
	registerCmd.Flags().StringVar(&registerPhone, "phone", "", "phone number")
	registerCmd.Flags().StringVar(&registerStoreName, "store-name", "", "store name shown to customers")
	registerCmd.Flags().BoolVar(&registerPasswordStdin, "password-stdin", false, "read the password from stdin")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := anon()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	password, confirm, err := readNewPassword(cmd, registerPasswordStdin)
	if err != nil {
		return err
	}

	msg, err := ops.NewAccount(a.backend, a.session, a.busy).Register(ctx, model.Registration{
		FirstName:       strings.TrimSpace(registerFirstName),
		LastName:        strings.TrimSpace(registerLastName),
		Email:           strings.TrimSpace(registerEmail),
		Phone:           strings.TrimSpace(registerPhone),
		StoreName:       strings.TrimSpace(registerStoreName),
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return err
	}
	printMessage(msg, "Account created. Check your email for the verification code.")
	return nil
}

// readNewPassword reads a password and its confirmation. Stdin supplies a
// single line used for both.
func readNewPassword(cmd *cobra.Command, fromStdin bool) (string, string, error) {
	ctx := cmd.Context()
	interactive := stdinInteractive()
	password, err := cli.ReadSecret(ctx, "Password", fromStdin, interactive, stdin)
	if err != nil {
		return "", "", err
	}
	if fromStdin {
		return password, password, nil
	}
	confirm, err := cli.ReadSecret(ctx, "Confirm password", false, interactive, stdin)
	if err != nil {
		return "", "", err
	}
	return password, confirm, nil
}

var verifyEmailCmd = &cobra.Command{
	Use:   "verify-email <code>",
	Short: "Confirm your email with the code you were sent",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerifyEmail,
}

var verifyEmailAddress string

func init() {
	verifyEmailCmd.Flags().StringVarP(&verifyEmailAddress, "email", "e", "", "account email")
	rootCmd.AddCommand(verifyEmailCmd)
}

func runVerifyEmail(cmd *cobra.Command, args []string) error {
	a, err := anon()
	if err != nil {
		return err
	}
	msg, err := ops.NewAccount(a.backend, a.session, a.busy).VerifyEmail(cmd.Context(), model.EmailVerification{
		Email: strings.TrimSpace(verifyEmailAddress),
		Code:  strings.TrimSpace(args[0]),
	})
	if err != nil {
		return err
	}
	printMessage(msg, "Email verified. You can now log in.")
	return nil
}

var passwordResetCmd = &cobra.Command{
	Use:   "password-reset <email>",
	Short: "Email a password reset link",
	Args:  cobra.ExactArgs(1),
	RunE:  runPasswordReset,
}

func init() {
	rootCmd.AddCommand(passwordResetCmd)
}

func runPasswordReset(cmd *cobra.Command, args []string) error {
	a, err := anon()
	if err != nil {
		return err
	}
	msg, err := ops.NewAccount(a.backend, a.session, a.busy).PasswordReset(cmd.Context(), model.PasswordReset{
		Email: strings.TrimSpace(args[0]),
	})
	if err != nil {
		return err
	}
	printMessage(msg, "If the address has an account, a reset link is on its way.")
	return nil
}

var passwordResetConfirmCmd = &cobra.Command{
	Use:   "password-reset-confirm <uid> <token>",
	Short: "Set a new password from a reset link",
	Long: `Set a new password. The uid and token are the last two parts of the
reset link, e.g. .../password-reset-confirm/MTI/bx4-9f2c1e/.`,
	Args: cobra.ExactArgs(2),
	RunE: runPasswordResetConfirm,
}

var resetPasswordStdin bool

func init() {
	passwordResetConfirmCmd.Flags().BoolVar(&resetPasswordStdin, "password-stdin", false, "read the new password from stdin")
	rootCmd.AddCommand(passwordResetConfirmCmd)
}

func runPasswordResetConfirm(cmd *cobra.Command, args []string) error {
	a, err := anon()
	if err != nil {
		return err
	}
	password, confirm, err := readNewPassword(cmd, resetPasswordStdin)
	if err != nil {
		return err
	}
	msg, err := ops.NewAccount(a.backend, a.session, a.busy).PasswordResetConfirm(cmd.Context(), args[0], args[1], model.PasswordResetConfirm{
		NewPassword:     password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return err
	}
	printMessage(msg, "Password changed. You can now log in.")
	return nil
}

var supportCmd = &cobra.Command{
	Use:   "support",
	Short: "Send a message to the support team",
	Long: `Send a message to the support team.

Example:
  vendorctl support --subject "Payout missing" --message "March payout never arrived"`,
	Args: cobra.NoArgs,
	RunE: runSupport,
}

var (
	supportSubject string
	supportMessage string
	supportEmail   string
)

func init() {
	supportCmd.Flags().StringVarP(&supportSubject, "subject", "s", "", "subject line")
	supportCmd.Flags().StringVarP(&supportMessage, "message", "m", "", "message body")
	supportCmd.Flags().StringVarP(&supportEmail, "email", "e", "", "reply-to address")
	rootCmd.AddCommand(supportCmd)
}

func runSupport(cmd *cobra.Command, args []string) error {
	a, err := anon()
	if err != nil {
		return err
	}
	msg, err := ops.NewAccount(a.backend, a.session, a.busy).ContactSupport(cmd.Context(), model.SupportRequest{
		Subject: strings.TrimSpace(supportSubject),
		Message: strings.TrimSpace(supportMessage),
		Email:   strings.TrimSpace(supportEmail),
	})
	if err != nil {
		return err
	}
	printMessage(msg, "Message sent. Support will reply by email.")
	return nil
}

// printMessage prints the server's reply, or fallback when it sent none.
func printMessage(msg model.Message, fallback string) {
	if text := msg.Text(); text != "" {
		fmt.Println(text)
		return
	}
	fmt.Println(fallback)
}
