package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgridtech/carfixit/internal/identity/domain"
)

func newLoginCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email|phone>",
		Short: "Log in and persist the session locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = promptLine(cmd, "Password: "); err != nil {
					return err
				}
			}
			user, err := a.identity.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			if err := a.cart.Refresh(cmd.Context()); err != nil {
				a.log.Warn("refreshing cart after login", slog.Any("err", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (user %d)\n", user.Name, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.identity.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// verifyOTP runs the send, prompt, verify loop shared by registration and
// password reset. Typing "resend" asks for a fresh code, subject to the
// resend countdown.
func verifyOTP(cmd *cobra.Command, a *app, email, otpType string) (int, error) {
	challenge, err := a.identity.SendOTP(cmd.Context(), email, otpType)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "OTP sent to %s\n", challenge.Email)

	for {
		code, err := promptLine(cmd, "Enter OTP (or 'resend'): ")
		if err != nil {
			return 0, err
		}
		if strings.EqualFold(code, "resend") {
			if _, err := a.identity.ResendOTP(cmd.Context(), email, otpType); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OTP re-sent to %s\n", email)
			continue
		}
		if code == "" {
			continue
		}
		return a.identity.VerifyOTP(cmd.Context(), email, otpType, code)
	}
}

func newRegisterCmd(a *app) *cobra.Command {
	var name, email, phone, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account (email OTP verification)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if name == "" || email == "" || password == "" {
				return errors.New("--name, --email and --password are required")
			}
			otpID, err := verifyOTP(cmd, a, email, domain.OTPRegistration)
			if err != nil {
				return err
			}
			user, err := a.identity.Register(cmd.Context(), domain.Registration{
				Name:     name,
				Email:    email,
				Phone:    phone,
				Password: password,
				OTPID:    otpID,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s (user %d); run 'carfixit login'\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func newForgotPasswordCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Reset the account password via email OTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}
			otpID, err := verifyOTP(cmd, a, email, domain.OTPPasswordReset)
			if err != nil {
				return err
			}
			if err := a.identity.ResetPassword(cmd.Context(), email, password, otpID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password updated; run 'carfixit login'")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password")
	return cmd
}

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the account profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the logged-in profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.identity.Profile(cmd.Context())
			if err != nil {
				return err
			}
			w := table(cmd)
			fmt.Fprintf(w, "ID\t%d\n", user.ID)
			fmt.Fprintf(w, "Name\t%s\n", user.Name)
			fmt.Fprintf(w, "Email\t%s\n", user.Email)
			fmt.Fprintf(w, "Phone\t%s\n", user.Phone)
			return w.Flush()
		},
	}

	var name, email, phone string
	update := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := a.identity.Profile(cmd.Context())
			if err != nil {
				return err
			}
			if name != "" {
				current.Name = name
			}
			if email != "" {
				current.Email = email
			}
			if phone != "" {
				current.Phone = phone
			}
			if err := a.identity.UpdateProfile(cmd.Context(), current); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			return nil
		},
	}
	update.Flags().StringVar(&name, "name", "", "full name")
	update.Flags().StringVar(&email, "email", "", "email address")
	update.Flags().StringVar(&phone, "phone", "", "phone number")

	cmd.AddCommand(show, update)
	return cmd
}
