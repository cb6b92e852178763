package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/reunite-ai/reunite/internal/api"
	"github.com/reunite-ai/reunite/internal/auth"
	"github.com/reunite-ai/reunite/internal/config"
)

var loginFlags struct {
	email  string
	signup bool
	name   string
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the access token",
	Long: `Log in to the backend and store the access token.

The token is written to the user config directory and picked up by the
browser and the report wizard. Use --signup to create an account instead.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.NewFileStore().Clear(); err != nil {
			return fmt.Errorf("clearing token: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginFlags.email, "email", "e", "", "Account email (prompted if omitted)")
	loginCmd.Flags().BoolVar(&loginFlags.signup, "signup", false, "Create a new account")
	loginCmd.Flags().StringVarP(&loginFlags.name, "name", "n", "", "Full name, with --signup (prompted if omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)

	name := loginFlags.name
	if loginFlags.signup && name == "" {
		fmt.Print("Name: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading name: %w", err)
		}
		name = strings.TrimSpace(line)
	}

	email := loginFlags.email
	if email == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return fmt.Errorf("email is required")
	}

	fmt.Print("Password: ")
	passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	password := string(passBytes)
	if password == "" {
		return fmt.Errorf("password is required")
	}

	store := auth.NewFileStore()
	client := api.New(cfg.APIBaseURL, time.Duration(cfg.RequestTimeout)*time.Second, store)

	ctx := context.Background()
	var token string
	if loginFlags.signup {
		if name == "" {
			return fmt.Errorf("name is required for signup")
		}
		token, err = client.Signup(ctx, name, email, password)
	} else {
		token, err = client.Login(ctx, email, password)
	}
	if err != nil {
		return err
	}

	if err := store.Save(token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	if loginFlags.signup {
		fmt.Printf("Account created for %s. You are logged in.\n", email)
	} else {
		fmt.Printf("Logged in as %s.\n", email)
	}
	return nil
}
