package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/roydza27/MindEaseLite-sub000/internal"
	"github.com/roydza27/MindEaseLite-sub000/internal/client"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store an access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password, err := promptCredentials(false)
		if err != nil {
			return err
		}

		api := client.New(apiBaseURL(), "", internal.NopLogger{})
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		result, err := api.Login(ctx, email, password)
		if err != nil {
			return err
		}
		if err := saveToken(result.Token); err != nil {
			return fmt.Errorf("logged in but failed to store token: %w", err)
		}
		fmt.Printf("Welcome back, %s. Token valid until %s.\n",
			result.User.Name, result.ExpiresAt.Format("Jan 02 15:04"))
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store an access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := promptLine("Name: ")
		if err != nil {
			return err
		}
		email, password, err := promptCredentials(true)
		if err != nil {
			return err
		}

		api := client.New(apiBaseURL(), "", internal.NopLogger{})
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		result, err := api.Register(ctx, name, email, password)
		if err != nil {
			return err
		}
		if err := saveToken(result.Token); err != nil {
			return fmt.Errorf("registered but failed to store token: %w", err)
		}
		fmt.Printf("Account created. Welcome, %s!\n", result.User.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := clearToken(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptCredentials(confirm bool) (string, string, error) {
	email, err := promptLine("Email: ")
	if err != nil {
		return "", "", err
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", err
	}

	if confirm {
		fmt.Print("Repeat password: ")
		again, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", "", err
		}
		if string(password) != string(again) {
			return "", "", fmt.Errorf("passwords do not match")
		}
	}

	return email, string(password), nil
}
