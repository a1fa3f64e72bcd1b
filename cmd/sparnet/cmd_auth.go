package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var (
	authEmail    string
	authPassword string
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

func postJSON(url string, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var failure struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		if failure.Error != "" {
			return fmt.Errorf("%s", failure.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a Spar-net account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var out struct {
			User struct {
				ID    string `json:"id"`
				Email string `json:"email"`
			} `json:"user"`
			Warning string `json:"warning"`
		}
		err := postJSON(serverURL+"/auth/signup", map[string]string{
			"email":    authEmail,
			"password": authPassword,
		}, &out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %s created\n", out.User.ID)
		if out.Warning != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", out.Warning)
		}
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print an access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		var out struct {
			Session struct {
				AccessToken string `json:"access_token"`
			} `json:"session"`
			User struct {
				ID string `json:"id"`
			} `json:"user"`
		}
		err := postJSON(serverURL+"/auth/login", map[string]string{
			"email":    authEmail,
			"password": authPassword,
		}, &out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out.Session.AccessToken)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{signupCmd, loginCmd} {
		cmd.Flags().StringVar(&authEmail, "email", "", "account email")
		cmd.Flags().StringVar(&authPassword, "password", "", "account password")
		_ = cmd.MarkFlagRequired("email")
		_ = cmd.MarkFlagRequired("password")
	}
}
