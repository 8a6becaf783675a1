package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mauv0809/club-pairing/internal/auth"
	"github.com/spf13/cobra"
)

var (
	gameID      int64
	pairingType string
	tokenUserID int64
	tokenRole   string
	tokenTTL    time.Duration
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(autoPairCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(tokenCmd)

	autoPairCmd.Flags().Int64Var(&gameID, "game", 0, "Game day id")
	autoPairCmd.Flags().StringVar(&pairingType, "type", "like", "Pairing type: like, different or strategic")
	_ = autoPairCmd.MarkFlagRequired("game")

	groupsCmd.Flags().Int64Var(&gameID, "game", 0, "Game day id")
	_ = groupsCmd.MarkFlagRequired("game")

	tokenCmd.Flags().Int64Var(&tokenUserID, "user", 0, "Member id the token is issued to")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "Admin", "Role claim: Member, Admin or Super_Admin")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get the persisted pairing and notification counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats")
	},
}

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List the members of the club",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/members")
	},
}

var autoPairCmd = &cobra.Command{
	Use:   "autopair",
	Short: "Group the interested players of a game day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/auto-pair", map[string]any{
			"gameId":      gameID,
			"pairingType": pairingType,
		})
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Show the stored groups of a game day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(fmt.Sprintf("/games/%d/groups", gameID))
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign an API token with $JWT_SECRET",
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			return fmt.Errorf("JWT_SECRET is not set")
		}
		signed, err := auth.NewManager(secret, tokenTTL).Issue(tokenUserID, tokenRole)
		if err != nil {
			return err
		}
		fmt.Println(signed)
		return nil
	},
}

func performGetRequest(endpoint string) error {
	return performRequest(http.MethodGet, endpoint, nil)
}

func performRequest(method, endpoint string, payload any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
