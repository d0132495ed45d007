package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stackgarden/stackgarden/internal/snapshot"
)

const (
	DefaultAPIURL  = "http://localhost:8080"
	RequestTimeout = 10 * time.Second
	APIKeyHeader   = "X-API-Key"
	ExportPath     = "/api/v1/state/export"
	ImportPath     = "/api/v1/state/import"
	FilePermission = 0644
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var apiURL, apiKey string

	root := &cobra.Command{
		Use:           "statectl",
		Short:         "Inspect, validate and transfer focus-garden snapshot files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&apiURL, "api-url", DefaultAPIURL, "base URL of the running server")
	root.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key, if the server requires one")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newExportCmd(&apiURL, &apiKey))
	root.AddCommand(newImportCmd(&apiURL, &apiKey))
	return root
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate an export file without importing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if verr := snapshot.ValidateExport(data); verr != nil {
				return fmt.Errorf("invalid snapshot: %s", verr.Error())
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (version %s)\n", args[0], snapshot.CurrentVersion)
			return nil
		},
	}
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print a summary of an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			restored, verr := snapshot.ApplyExport(data)
			if verr != nil {
				return fmt.Errorf("invalid snapshot: %s", verr.Error())
			}

			out := cmd.OutOrStdout()
			p := restored.Progress
			_, _ = fmt.Fprintf(out, "credits:            %d\n", p.Credits)
			_, _ = fmt.Fprintf(out, "sessions completed: %d\n", p.SessionsCompleted)
			_, _ = fmt.Fprintf(out, "total session time: %ds\n", p.TotalSessionTime)
			_, _ = fmt.Fprintf(out, "current streak:     %d\n", p.CurrentStreak)
			if p.LastSessionDate != "" {
				_, _ = fmt.Fprintf(out, "last session date:  %s\n", p.LastSessionDate)
			}
			_, _ = fmt.Fprintf(out, "owned components:   %d\n", len(p.OwnedComponents))
			if len(p.OwnedComponents) > 0 {
				_, _ = fmt.Fprintf(out, "  %s\n", strings.Join(p.OwnedComponents, ", "))
			}
			_, _ = fmt.Fprintf(out, "placed components:  %d\n", len(restored.PlacedComponents))
			_, _ = fmt.Fprintf(out, "connections:        %d\n", len(restored.Connections))
			return nil
		},
	}
}

func newExportCmd(apiURL, apiKey *string) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export <userId>",
		Short: "Download a user's snapshot from the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint := *apiURL + ExportPath + "?userId=" + url.QueryEscape(args[0])
			req, err := http.NewRequest(http.MethodGet, endpoint, nil)
			if err != nil {
				return err
			}
			body, err := doRequest(req, *apiKey)
			if err != nil {
				return err
			}

			// Round-trip through the validator so a broken server
			// response never gets written to disk.
			if verr := snapshot.ValidateExport(body); verr != nil {
				return fmt.Errorf("server returned invalid snapshot: %s", verr.Error())
			}

			if outFile == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(body))
				return nil
			}
			if err := os.WriteFile(outFile, body, FilePermission); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", outFile, len(body))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write snapshot to file instead of stdout")
	return cmd
}

func newImportCmd(apiURL, apiKey *string) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Upload an export file to the server, replacing the user's state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("--user is required")
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			// Validate locally first for a better error than a server round trip.
			if verr := snapshot.ValidateExport(data); verr != nil {
				return fmt.Errorf("invalid snapshot: %s", verr.Error())
			}

			endpoint := *apiURL + ImportPath + "?userId=" + url.QueryEscape(userID)
			req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(string(data)))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			if _, err := doRequest(req, *apiKey); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %s for user %s\n", args[0], userID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "target user id")
	return cmd
}

// doRequest executes the request and returns the body, turning non-2xx
// responses into errors that surface the server's error message.
func doRequest(req *http.Request, apiKey string) ([]byte, error) {
	if apiKey != "" {
		req.Header.Set(APIKeyHeader, apiKey)
	}

	client := &http.Client{Timeout: RequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return nil, fmt.Errorf("server error (%d)", resp.StatusCode)
	}
	return body, nil
}
