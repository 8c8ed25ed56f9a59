package status

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/storacha/rangestream/cmd/cliutil"
	"github.com/storacha/rangestream/pkg/health"
)

var Cmd = &cobra.Command{
	Use:   "status",
	Short: "Check server health",
	Long: `Query the readiness endpoint of a running server and report each check.
Exits with an error when the server is not ready.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	Cmd.Flags().String("api", "localhost:3000", "Address of the running server")
	Cmd.Flags().Bool("json", false, "Output in JSON format")
}

func runStatus(cmd *cobra.Command, _ []string) error {
	addr := cliutil.MustGetAPI(cmd)
	jsonOutput, _ := cmd.Flags().GetBool("json")

	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, fmt.Sprintf("http://%s/readyz", addr), nil)
	if err != nil {
		return err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer res.Body.Close()

	var status health.Response
	if err := json.NewDecoder(res.Body).Decode(&status); err != nil {
		return fmt.Errorf("decoding readiness response: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(status); err != nil {
			return err
		}
	} else {
		cmd.Printf("Status:   %s\n", status.Status)
		cmd.Printf("Version:  %s\n", status.Version)
		for _, c := range status.Checks {
			line := fmt.Sprintf("  %-12s %s", c.Name, c.Status)
			if c.Error != "" {
				line += " (" + c.Error + ")"
			}
			cmd.Println(line)
		}
	}

	if status.Status != health.StatusOK {
		return fmt.Errorf("server is not ready")
	}
	return nil
}
