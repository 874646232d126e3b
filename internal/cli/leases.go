package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/leaseledger/leaseledger/internal/output"
)

var leasesCmd = &cobra.Command{
	Use:   "leases",
	Short: "List the leases in the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		leases, err := openStore().Load()
		if err != nil {
			return err
		}
		output.LeaseList(os.Stdout, leases)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(leasesCmd)
}
