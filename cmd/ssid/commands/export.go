package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cyphernet-dao/go-ssid/bindle"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <fingerprint>",
		Short: "Export public information about an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cert, err := ring.Cert(args[0])
			if err != nil {
				return err
			}
			fmt.Print(bindle.New(*cert).String())
			return nil
		},
	}
}
