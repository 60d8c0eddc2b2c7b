package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known identities",
		RunE: func(cmd *cobra.Command, args []string) error {
			fps, err := ring.Fingerprints()
			if err != nil {
				return err
			}
			for _, fp := range fps {
				cert, err := ring.Cert(fp)
				if err != nil {
					fmt.Printf("%s\t(unreadable: %s)\n", fp, err)
					continue
				}
				id := cert.Identity()
				fmt.Printf("%s\t%s\t%d revocation(s)\n", fp, id, len(cert.Revocations))
			}
			return nil
		},
	}
}
