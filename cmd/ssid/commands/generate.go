package commands

import (
	"crypto/rand"
	"fmt"

	"github.com/spf13/cobra"

	ssid "github.com/cyphernet-dao/go-ssid"
	"github.com/cyphernet-dao/go-ssid/seal"
)

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <seal>",
		Short: "Generate a new identity bound to a single-use seal",
		Long: `Generates a new identity bound to the given single-use seal
("<ledger>:<txid>:<vout>"; the ledger defaults to bitcoin when omitted).
The seal should reference an unspent output under your control: spending it
is what will authorize a future revocation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := seal.Parse(args[0])
			if err != nil {
				return err
			}
			identity, err := ssid.Generate(rand.Reader, s)
			if err != nil {
				return err
			}
			if err := ring.SaveIdentity(identity); err != nil {
				return err
			}
			key := identity.Cert.Identity().Key
			fmt.Printf("Identity created.\n")
			fmt.Printf("Id: %s\n", key)
			fmt.Printf("Mnemonic: %s\n", key.Mnemonic())
			fmt.Printf("Fingerprint: %s\n", identity.Fingerprint())
			return nil
		},
	}
}
