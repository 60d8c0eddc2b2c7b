package commands

import (
	"crypto/sha256"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	ssid "github.com/cyphernet-dao/go-ssid"
	"github.com/cyphernet-dao/go-ssid/bindle"
)

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <signature> <file>",
		Short: "Verify a signature certificate against a file",
		Long: `Checks that the armored signature certificate covers the file's
SHA-256 digest, that the signature verifies against the signer's current
key, and that the signer's revocation chain is structurally sound. Ledger
confirmation of revocation proofs is not performed by this command.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			armored, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			b, err := bindle.Parse[ssid.SigCert](string(armored))
			if err != nil {
				return err
			}
			sc := b.Unbindle()
			if !sc.VerifyDigest(sha256.Sum256(data)) {
				return errors.New("signature does not verify against the file")
			}
			if _, err := sc.Cert.Verify(cmd.Context(), ssid.StructuralOnly); err != nil {
				return err
			}
			fmt.Printf("Valid signature by %s\n", sc.Identity().Key)
			fmt.Printf("Fingerprint: %s\n", sc.Identity().Fingerprint())
			return nil
		},
	}
}
