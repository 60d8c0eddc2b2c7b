package commands

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ssid "github.com/cyphernet-dao/go-ssid"
	"github.com/cyphernet-dao/go-ssid/bindle"
)

func signCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "sign <file>",
		Short: "Sign a file using an identity",
		Long: `Signs the SHA-256 digest of the file with the identity's current
key and writes an armored signature certificate to "<file>.ssig". The
certificate carries the signer's full identity history, so it verifies
without any key lookup.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			identity, err := ring.Identity(id)
			if err != nil {
				return err
			}
			sc, err := ssid.NewSigCert(rand.Reader, identity, sha256.Sum256(data))
			if err != nil {
				return err
			}
			out := args[0] + ".ssig"
			if err := os.WriteFile(out, []byte(bindle.New(sc).String()), 0o644); err != nil {
				return err
			}
			fmt.Printf("Signature written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&id, "id", "i", "", "fingerprint of the signing identity")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
