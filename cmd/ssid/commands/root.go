// Package commands implements the ssid command-line tool.
package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cyphernet-dao/go-ssid/store"
)

// DataDirEnv overrides the data directory location.
const DataDirEnv = "SSID_DATA_DIR"

var (
	dataDir string
	ring    *store.Store
)

func Execute() error {
	root := &cobra.Command{
		Use:           "ssid",
		Short:         "Self-sovereign identity command-line tool",
		SilenceUsage:  true,
		SilenceErrors: false,
		Long: `Suite for working with self-sovereign identity.

Self-sovereign identity operates without any key servers, using blockchain
infrastructure instead. This allows provable and globally enforceable key
revocation without dedicated revocation keys, global propagation of new key
information, and signatures which are timestamped or created using the
single-use-seal mechanism.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if dataDir == "" {
				if env := os.Getenv(DataDirEnv); env != "" {
					dataDir = env
				} else {
					home, err := os.UserHomeDir()
					if err != nil {
						return err
					}
					dataDir = filepath.Join(home, ".ssid")
				}
			}
			var err error
			ring, err = store.New(dataDir)
			return err
		},
	}

	root.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "",
		"data directory path (default ~/.ssid, env "+DataDirEnv+")")

	root.AddCommand(generateCmd(), listCmd(), exportCmd(), signCmd(), verifyCmd())
	return root.Execute()
}
