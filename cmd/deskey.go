/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/bgallie/classicrypt/cryptors/permutator"
	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const desKeyVariable = "CLASSICRYPT_DES_KEY"

var showTable bool

// deskeyCmd represents the deskey command
var deskeyCmd = &cobra.Command{
	Use:   "deskey [key]",
	Short: "Derive the permuted DES key K+ from an 8 character key",
	Long: `Derive the permuted DES key K+ from an 8 character key.  The key is converted
to 64 bits, one byte per character, and permuted with PC-1 into 56 bits.

The key is taken from the command line, the CLASSICRYPT_DES_KEY environment
variable or, when neither is given, read from the terminal without echo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := getDESKey(args)
		if err != nil {
			return err
		}
		return writeKeySchedule(cmd.OutOrStdout(), key, showTable)
	},
}

func init() {
	rootCmd.AddCommand(deskeyCmd)
	deskeyCmd.Flags().BoolVarP(&showTable, "table", "t", false, "print the PC-1 table")
}

func getDESKey(args []string) (string, error) {
	// Obtain the key from either:
	// 1. Arguments from the entered command line
	// 2. The 'CLASSICRYPT_DES_KEY' environment variable
	// 3. User input from the terminal
	var key string
	if len(args) == 0 {
		if viper.IsSet(desKeyVariable) {
			key = viper.GetString(desKeyVariable)
		} else if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintf(os.Stderr, "Enter the key: ")
			byteKey, err := term.ReadPassword(int(os.Stdin.Fd()))
			if err != nil {
				return "", err
			}
			fmt.Fprintln(os.Stderr, "")
			key = string(byteKey)
		}
	} else {
		key = strings.Join(args, " ")
	}

	if len(key) == 0 {
		return "", errors.Wrapf(cryptors.ErrKeyLength, "you must supply a key of %d characters", permutator.KeySymbols)
	}
	return key, nil
}

func writeKeySchedule(w io.Writer, key string, table bool) error {
	ks, err := permutator.NewKeySchedule(key)
	if err != nil {
		return err
	}
	if err := ks.Verify(); err != nil {
		return err
	}

	if table {
		if _, err := fmt.Fprintf(w, "PC-1:\n%s\n", permutator.PC1); err != nil {
			return err
		}
	}
	_, err = fmt.Fprint(w, ks)
	return err
}
