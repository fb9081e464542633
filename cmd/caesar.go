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
	"io"
	"strings"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/bgallie/classicrypt/cryptors/substitution"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	shift         int
	caesarKeyword string
	strict        bool
)

// caesarCmd represents the caesar command
var caesarCmd = &cobra.Command{
	Use:   "caesar",
	Short: "Shift text with the Caesar or keyed Caesar cipher",
	Long: `Shift text with the Caesar cipher.  With --keyword the letters are shifted
over an alphabet that starts with the keyword (keyed Caesar).`,
}

var caesarEncryptCmd = &cobra.Command{
	Use:   "encrypt [text...]",
	Short: "Encrypt text with the Caesar cipher",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := caesarCipher(cmd)
		if err != nil {
			return err
		}
		if strict {
			return encryptStrict(cmd, args, c)
		}
		return encrypt(cmd, args, c, nil)
	},
}

var caesarDecryptCmd = &cobra.Command{
	Use:   "decrypt [text...]",
	Short: "Decrypt text encrypted with the Caesar cipher",
	RunE: func(cmd *cobra.Command, args []string) error {
		return decrypt(cmd, args, func(map[string]string) (cryptors.Cipher, error) {
			return caesarCipher(cmd)
		})
	},
}

func init() {
	rootCmd.AddCommand(caesarCmd)
	caesarCmd.AddCommand(caesarEncryptCmd)
	caesarCmd.AddCommand(caesarDecryptCmd)
	caesarCmd.PersistentFlags().IntVarP(&shift, "shift", "s", 3, "number of positions to shift, 1 to 25")
	caesarCmd.PersistentFlags().StringVarP(&caesarKeyword, "keyword", "k", "", "keyword of at least 7 letters that starts the alphabet")
	caesarEncryptCmd.Flags().BoolVarP(&useArmor, "armor", "a", false, "write the cipher text as a PEM block")
	caesarEncryptCmd.Flags().BoolVar(&strict, "strict", false, "reject text holding anything but letters and white space")
}

// caesarCipher builds the cipher from the flags.  The shift falls back to
// caesar.shift from the config file when --shift is not given.
func caesarCipher(cmd *cobra.Command) (cryptors.Cipher, error) {
	k := shift
	if !cmd.Flags().Changed("shift") && viper.IsSet("caesar.shift") {
		k = viper.GetInt("caesar.shift")
	}
	return newCaesar(k, caesarKeyword)
}

func newCaesar(k int, keyword string) (cryptors.Cipher, error) {
	if err := substitution.ValidateShift(k); err != nil {
		return nil, err
	}
	if keyword == "" {
		return substitution.NewCaesar(k), nil
	}
	return substitution.NewKeyedCaesar(keyword, k)
}

func encryptStrict(cmd *cobra.Command, args []string, c cryptors.Cipher) error {
	fin, fout, err := getInputAndOutputFiles(cmd, args)
	if err != nil {
		return err
	}
	defer fin.Close()
	defer fout.Close()

	text, err := io.ReadAll(fin)
	if err = checkError(err); err != nil {
		return err
	}
	if err := substitution.ValidateText(strings.TrimRight(string(text), "\r\n")); err != nil {
		return err
	}

	opts := encryption{armor: useArmor, wrap: viper.GetBool("wrap")}
	return encryptText(strings.NewReader(string(text)), fout, c, opts)
}
