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

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/bgallie/classicrypt/cryptors/playfair"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const variantHeader = "Variant"

var (
	playfairKeyword string
	variantName     string
)

// playfairCmd represents the playfair command
var playfairCmd = &cobra.Command{
	Use:   "playfair",
	Short: "Encrypt and decrypt text with the Playfair cipher",
	Long: `Encrypt and decrypt text with the Playfair digraph cipher.  The default 6x5
matrix holds the Latin letters without J followed by ȘȚĂÎÂ; --variant 5x5
selects the classic matrix.`,
}

var playfairEncryptCmd = &cobra.Command{
	Use:   "encrypt [text...]",
	Short: "Encrypt text with the Playfair cipher",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := playfairVariant(cmd, nil)
		if err != nil {
			return err
		}
		c, err := playfair.New(playfairKeyword, playfair.WithVariant(v))
		if err != nil {
			return err
		}
		return encrypt(cmd, args, c, map[string]string{variantHeader: v.String()})
	},
}

var playfairDecryptCmd = &cobra.Command{
	Use:   "decrypt [text...]",
	Short: "Decrypt text encrypted with the Playfair cipher",
	Long: `Decrypt text encrypted with the Playfair cipher.  The matrix variant of an
armored message is taken from its Variant header unless --variant is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return decrypt(cmd, args, func(headers map[string]string) (cryptors.Cipher, error) {
			v, err := playfairVariant(cmd, headers)
			if err != nil {
				return nil, err
			}
			return playfair.New(playfairKeyword, playfair.WithVariant(v))
		})
	},
}

var playfairMatrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the Playfair matrix built from the keyword",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := playfairVariant(cmd, nil)
		if err != nil {
			return err
		}
		c, err := playfair.New(playfairKeyword, playfair.WithVariant(v))
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), c.Matrix())
		return err
	},
}

func init() {
	rootCmd.AddCommand(playfairCmd)
	playfairCmd.AddCommand(playfairEncryptCmd)
	playfairCmd.AddCommand(playfairDecryptCmd)
	playfairCmd.AddCommand(playfairMatrixCmd)
	playfairCmd.PersistentFlags().StringVarP(&playfairKeyword, "keyword", "k", "", "keyword of at least 7 matrix symbols")
	playfairCmd.PersistentFlags().StringVar(&variantName, "variant", "", "matrix variant, 6x5 (default) or 5x5")
	cobra.CheckErr(playfairCmd.MarkPersistentFlagRequired("keyword"))
	playfairEncryptCmd.Flags().BoolVarP(&useArmor, "armor", "a", false, "write the cipher text as a PEM block")
}

// playfairVariant picks the matrix variant from --variant, then the Variant
// header of an armored message, then playfair.variant from the config file.
func playfairVariant(cmd *cobra.Command, headers map[string]string) (playfair.Variant, error) {
	name := variantName
	if !cmd.Flags().Changed("variant") {
		if h, ok := headers[variantHeader]; ok {
			name = h
		} else if viper.IsSet("playfair.variant") {
			name = viper.GetString("playfair.variant")
		}
	}
	return playfair.ParseVariant(name)
}
