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
	"strings"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	armorType    = "CLASSICRYPT ENCRYPTED MESSAGE"
	cipherHeader = "Cipher"
)

// encryption describes how encrypted text is written out.
type encryption struct {
	armor   bool
	wrap    bool
	headers map[string]string
}

// encrypt reads the text given on the command line or in the input file,
// encrypts it with c and writes the result.
func encrypt(cmd *cobra.Command, args []string, c cryptors.Cipher, headers map[string]string) error {
	fin, fout, err := getInputAndOutputFiles(cmd, args)
	if err != nil {
		return err
	}
	defer fin.Close()
	defer fout.Close()

	opts := encryption{armor: useArmor, wrap: viper.GetBool("wrap"), headers: headers}
	return encryptText(fin, fout, c, opts)
}

func encryptText(r io.Reader, w io.Writer, c cryptors.Cipher, opts encryption) error {
	text, err := io.ReadAll(r)
	if err = checkError(err); err != nil {
		return err
	}

	logger.Printf("encrypting %d bytes with %s", len(text), c.Name())
	cipherText, err := c.Encrypt(string(text))
	if err != nil {
		return err
	}

	switch {
	case opts.armor:
		var blck pem.Block
		blck.Headers = make(map[string]string)
		blck.Type = armorType
		blck.Headers[cipherHeader] = c.Name()
		for k, v := range opts.headers {
			blck.Headers[k] = v
		}
		_, err = io.Copy(w, pem.ToPem(strings.NewReader(cipherText), blck))
	case opts.wrap:
		_, err = io.Copy(w, lines.SplitToLines(strings.NewReader(cipherText)))
	default:
		_, err = fmt.Fprintln(w, cipherText)
	}

	return checkError(err)
}
