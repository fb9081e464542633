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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"
)

// cipherBuilder creates the cipher for a decryption.  headers holds the PEM
// headers of armored input and is empty otherwise.
type cipherBuilder func(headers map[string]string) (cryptors.Cipher, error)

func decrypt(cmd *cobra.Command, args []string, build cipherBuilder) error {
	fin, fout, err := getInputAndOutputFiles(cmd, args)
	if err != nil {
		return err
	}
	defer fin.Close()
	defer fout.Close()

	return decryptText(fin, fout, build)
}

// readCipherText returns the cipher text held by r.  Armored input is
// recognized by its leading "-----" and unwrapped; wrapped lines are joined.
func readCipherText(r io.Reader) (string, map[string]string, error) {
	bRdr := bufio.NewReader(r)
	b, err := bRdr.Peek(5)
	if err = checkError(err); err != nil {
		return "", nil, err
	}

	var data []byte
	headers := make(map[string]string)
	if string(b) == "-----" {
		pRdr, blck := pem.FromPem(bRdr)
		for k, v := range blck.Headers {
			headers[k] = v
		}
		data, err = io.ReadAll(pRdr)
	} else {
		data, err = io.ReadAll(lines.CombineLines(bRdr))
	}
	if err = checkError(err); err != nil {
		return "", nil, err
	}

	return strings.TrimRight(string(data), "\r\n"), headers, nil
}

func decryptText(r io.Reader, w io.Writer, build cipherBuilder) error {
	cipherText, headers, err := readCipherText(r)
	if err != nil {
		return err
	}

	c, err := build(headers)
	if err != nil {
		return err
	}
	if name, ok := headers[cipherHeader]; ok && name != c.Name() {
		return errors.Wrapf(cryptors.ErrConfiguration, "message was encrypted with %s, not %s", name, c.Name())
	}

	logger.Printf("decrypting %d bytes with %s", len(cipherText), c.Name())
	plainText, err := c.Decrypt(cipherText)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, plainText)
	return checkError(err)
}
