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
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile        string
	inputFileName  string
	outputFileName string
	verbose        bool
	useArmor       bool
	Version        string = "dev"
	// logger carries diagnostics to stderr when --verbose is given.
	logger = log.New(io.Discard, "classicrypt: ", 0)
)

const (
	configName = ".classicrypt"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "classicrypt",
	Short: "Classical ciphers and cryptanalysis",
	Long: `classicrypt encrypts and decrypts text with the Caesar, keyed Caesar and
Playfair ciphers, derives the permuted DES key K+ from an 8 character key and
helps break a monoalphabetic substitution by frequency analysis.`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.classicrypt.yaml)")
	rootCmd.PersistentFlags().StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the file holding the text to process.")
	rootCmd.PersistentFlags().StringVarP(&outputFileName, "outputFile", "o", "", "Name of the file receiving the result.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "write diagnostics to stderr")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if verbose {
		logger.SetOutput(os.Stderr)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".classicrypt" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	viper.SetDefault("wrap", true)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logger.Println("Using config file:", viper.ConfigFileUsed())
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

/*
	getInputAndOutputFiles returns the source of the text to process and the
	destination of the result.  Text given on the command line is used before
	the input file.  Without file names the command's stdin and stdout are
	used.
*/
func getInputAndOutputFiles(cmd *cobra.Command, args []string) (io.ReadCloser, io.WriteCloser, error) {
	var fin io.ReadCloser
	var err error

	switch {
	case len(args) > 0:
		fin = io.NopCloser(strings.NewReader(strings.Join(args, " ")))
	case len(inputFileName) > 0 && inputFileName != "-":
		if fin, err = os.Open(inputFileName); err != nil {
			return nil, nil, err
		}
	default:
		fin = io.NopCloser(cmd.InOrStdin())
	}

	var fout io.WriteCloser

	if len(outputFileName) > 0 && outputFileName != "-" {
		if fout, err = os.Create(outputFileName); err != nil {
			fin.Close()
			return nil, nil, err
		}
	} else {
		fout = nopWriteCloser{cmd.OutOrStdout()}
	}

	logger.Printf("Input: [%s] Output: [%s]", inputFileName, outputFileName)
	return fin, fout, nil
}

// checkError drops io.EOF and io.ErrUnexpectedEOF, returning every other error.
func checkError(e error) error {
	if e == io.EOF || e == io.ErrUnexpectedEOF {
		return nil
	}
	return e
}
