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
	"sort"
	"strings"
	"time"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/bgallie/classicrypt/cryptors/frequency"
	"github.com/bgallie/classicrypt/cryptors/session"
	"github.com/bgallie/classicrypt/cryptors/substitution"
	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	autoSubstitute bool
	mapFileName    string
	exportFileName string
	assignments    []string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Break a monoalphabetic substitution by frequency analysis",
	Long: `Count the letters of a cipher text, compare them with a reference
distribution and decode the text through a substitution map.

The map is built from a file (--map), the suggestion derived from the
reference frequencies (--auto) and single assignments (--set C=P, an empty
plain letter removes the mapping), applied in that order.  The reference is
the English distribution unless frequency.reference is set in the config
file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fin, fout, err := getInputAndOutputFiles(cmd, args)
		if err != nil {
			return err
		}
		defer fin.Close()
		defer fout.Close()

		reference, err := referenceTable()
		if err != nil {
			return err
		}

		opts := analysis{
			auto:        autoSubstitute,
			mapFile:     mapFileName,
			exportFile:  exportFileName,
			assignments: assignments,
			reference:   reference,
		}
		_, err = analyzeText(fin, fout, cmd.ErrOrStderr(), opts)
		return err
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&autoSubstitute, "auto", false, "map the cipher letters by frequency rank")
	analyzeCmd.Flags().StringVarP(&mapFileName, "map", "m", "", "JSON or YAML file holding a substitution map")
	analyzeCmd.Flags().StringArrayVar(&assignments, "set", nil, "assign a plain letter to a cipher letter, C=P")
	analyzeCmd.Flags().StringVarP(&exportFileName, "export", "e", "", "write the resulting map to a JSON or YAML file")
}

type analysis struct {
	auto        bool
	mapFile     string
	exportFile  string
	assignments []string
	reference   frequency.Table
}

// referenceTable returns frequency.reference from the config file, or the
// English table.
func referenceTable() (frequency.Table, error) {
	if !viper.IsSet("frequency.reference") {
		return frequency.English, nil
	}

	var ref map[string]float64
	if err := viper.UnmarshalKey("frequency.reference", &ref); err != nil {
		return nil, errors.Wrapf(cryptors.ErrConfiguration, "frequency.reference: %v", err)
	}
	return frequency.ParseReference(ref)
}

func analyzeText(r io.Reader, w, warn io.Writer, opts analysis) (session.Attempt, error) {
	text, err := io.ReadAll(r)
	if err = checkError(err); err != nil {
		return session.Attempt{}, err
	}

	s := session.New()
	s.SetCiphertext(strings.TrimRight(string(text), "\r\n"))

	if opts.mapFile != "" {
		m, err := readMapFile(opts.mapFile)
		if err != nil {
			return session.Attempt{}, err
		}
		s.Import(m)
	}
	if opts.auto {
		s.AutoSubstitute(opts.reference)
	}
	for _, a := range opts.assignments {
		c, p, err := substitution.ParseAssignment(a)
		if err != nil {
			return session.Attempt{}, err
		}
		if err := s.Stage(c, p); err != nil {
			return session.Attempt{}, err
		}
	}
	s.Commit()

	attempt := s.Save(time.Now())
	logger.Printf("saved attempt %s at %s", attempt.ID, attempt.Timestamp)

	if err := writeReport(w, warn, attempt, opts.reference); err != nil {
		return attempt, err
	}
	if opts.exportFile != "" {
		if err := writeMapFile(opts.exportFile, attempt.Substitutions); err != nil {
			return attempt, err
		}
	}

	return attempt, nil
}

func writeReport(w, warn io.Writer, a session.Attempt, reference frequency.Table) error {
	var sb strings.Builder

	fmt.Fprintln(&sb, "Letter  Cipher %  Reference %  Plain")
	for _, e := range a.Frequencies.Sorted() {
		ref, _ := reference.Lookup(e.Symbol)
		plain := "-"
		if p, ok := a.Substitutions[e.Symbol]; ok {
			plain = string(p)
		}
		fmt.Fprintf(&sb, "%-6c  %8.2f  %11.2f  %s\n", e.Symbol, e.Percent, ref, plain)
	}
	fmt.Fprintf(&sb, "\nSubstitutions: %s\n", a.Substitutions)
	fmt.Fprintf(&sb, "\nDecoded text:\n%s\n", a.DecodedText)

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	collisions := a.Substitutions.Collisions()
	plains := make([]rune, 0, len(collisions))
	for p := range collisions {
		plains = append(plains, p)
	}
	sort.Slice(plains, func(i, j int) bool { return plains[i] < plains[j] })
	for _, p := range plains {
		fmt.Fprintf(warn, "Warning: %c is assigned to %s\n", p, string(collisions[p]))
	}

	return nil
}

func readMapFile(name string) (substitution.Map, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return substitution.Import(f, substitution.FormatFor(name))
}

func writeMapFile(name string, m substitution.Map) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := substitution.Export(f, m, substitution.FormatFor(name)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
