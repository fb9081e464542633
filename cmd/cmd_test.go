package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/bgallie/classicrypt/cryptors/frequency"
	"github.com/bgallie/classicrypt/cryptors/playfair"
	"github.com/bgallie/classicrypt/cryptors/substitution"
	"github.com/spf13/cobra"
)

func fixed(c cryptors.Cipher) cipherBuilder {
	return func(map[string]string) (cryptors.Cipher, error) { return c, nil }
}

func TestNewCaesar(t *testing.T) {
	tests := []struct {
		name    string
		shift   int
		keyword string
		err     error
	}{
		{"plain", 3, "", nil},
		{"keyed", 2, "SECRETKEY", nil},
		{"zero shift", 0, "", cryptors.ErrInvalidKey},
		{"large shift", 26, "", cryptors.ErrInvalidKey},
		{"short keyword", 3, "KEY", cryptors.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newCaesar(tt.shift, tt.keyword)
			if tt.err == nil && err != nil {
				t.Errorf("unexpected error %v", err)
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestEncryptDecryptText(t *testing.T) {
	caesar, err := newCaesar(3, "")
	if err != nil {
		t.Fatal(err)
	}
	pf, err := playfair.New("MONARCHY")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		cipher cryptors.Cipher
		plain  string
		opts   encryption
		want   string
	}{
		{"caesar plain", caesar, "Hello world", encryption{}, "KHOORZRUOG"},
		{"caesar wrapped", caesar, strings.Repeat("attack at dawn ", 10), encryption{wrap: true}, strings.Repeat("DWWDFNDWGDZQ", 10)},
		{"caesar armored", caesar, "Hello world", encryption{armor: true}, "KHOORZRUOG"},
		{"playfair armored", pf, "instruments", encryption{armor: true, headers: map[string]string{variantHeader: "6x5"}}, "GATLMZCLRQXÎ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var enc bytes.Buffer
			if err := encryptText(strings.NewReader(tt.plain), &enc, tt.cipher, tt.opts); err != nil {
				t.Fatalf("encryptText failed: %v", err)
			}
			if tt.opts.armor != strings.HasPrefix(enc.String(), "-----") {
				t.Errorf("unexpected armoring:\n%s", enc.String())
			}

			text, headers, err := readCipherText(strings.NewReader(enc.String()))
			if err != nil {
				t.Fatal(err)
			}
			if text != tt.want {
				t.Errorf("expected cipher text %s, got %s", tt.want, text)
			}
			if tt.opts.armor && headers[cipherHeader] != tt.cipher.Name() {
				t.Errorf("expected Cipher header %s, got %v", tt.cipher.Name(), headers)
			}

			var dec bytes.Buffer
			if err := decryptText(strings.NewReader(enc.String()), &dec, fixed(tt.cipher)); err != nil {
				t.Fatalf("decryptText failed: %v", err)
			}
			want, err := tt.cipher.Decrypt(tt.want)
			if err != nil {
				t.Fatal(err)
			}
			if got := strings.TrimSpace(dec.String()); got != want {
				t.Errorf("expected %s, got %s", want, got)
			}
		})
	}
}

func TestDecryptRejectsOtherCipher(t *testing.T) {
	caesar, err := newCaesar(3, "")
	if err != nil {
		t.Fatal(err)
	}
	pf, err := playfair.New("MONARCHY")
	if err != nil {
		t.Fatal(err)
	}

	var enc bytes.Buffer
	if err := encryptText(strings.NewReader("attack"), &enc, pf, encryption{armor: true}); err != nil {
		t.Fatal(err)
	}
	err = decryptText(strings.NewReader(enc.String()), new(bytes.Buffer), fixed(caesar))
	if !errors.Is(err, cryptors.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestPlayfairVariant(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&variantName, "variant", "", "")

	v, err := playfairVariant(cmd, nil)
	if err != nil || v != playfair.Extended {
		t.Errorf("expected the extended default, got %v, %v", v, err)
	}
	v, err = playfairVariant(cmd, map[string]string{variantHeader: "5x5"})
	if err != nil || v != playfair.Classic {
		t.Errorf("expected the header variant, got %v, %v", v, err)
	}

	if err := cmd.Flags().Set("variant", "6x5"); err != nil {
		t.Fatal(err)
	}
	defer func() { variantName = "" }()
	v, err = playfairVariant(cmd, map[string]string{variantHeader: "5x5"})
	if err != nil || v != playfair.Extended {
		t.Errorf("--variant must win over the header, got %v, %v", v, err)
	}
}

func TestWriteKeySchedule(t *testing.T) {
	var out bytes.Buffer
	if err := writeKeySchedule(&out, "12345678", true); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"PC-1:", "57  49  41", "Hexadecimal Key: 3132333435363738", "Permuted Key K+ (Hex): 0000FFF667880F"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output misses %q:\n%s", want, out.String())
		}
	}

	if err := writeKeySchedule(new(bytes.Buffer), "1234567", false); !errors.Is(err, cryptors.ErrKeyLength) {
		t.Errorf("expected ErrKeyLength, got %v", err)
	}
}

func TestGetDESKeyFromArgs(t *testing.T) {
	key, err := getDESKey([]string{"pass", "wd"})
	if err != nil {
		t.Fatal(err)
	}
	if key != "pass wd" {
		t.Errorf("expected the joined arguments, got %q", key)
	}
}

func TestAnalyzeText(t *testing.T) {
	dir := t.TempDir()
	export := filepath.Join(dir, "map.yaml")

	var out, warn bytes.Buffer
	opts := analysis{
		auto:        true,
		exportFile:  export,
		assignments: []string{"K=E"},
		reference:   frequency.English,
	}
	a, err := analyzeText(strings.NewReader("KHOOR\n"), &out, &warn, opts)
	if err != nil {
		t.Fatal(err)
	}

	if a.DecodedText != "EAEEO" {
		t.Errorf("expected EAEEO, got %s", a.DecodedText)
	}
	if a.ID == "" || a.Ciphertext != "KHOOR" {
		t.Errorf("unexpected attempt %+v", a)
	}
	if !strings.Contains(out.String(), "Decoded text:\nEAEEO") {
		t.Errorf("unexpected report:\n%s", out.String())
	}
	if !strings.Contains(warn.String(), "E is assigned to KO") {
		t.Errorf("expected a collision warning, got %q", warn.String())
	}

	f, err := os.Open(export)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	m, err := substitution.Import(f, substitution.YAML)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equal(a.Substitutions) {
		t.Errorf("exported %s, want %s", m, a.Substitutions)
	}
}

func TestAnalyzeTextWithMapFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "map.json")
	if err := os.WriteFile(name, []byte(`{"K": "H", "H": "E", "O": "L", "R": "O"}`), 0600); err != nil {
		t.Fatal(err)
	}

	opts := analysis{mapFile: name, assignments: []string{"R="}, reference: frequency.English}
	a, err := analyzeText(strings.NewReader("Khoor"), new(bytes.Buffer), new(bytes.Buffer), opts)
	if err != nil {
		t.Fatal(err)
	}
	if a.DecodedText != "Hellr" {
		t.Errorf("expected Hellr, got %s", a.DecodedText)
	}

	opts.assignments = []string{"KH"}
	if _, err := analyzeText(strings.NewReader("Khoor"), new(bytes.Buffer), new(bytes.Buffer), opts); !errors.Is(err, cryptors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
