package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func NewEncodeCommand() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a data word into a systematic codeword",
		Long: `Encode a data word with the selected code, appending parity so that
up to t errors per word can later be corrected.

BCH words are bit strings of length k; Reed-Solomon words are comma-separated
symbol values (or a hex string for GF(256)).`,
		Example: `  # Encode 4 data bits with BCH(7,4)
  ecc encode --code bch -m 3 -t 1 --data 1011

  # Encode with a named profile
  ecc encode --profile rs-255-223 --data <223 hex bytes>

  # Reed-Solomon over GF(16)
  ecc encode --code rs -m 4 -t 2 --data "1,2,3,4,5,6,7,8,9,10,11"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")

			cdc, err := resolveCodec(cmd)
			if err != nil {
				return err
			}

			if data == "" {
				data, err = readWordInteractive("Enter data word: ")
				if err != nil {
					return fmt.Errorf("failed to read data word: %w", err)
				}
			}

			codeword, err := cdc.encode(data)
			if err != nil {
				return fmt.Errorf("encoding failed: %w", err)
			}

			if outputJSON {
				return printJSON(map[string]interface{}{
					"data":     data,
					"codeword": codeword,
					"n":        cdc.params().N,
					"k":        cdc.params().K,
				})
			}

			green := color.New(color.FgGreen, color.Bold)
			p := cdc.params()

			fmt.Println()
			green.Println("=== ENCODED CODEWORD ===")
			fmt.Println()
			printParams(p)
			fmt.Println()
			fmt.Printf("Data:     %s\n", data)
			fmt.Printf("Codeword: %s\n", codeword)
			fmt.Println()

			return nil
		},
	}

	addCodeFlags(cmd)
	cmd.Flags().StringVarP(&data, "data", "d", "", "Data word to encode (prompted if omitted)")

	return cmd
}
