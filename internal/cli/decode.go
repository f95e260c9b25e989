package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func NewDecodeCommand() *cobra.Command {
	var word string

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a received word, correcting up to t errors",
		Long: `Decode a received word with the selected code. Up to t corrupted
positions are located and corrected; words with more errors are reported
as uncorrectable and the data portion is returned as received.`,
		Example: `  # Decode a BCH(7,4) word with one flipped bit
  ecc decode --code bch -m 3 -t 1 --word 0110011

  # Decode with a named profile, JSON output
  ecc decode --profile bch-15-2 --word 101100111000101 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")

			cdc, err := resolveCodec(cmd)
			if err != nil {
				return err
			}

			if word == "" {
				word, err = readWordInteractive("Enter received word: ")
				if err != nil {
					return fmt.Errorf("failed to read received word: %w", err)
				}
			}

			report, err := cdc.decode(word)
			if err != nil {
				return fmt.Errorf("decoding failed: %w", err)
			}

			if outputJSON {
				return printJSON(report)
			}

			green := color.New(color.FgGreen, color.Bold)
			red := color.New(color.FgRed, color.Bold)

			fmt.Println()
			if report.Success {
				green.Println("=== DECODE SUCCEEDED ===")
			} else {
				red.Println("=== DECODE FAILED ===")
			}
			fmt.Println()
			fmt.Printf("Received:         %s\n", word)
			fmt.Printf("Data:             %s\n", report.Data)
			fmt.Printf("Errors corrected: %d\n", report.ErrorsCorrected)
			if len(report.ErrorPositions) > 0 {
				fmt.Printf("Error positions:  %v\n", report.ErrorPositions)
			}
			if !report.Success {
				fmt.Println()
				red.Printf("More than %d errors detected, data returned as received\n", cdc.params().T)
			}
			fmt.Println()

			return nil
		},
	}

	addCodeFlags(cmd)
	cmd.Flags().StringVarP(&word, "word", "w", "", "Received word to decode (prompted if omitted)")

	return cmd
}
