package cli

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fieldlab/ecc/pkg/config"
)

func NewInfoCommand() *cobra.Command {
	var listProfiles bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show parameters of a code or list available profiles",
		Example: `  # Parameters of BCH(15,7)
  ecc info --code bch -m 4 -t 2

  # Parameters of a named profile
  ecc info --profile rs-255-223

  # List builtin and user-defined profiles
  ecc info --profiles`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("json")

			if listProfiles {
				return runListProfiles(outputJSON)
			}

			cdc, err := resolveCodec(cmd)
			if err != nil {
				return err
			}

			p := cdc.params()
			if outputJSON {
				return printJSON(p)
			}

			cyan := color.New(color.FgCyan, color.Bold)

			fmt.Println()
			cyan.Println("=== CODE PARAMETERS ===")
			fmt.Println()
			printParams(p)
			fmt.Println()

			return nil
		},
	}

	addCodeFlags(cmd)
	cmd.Flags().BoolVar(&listProfiles, "profiles", false, "List available code profiles")

	return cmd
}

func runListProfiles(outputJSON bool) error {
	manager, err := config.NewManager("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	profiles := make(map[string]config.Profile)
	for name, p := range config.BuiltinProfiles() {
		profiles[name] = p
	}
	for name, p := range manager.Config().Profiles {
		profiles[name] = p
	}

	if outputJSON {
		return printJSON(profiles)
	}

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow)

	fmt.Println()
	cyan.Println("=== CODE PROFILES ===")
	fmt.Println()
	for _, name := range names {
		p := profiles[name]
		yellow.Printf("%-14s", name)
		if p.Code == "bch" {
			fmt.Printf(" BCH over GF(2^%d), t=%d", p.M, p.T)
		} else {
			fmt.Printf(" RS(%d,%d) over GF(2^%d)", p.N, p.K, p.M)
		}
		if p.Description != "" {
			fmt.Printf("  %s", p.Description)
		}
		fmt.Println()
	}
	fmt.Println()

	return nil
}
