package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/toolfence/toolfence/internal/policy"
)

// ruleSetFileName is the file name written by "rules init".
const ruleSetFileName = "toolfence-rules.yaml"

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and manage the pattern catalog",
		Long:  `Inspect the rules the gate enforces and manage the rule-set file layered on top of the builtin catalog.`,
	}

	cmd.AddCommand(newRulesListCmd())
	cmd.AddCommand(newRulesInitCmd())
	cmd.AddCommand(newRulesValidateCmd())

	return cmd
}

func newRulesListCmd() *cobra.Command {
	var opts gateOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every rule of the catalog",
		Long:  `Prints every rule of the builtin catalog, with the rules of the configured rule-set layered on top.`,
		Example: `  # List the builtin catalog
  toolfence rules list

  # List the catalog with a rule-set layered on top
  toolfence rules list --rules-file toolfence-rules.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}

			catalog, err := loadCatalog(cfg.RulesFile)
			if err != nil {
				return err
			}

			printRules(cmd, "commands/exact", catalog.CommandExact())
			printRules(cmd, "commands/patterns", catalog.CommandPatterns())
			printRules(cmd, "paths/exact", catalog.PathExact())
			printRules(cmd, "paths/patterns", catalog.PathPatterns())

			return nil
		},
	}

	cmd.Flags().StringVar(&opts.rulesFile, "rules-file", "", "YAML rule-set layered on top of the builtin catalog (env TOOLFENCE_RULES_FILE)")

	return cmd
}

func printRules(cmd *cobra.Command, header string, rules []string) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", header)
	for _, rule := range rules {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", rule)
	}
}

func newRulesInitCmd() *cobra.Command {
	var outputDir string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter rule-set file",
		Long:  `Writes a commented starter rule-set file to extend the builtin catalog with.`,
		Example: `  # Write toolfence-rules.yaml to the current directory
  toolfence rules init

  # Write to a configuration directory
  toolfence rules init --output-dir /etc/toolfence

  # Overwrite an existing file
  toolfence rules init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(outputDir, ruleSetFileName)

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", outputDir, err)
			}

			if err := os.WriteFile(path, policy.StarterRuleSet(), 0o644); err != nil {
				return fmt.Errorf("failed to write file %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "Directory to write the rule-set file to")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func newRulesValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a rule-set file",
		Long:  `Checks that a rule-set file parses, that its version is supported, and that every rule in it is usable. All invalid rules are reported.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleSet, err := policy.LoadRuleSet(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (%d rules)\n", args[0], ruleSet.Len())
			return nil
		},
	}
}
