package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toolfence/toolfence/internal/audit"
	"github.com/toolfence/toolfence/internal/config"
	"github.com/toolfence/toolfence/internal/hooks"
	"github.com/toolfence/toolfence/internal/policy"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "toolfence",
		Short: "Admission gate for agent tool invocations",
		Long:  `A CLI gate that inspects tool invocations before they execute and blocks commands and file accesses matching a catalog of dangerous patterns.`,
	}

	rootCmd.AddCommand(newPreToolUseCmd())
	rootCmd.AddCommand(newRulesCmd())

	return rootCmd
}

// gateOptions holds the flag-configurable settings shared by the gate
// commands.
type gateOptions struct {
	rulesFile string
	auditLog  string
}

// resolve merges the environment configuration with flags. Flags win.
func (o gateOptions) resolve() (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}

	if o.rulesFile != "" {
		cfg.RulesFile = o.rulesFile
	}
	if o.auditLog != "" {
		cfg.AuditLog = o.auditLog
	}

	return cfg, nil
}

func newPreToolUseCmd() *cobra.Command {
	var opts gateOptions

	cmd := &cobra.Command{
		Use:   "pre-tool-use",
		Short: "Evaluate one tool invocation before it executes",
		Long: `Reads one tool invocation from stdin as JSON and evaluates it against the
pattern catalog. Exits 0 to allow the invocation, 2 to block it, and 1 when
the input cannot be decoded. A fault during evaluation never blocks: the
invocation is allowed and the fault is reported on stderr.`,
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

			var recorder audit.Recorder
			if cfg.AuditLog != "" {
				recorder = audit.NewFileRecorder(cfg.AuditLog)
			}

			exitCode, err := evaluateHook(cmd, catalog, recorder)
			if err != nil {
				return err
			}
			if exitCode != 0 {
				os.Exit(exitCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.rulesFile, "rules-file", "", "YAML rule-set layered on top of the builtin catalog (env TOOLFENCE_RULES_FILE)")
	cmd.Flags().StringVar(&opts.auditLog, "audit-log", "", "append one JSON line per decision to this file (env TOOLFENCE_AUDIT_LOG)")

	return cmd
}

// loadCatalog returns the builtin catalog, extended with the rule-set at
// rulesFile when one is configured.
func loadCatalog(rulesFile string) (*policy.Catalog, error) {
	catalog := policy.Default()
	if rulesFile == "" {
		return catalog, nil
	}

	ruleSet, err := policy.LoadRuleSet(rulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules file: %w", err)
	}

	return catalog.Extend(ruleSet)
}

// evaluateHook reads one invocation from the command's input and decides its
// exit code: 0 to allow, 2 to block. A decode failure is returned as an
// error so the caller fails closed; undecodable input is the one condition
// where the gate cannot tell what it would be allowing. Any fault after
// decoding fails open with a diagnostic on stderr, so a broken gate cannot
// lock the caller out.
func evaluateHook(cmd *cobra.Command, catalog *policy.Catalog, recorder audit.Recorder) (exitCode int, err error) {
	var input *hooks.ToolInput

	defer func() {
		if r := recover(); r != nil {
			reportFault(cmd, recorder, input, fmt.Errorf("panic: %v", r))
			exitCode, err = 0, nil
		}
	}()

	input, err = hooks.ParseToolInput(cmd.InOrStdin())
	if err != nil {
		return 0, fmt.Errorf("failed to parse hook input: %w", err)
	}

	engine := hooks.NewRuleEngine(
		hooks.NewDangerousCommandRule(catalog),
		hooks.NewSensitivePathRule(catalog),
	)

	result, err := engine.Evaluate(input)
	if err != nil {
		reportFault(cmd, recorder, input, err)
		return 0, nil
	}

	if !result.Allowed {
		fmt.Fprintf(cmd.ErrOrStderr(), "Blocked by rule %s: %s\n", result.RuleName, result.Message)
		record(cmd, recorder, audit.NewEntry(input.Tool, audit.DecisionDeny, result.RuleName, result.Message))
		return 2, nil
	}

	record(cmd, recorder, audit.NewEntry(input.Tool, audit.DecisionAllow, "", ""))
	return 0, nil
}

// reportFault reports an evaluation fault on stderr and records it with the
// fail-open decision.
func reportFault(cmd *cobra.Command, recorder audit.Recorder, input *hooks.ToolInput, fault error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "hook error (allowing tool call): %v\n", fault)

	tool := ""
	if input != nil {
		tool = input.Tool
	}
	record(cmd, recorder, audit.NewEntry(tool, audit.DecisionError, "", fault.Error()))
}

// record writes one audit entry. Recording failures are reported on stderr
// and never change the decision.
func record(cmd *cobra.Command, recorder audit.Recorder, entry audit.Entry) {
	if recorder == nil {
		return
	}
	if err := recorder.Record(entry); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "failed to record audit entry: %v\n", err)
	}
}
