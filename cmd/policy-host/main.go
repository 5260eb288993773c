// Command policy-host runs a sandboxed policy module with the full
// capability set, or prints the wire schemas of the callback contract.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jvanz/policy-sdk-go/host"
	"github.com/jvanz/policy-sdk-go/hostfuncs"
	"github.com/jvanz/policy-sdk-go/infrastructure/oci"
	"github.com/jvanz/policy-sdk-go/infrastructure/sigstore"
	"github.com/jvanz/policy-sdk-go/schema"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "policy-host",
		Short:         "Run sandboxed policies with host capabilities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newSchemaCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		settingsFile string
		requestFile  string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "run POLICY.wasm",
		Short: "Evaluate a request against a policy module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			dispatcher := hostfuncs.NewDispatcher(
				oci.NewClient(),
				sigstore.NewVerifier(),
				hostfuncs.NewResolver(),
			)
			registry, err := hostfuncs.NewRegistry(
				hostfuncs.WithMiddleware(
					hostfuncs.PanicRecoveryMiddleware(),
					hostfuncs.LoggingMiddleware(logger),
				),
				hostfuncs.WithBundle(hostfuncs.CapabilityBundle(dispatcher)),
			)
			if err != nil {
				return err
			}

			ctx := context.Background()
			executor, err := host.NewExecutor(ctx,
				host.WithHostFunctions(registry),
				host.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			defer executor.Close(ctx)

			wasmBytes, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			policy, err := executor.LoadPolicy(ctx, wasmBytes)
			if err != nil {
				return err
			}
			defer policy.Close(ctx)

			if settingsFile != "" {
				settings, err := os.ReadFile(settingsFile)
				if err != nil {
					return err
				}
				res, err := policy.ValidateSettings(ctx, settings)
				if err != nil {
					return err
				}
				if !res.Valid {
					msg := "rejected"
					if res.Message != nil {
						msg = *res.Message
					}
					return fmt.Errorf("policy settings are not valid: %s", msg)
				}
			}

			request, err := os.ReadFile(requestFile)
			if err != nil {
				return err
			}
			verdict, err := policy.Validate(ctx, request)
			if err != nil {
				return err
			}

			if verdict.Accepted {
				logger.Info("request accepted", "mutated", verdict.MutatedObject != nil)
				return nil
			}
			msg := "request rejected"
			if verdict.Message != nil {
				msg = *verdict.Message
			}
			return fmt.Errorf("%s", msg)
		},
	}

	cmd.Flags().StringVar(&settingsFile, "settings", "", "JSON file holding the policy settings")
	cmd.Flags().StringVar(&requestFile, "request", "", "JSON file holding the request to evaluate")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	_ = cmd.MarkFlagRequired("request")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schemas of the callback wire contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schemas, err := schema.WireSchemas()
			if err != nil {
				return err
			}
			for _, name := range schema.Names(schemas) {
				fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s\n", name, schemas[name])
			}
			return nil
		},
	}
}
