// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aspace-tools/caption-linker/sdk/logging"
	"github.com/aspace-tools/caption-linker/sdk/services/auth"
	"github.com/aspace-tools/caption-linker/sdk/services/batch"
	"github.com/aspace-tools/caption-linker/sdk/services/records"
	"github.com/aspace-tools/caption-linker/sdk/services/transfer"
	"github.com/aspace-tools/caption-linker/sdk/utils"
)

type createOptions struct {
	configFile     string
	configExplicit bool
	profile        string
}

type streams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newCreateCmd() *cobra.Command {
	var opts createOptions
	v := utils.NewViper()

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create caption and transcript records for every CSV row",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configExplicit = cmd.Flags().Changed("config")
			return runCreate(cmd.Context(), v, opts, streams{
				in:     cmd.InOrStdin(),
				out:    cmd.OutOrStdout(),
				errOut: cmd.ErrOrStderr(),
			})
		},
	}

	cmd.Flags().StringVar(&opts.configFile, "config", utils.DefaultConfigFile, "Config file (YAML, or INI with profiles)")
	cmd.Flags().StringVar(&opts.profile, "env", "", "INI profile section to use (default: DEFAULT.current_profile)")
	cmd.Flags().String("input", "", "Input CSV, local path or s3://bucket/key (overrides input_csv)")
	cmd.Flags().String("api-url", "", "ArchivesSpace API url (overrides api_url)")
	cmd.Flags().String("log-file", "", "Append-only diagnostics log (overrides log_file)")
	cmd.Flags().String("report", "", "Write a YAML run report, local path or s3://bucket/key (overrides report_path)")

	_ = v.BindPFlag(utils.InputCSVKey, cmd.Flags().Lookup("input"))
	_ = v.BindPFlag(utils.ApiURLKey, cmd.Flags().Lookup("api-url"))
	_ = v.BindPFlag(utils.LogFileKey, cmd.Flags().Lookup("log-file"))
	_ = v.BindPFlag(utils.ReportPathKey, cmd.Flags().Lookup("report"))

	return cmd
}

func runCreate(ctx context.Context, v *viper.Viper, opts createOptions, st streams) error {
	settings, profile, err := utils.LoadSettings(v, utils.LoadOptions{
		ConfigFile: opts.configFile,
		Optional:   !opts.configExplicit,
		Profile:    opts.profile,
	})
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	runID := utils.NewRunID()
	logger, closer, err := logging.Open(settings.LogFile, settings.LogLevel, settings.LogFormat, runID)
	if err != nil {
		return err
	}
	defer closer.Close()

	if profile != "" {
		fmt.Fprintf(st.out, "Using profile: [%s]\n", profile)
	}
	fmt.Fprint(st.out, utils.PrettyYAML(settings.Redacted()))
	logger.Info("run started", "api_url", settings.APIURL, "input", settings.InputCSV)

	conf := settings.Config()
	prompter := utils.NewPrompter(st.in, st.out)

	tr := transfer.NewTransferService(ctx, conf, logger)
	input, err := tr.OpenInputWithRetry(ctx, transfer.InputRetryRequest{
		InputRequest: transfer.InputRequest{Location: settings.InputCSV, Required: batch.RequiredColumns()},
		MaxAttempts:  settings.MaxInputAttempts,
		Prompter:     &pathPrompter{p: prompter, out: st.out, initial: settings.InputCSV},
	})
	if err != nil {
		logger.Error("cannot open input", "error", err)
		return err
	}

	confirmed, err := prompter.Confirm(fmt.Sprintf(
		"Enter '%s' to confirm that your inputs are correct and run the update. Enter any key to quit:\n"+
			"    ArchivesSpace instance: %s\n"+
			"    CSV input file: %s (%d rows)\n\n%s?: ",
		utils.ConfirmToken, conf.Core.BaseURL, input.Location, input.Total(), utils.ConfirmToken), utils.ConfirmToken)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(st.out, "Aborted.")
		logger.Info("run aborted at confirmation")
		return utils.ErrAborted
	}

	creds := auth.Credentials{BaseURL: conf.Core.BaseURL, Username: conf.Core.Username, Password: conf.Core.Password}
	if creds.Username == "" {
		if creds.Username, err = prompter.Ask("Please enter your username: "); err != nil {
			return err
		}
		if creds.Password, err = prompter.Ask("Please enter your password: "); err != nil {
			return err
		}
	}
	authSvc := auth.NewAuthService(ctx, nil, logger)
	sess, err := authSvc.LoginWithRetry(ctx, auth.LoginRequest{
		Credentials: creds,
		MaxAttempts: settings.MaxLoginAttempts,
		Prompter:    &credentialsPrompter{p: prompter, out: st.out, baseURL: conf.Core.BaseURL},
	})
	if err != nil {
		fmt.Fprintln(st.out, "Login failed!")
		logger.Error("login failed", "error", err)
		return err
	}
	fmt.Fprintln(st.out, "Login successful!")

	rs, err := records.NewRecordsService(ctx, conf.WithSession(sess.Token), logger)
	if err != nil {
		return err
	}
	bs, err := batch.NewBatchService(ctx, rs, logger)
	if err != nil {
		return err
	}

	sum := bs.Process(ctx, batch.ProcessRequest{
		Rows:     input.Rows,
		Total:    input.Total(),
		Progress: utils.NewRowProgress(st.errOut, input.Total()),
		RunID:    runID,
	})
	logger.Info("run finished",
		"processed", sum.Processed, "done", sum.Done, "skipped", sum.Skipped, "failed", sum.Failed,
		"units_created", sum.UnitsCreated, "units_failed", sum.UnitsFailed)

	counts := sum
	counts.Rows = nil
	fmt.Fprint(st.out, utils.PrettyYAML(counts))

	if settings.ReportPath != "" {
		if err := tr.WriteReport(ctx, transfer.ReportRequest{Location: settings.ReportPath, Summary: sum}); err != nil {
			logger.Error("cannot write report", "error", err)
			return err
		}
		fmt.Fprintf(st.out, "Report written to %s\n", settings.ReportPath)
	}

	if sum.Cancelled {
		return ctx.Err()
	}
	return nil
}
