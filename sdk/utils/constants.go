// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

const (
	DefaultConfigFile = "config.yml"
	CurrentProfileKey = "current_profile"

	// ConfirmToken is the only answer that lets a run mutate records.
	ConfirmToken = "Y"
	// QuitToken aborts the input-path prompt.
	QuitToken = "quit"

	ApiURLKey      = "api_url"
	ApiUsernameKey = "api_username"
	ApiPasswordKey = "api_password"
	InputCSVKey    = "input_csv"
	LogFileKey     = "log_file"
	ReportPathKey  = "report_path"
)
