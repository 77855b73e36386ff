// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, profile, err := LoadSettings(NewViper(), LoadOptions{ConfigFile: "does-not-exist.yml", Optional: true})
	require.NoError(t, err)
	assert.Empty(t, profile)
	assert.Equal(t, "log.log", s.LogFile)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 3, s.MaxLoginAttempts)
	assert.Equal(t, 3, s.MaxInputAttempts)
	assert.Equal(t, "us-east-1", s.AwsRegion)
}

func TestLoadSettingsMissingExplicitFile(t *testing.T) {
	_, _, err := LoadSettings(NewViper(), LoadOptions{ConfigFile: "does-not-exist.yml"})
	require.Error(t, err)
}

func TestLoadSettingsYAML(t *testing.T) {
	path := writeFile(t, "config.yml", `
api_url: http://localhost:8089
api_username: admin
api_password: secret
input_csv: " input.csv "
max_login_attempts: 5
`)
	s, profile, err := LoadSettings(NewViper(), LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Empty(t, profile)
	assert.Equal(t, "http://localhost:8089", s.APIURL)
	assert.Equal(t, "admin", s.APIUsername)
	assert.Equal(t, "input.csv", s.InputCSV)
	assert.Equal(t, 5, s.MaxLoginAttempts)
	require.NoError(t, s.Validate())
}

func TestLoadSettingsEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "config.yml", "api_url: http://file:8089\n")
	t.Setenv("ASPACE_API_URL", "http://env:8089")

	s, _, err := LoadSettings(NewViper(), LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "http://env:8089", s.APIURL)
}

const iniProfiles = `
api_username = admin
current_profile = staging

[staging]
api_url = http://staging:8089

[production]
api_url = https://aspace.example.org/api
api_username = archivist
`

func TestLoadSettingsINICurrentProfile(t *testing.T) {
	path := writeFile(t, "config.ini", iniProfiles)

	s, profile, err := LoadSettings(NewViper(), LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "staging", profile)
	assert.Equal(t, "http://staging:8089", s.APIURL)
	assert.Equal(t, "admin", s.APIUsername)
}

func TestLoadSettingsINIExplicitProfile(t *testing.T) {
	path := writeFile(t, "config.ini", iniProfiles)

	s, profile, err := LoadSettings(NewViper(), LoadOptions{ConfigFile: path, Profile: "production"})
	require.NoError(t, err)
	assert.Equal(t, "production", profile)
	assert.Equal(t, "https://aspace.example.org/api", s.APIURL)
	assert.Equal(t, "archivist", s.APIUsername)
}

func TestLoadSettingsINIUnknownProfile(t *testing.T) {
	path := writeFile(t, "config.ini", iniProfiles)

	_, _, err := LoadSettings(NewViper(), LoadOptions{ConfigFile: path, Profile: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestValidate(t *testing.T) {
	s := Settings{APIURL: "https://aspace.example.org/api", LogFile: "log.log", MaxLoginAttempts: 1, MaxInputAttempts: 1}
	require.NoError(t, s.Validate())

	bad := s
	bad.APIURL = "ftp://aspace"
	bad.MaxLoginAttempts = 0
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_url")
	assert.Contains(t, err.Error(), "max_login_attempts")

	bad = s
	bad.APIURL = ""
	assert.ErrorContains(t, bad.Validate(), "api_url is required")
}

func TestRedacted(t *testing.T) {
	s := Settings{APIURL: "http://localhost:8089", APIPassword: "secret", AwsSecretAccessKey: "key", LogFile: "log.log"}
	r := s.Redacted()

	assert.Equal(t, "http://localhost:8089", r["api_url"])
	assert.Equal(t, "********", r["api_password"])
	assert.Equal(t, "********", r["aws_secret_access_key"])
	assert.NotContains(t, r, "api_username")
}

func TestSettingsConfig(t *testing.T) {
	s := Settings{APIURL: "http://localhost:8089", APIUsername: "admin", AwsRegion: "eu-west-1", AwsEndpointURL: "http://minio:9000"}
	c := s.Config()
	assert.Equal(t, "http://localhost:8089", c.Core.BaseURL)
	assert.Equal(t, "admin", c.Core.Username)
	assert.Empty(t, c.Core.Session)
	assert.Equal(t, "eu-west-1", c.S3.Region)
	assert.Equal(t, "http://minio:9000", c.S3.EndpointURL)
}
