// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

// Config is what the services receive; loading (viper/INI) happens in utils.
type Config struct {
	Core CoreConfig
	S3   S3Config
}

type CoreConfig struct {
	BaseURL  string
	Username string
	Password string
	// Session token returned by login; empty until authenticated.
	Session string
}

type S3Config struct {
	AccessKey   string
	SecretKey   string
	AccessToken string
	Region      string
	EndpointURL string
}

// WithSession returns a copy of the config carrying the session token.
func (c Config) WithSession(token string) Config {
	c.Core.Session = token
	return c
}
