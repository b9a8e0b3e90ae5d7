// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.validateStorage(); err != nil {
		return err
	}

	switch {
	case cfg.App.TokenSignKey == "":
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	case cfg.App.TokenDuration <= 0:
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	case cfg.App.BcryptCost < minBcryptCost || cfg.App.BcryptCost > maxBcryptCost:
		return fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidAppConfigs, cfg.App.BcryptCost)
	case cfg.App.Env != EnvDevelopment && cfg.App.Env != EnvProduction:
		return fmt.Errorf("%w: unknown env %q", ErrInvalidAppConfigs, cfg.App.Env)
	}

	if _, err := url.ParseRequestURI(cfg.App.PublicURL); err != nil {
		return fmt.Errorf("%w: public url: %w", ErrInvalidAppConfigs, err)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidServerConfigs)
	}

	if cfg.Adapter.Payment.SecretKey != "" && cfg.Adapter.Payment.BaseURL == "" {
		return fmt.Errorf("%w: payment base url is required", ErrInvalidAdapterConfigs)
	}

	return nil
}

func (cfg *StructuredConfig) validateStorage() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database dsn is required", ErrInvalidStorageConfigs)
	}
	return nil
}
