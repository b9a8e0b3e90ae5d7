// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// defaultConfig returns the values used for every field no other source sets.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Env:            EnvDevelopment,
			TokenIssuer:    "natours",
			TokenDuration:  90 * 24 * time.Hour,
			CookieDuration: 90 * 24 * time.Hour,
			BcryptCost:     12,
			ResetTokenTTL:  10 * time.Minute,
			PublicURL:      "http://localhost:8080",
		},
		Server: Server{
			HTTPAddress:     "0.0.0.0:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxBodyBytes:    10 << 10,
		},
		Storage: Storage{
			Cache: Cache{
				TTL: 10 * time.Minute,
			},
		},
		Adapter: Adapter{
			Payment: Payment{
				BaseURL:  "https://api.stripe.com",
				Currency: "inr",
				Timeout:  10 * time.Second,
			},
			Mailer: Mailer{
				Queue: "natours.emails",
				From:  "Natours <hello@natours.dev>",
			},
		},
	}
}
