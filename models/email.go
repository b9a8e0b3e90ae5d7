// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Email templates known to the delivery service.
const (
	EmailTemplateWelcome       = "welcome"
	EmailTemplatePasswordReset = "passwordReset"
)

// Email is a templated message handed over to the delivery service.
type Email struct {
	Template string            `json:"template"`
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Vars     map[string]string `json:"vars,omitempty"`
}
