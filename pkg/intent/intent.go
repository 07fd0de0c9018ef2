// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package intent turns the loosely structured output of the command
// extractor into a validated provisioning intent. Everything here is pure:
// no remote calls, no logging, no shared state.
package intent

import (
	"fmt"
	"strings"
)

// Kind identifies the resource kind a command asks for. The zero value is
// deliberately invalid so an unset Kind can never dispatch.
type Kind int

const (
	KindInvalid Kind = iota
	KindResourceGroup
	KindStorageAccount
	KindWebApp
	KindFunctionApp
	KindLogicApp
	// KindUnknown marks extractor output that matched no recognized phrase.
	// It is an explicit variant rather than a silent default so the
	// orchestrator can report it without guessing.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindResourceGroup:
		return "resource group"
	case KindStorageAccount:
		return "storage account"
	case KindWebApp:
		return "web app"
	case KindFunctionApp:
		return "function app"
	case KindLogicApp:
		return "logic app"
	case KindUnknown:
		return "unknown"
	}
	return "invalid"
}

// Intent is the normalized provisioning request. Built once per incoming
// command, read-only afterwards.
type Intent struct {
	Kind     Kind
	Name     string
	Location string
}

// Reason classifies why normalization rejected the input.
type Reason string

const (
	ReasonEmptyField       Reason = "EmptyField"
	ReasonUnrecognizedKind Reason = "UnrecognizedKind"
)

// NormalizationError reports invalid extractor output. It is recovered at
// the orchestrator boundary and surfaced as a failed result, never raised
// past it.
type NormalizationError struct {
	Reason Reason
	Field  string
	Value  string
}

func (e *NormalizationError) Error() string {
	switch e.Reason {
	case ReasonEmptyField:
		return fmt.Sprintf("missing required field %q", e.Field)
	case ReasonUnrecognizedKind:
		return fmt.Sprintf("unrecognized resource kind %q", e.Value)
	}
	return fmt.Sprintf("invalid intent field %q", e.Field)
}

// kindPhrases maps recognized resource-kind phrases to their variant.
// Matching is substring based and first match wins, so more specific
// phrases must come before shorter ones.
var kindPhrases = []struct {
	phrase string
	kind   Kind
}{
	{"resource group", KindResourceGroup},
	{"storage account", KindStorageAccount},
	{"function app", KindFunctionApp},
	{"web app", KindWebApp},
	{"logic app", KindLogicApp},
}

// ParseFields extracts the three labeled fields the extractor emits:
//
//	resource_type: <resource-type>
//	name: <resource-name>
//	location: <azure-region>
//
// The fields are parsed positionally in that fixed order. The input is not
// trusted to be clean; a missing label fails parsing instead of crashing.
func ParseFields(text string) (rawKind, rawName, rawLocation string, err error) {
	lower := strings.ToLower(text)

	kindPart, rest, ok := cutLabeled(lower, "resource_type:")
	if !ok {
		return "", "", "", &NormalizationError{Reason: ReasonEmptyField, Field: "resource_type"}
	}
	_ = kindPart // everything before the first label is discarded

	rawKind, rest, ok = cutLabeled(rest, "name:")
	if !ok {
		return "", "", "", &NormalizationError{Reason: ReasonEmptyField, Field: "name"}
	}

	rawName, rawLocation, ok = cutLabeled(rest, "location:")
	if !ok {
		return "", "", "", &NormalizationError{Reason: ReasonEmptyField, Field: "location"}
	}

	return strings.TrimSpace(rawKind), strings.TrimSpace(rawName), strings.TrimSpace(rawLocation), nil
}

// cutLabeled splits s around the first occurrence of label.
func cutLabeled(s, label string) (before, after string, found bool) {
	idx := strings.Index(s, label)
	if idx < 0 {
		return "", "", false
	}
	return s[:idx], s[idx+len(label):], true
}

// Normalize validates and canonicalizes raw extractor fields into an Intent.
//
// The kind is lower-cased, trimmed and matched against the recognized
// phrases; anything else maps to KindUnknown. Name and location must be
// non-empty after trimming. Locations are canonicalized to Azure's short
// form (lowercase, no spaces): "West US 2" becomes "westus2".
func Normalize(rawKind, rawName, rawLocation string) (Intent, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return Intent{}, &NormalizationError{Reason: ReasonEmptyField, Field: "name"}
	}

	location := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(rawLocation), " ", ""))
	if location == "" {
		return Intent{}, &NormalizationError{Reason: ReasonEmptyField, Field: "location"}
	}

	kindText := strings.ToLower(strings.TrimSpace(rawKind))
	kind := KindUnknown
	for _, p := range kindPhrases {
		if strings.Contains(kindText, p.phrase) {
			kind = p.kind
			break
		}
	}

	return Intent{Kind: kind, Name: name, Location: location}, nil
}
