// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EventRecord is one normalized country/event entry extracted from a
// bulletin. String fields hold "" when the source column was absent; date
// fields hold ISO 8601 calendar dates (YYYY-MM-DD) or ""; count fields are
// nil when the source cell was empty, "-", or unparseable.
type EventRecord struct {
	// ISO3 is the ISO 3166-1 alpha-3 code resolved from Country, or ""
	// when the name could not be resolved.
	ISO3 string `json:"iso3" yaml:"iso3"`

	// Country is the country name as printed in the bulletin.
	Country string `json:"country" yaml:"country"`

	// EventName is the outbreak or emergency name (e.g. "Cholera").
	EventName string `json:"event_name" yaml:"event_name"`

	// Grade is the WHO emergency grade (e.g. "G2", "Ungraded", "Protracted 1").
	Grade string `json:"grade" yaml:"grade"`

	// DateNotified is when the event was notified to WHO.
	DateNotified string `json:"date_notified" yaml:"date_notified"`

	// DateStart is the start of the reporting period.
	DateStart string `json:"date_start" yaml:"date_start"`

	// DateEnd is the end of the reporting period.
	DateEnd string `json:"date_end" yaml:"date_end"`

	// CasesTotal is the total case count.
	CasesTotal *int `json:"cases_total" yaml:"cases_total"`

	// CasesConfirmed is the confirmed case count.
	CasesConfirmed *int `json:"cases_confirmed" yaml:"cases_confirmed"`

	// Deaths is the death count.
	Deaths *int `json:"deaths" yaml:"deaths"`

	// CFR is the case fatality ratio as printed, including the trailing "%".
	CFR string `json:"cfr" yaml:"cfr"`

	// Notes is the free-text narrative column.
	Notes string `json:"notes" yaml:"notes"`
}
