package models

import "time"

type AlertStatus string

const (
	AlertStatusActive     AlertStatus = "Active"
	AlertStatusMonitoring AlertStatus = "Monitoring"
	AlertStatusAdvisory   AlertStatus = "Advisory"
	AlertStatusResolved   AlertStatus = "Resolved"
)

func ParseAlertStatus(s string) (AlertStatus, bool) {
	switch AlertStatus(s) {
	case AlertStatusActive, AlertStatusMonitoring, AlertStatusAdvisory, AlertStatusResolved:
		return AlertStatus(s), true
	}
	return "", false
}

type Alert struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Location   string      `json:"location"`
	Severity   Severity    `json:"severity"`
	Status     AlertStatus `json:"status"`
	Affected   int64       `json:"affected"`
	Message    string      `json:"message"`
	IssuedAt   time.Time   `json:"issuedAt"`
	ResolvedAt *time.Time  `json:"resolvedAt,omitempty"`
	CreatedBy  string      `json:"createdBy"`
	Creator    *UserRef    `json:"creator,omitempty"` // populated on listings
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
