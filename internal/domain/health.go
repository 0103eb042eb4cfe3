package domain

import "time"

type DependencyStatus struct {
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

type ReadinessStatus struct {
	Ready      bool             `json:"ready"`
	Database   DependencyStatus `json:"database"`
	Redis      DependencyStatus `json:"redis"`
	ServerTime time.Time        `json:"server_time"`
}
