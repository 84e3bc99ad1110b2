package types

const StatusHealthy = "healthy"

type ServiceInfo struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

type HealthStatus struct {
	Status string `json:"status"`
}
