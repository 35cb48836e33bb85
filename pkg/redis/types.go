package redis

// HealthStatus is the status reported by HealthChecker
type HealthStatus string

const (
	StatusUp   HealthStatus = "UP"
	StatusDown HealthStatus = "DOWN"
)
