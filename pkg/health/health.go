package health

import (
	"context"
	"sync"
	"time"

	"github.com/storacha/rangestream/pkg/build"
)

// Status represents the health status
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Response represents a health check response
type Response struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Checks    []Check   `json:"checks,omitempty"`
}

// Check represents an individual health check result
type Check struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ReadinessCheck is a named probe of a dependency the server needs to serve
// media, such as the object store.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Checker provides health check functionality
type Checker struct {
	checks []ReadinessCheck
	mu     sync.RWMutex
	ready  bool
}

// NewChecker creates a health checker that is ready once all checks pass.
func NewChecker(checks ...ReadinessCheck) *Checker {
	return &Checker{
		checks: checks,
		ready:  true,
	}
}

// SetReady sets the readiness state. A checker that is not ready fails
// readiness regardless of its checks, e.g. while shutting down.
func (c *Checker) SetReady(ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = ready
}

// IsReady returns the readiness state
func (c *Checker) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// LivenessCheck performs a liveness check
func (c *Checker) LivenessCheck() Response {
	return Response{
		Status:    StatusOK,
		Timestamp: time.Now().UTC(),
		Version:   build.Version,
	}
}

// ReadinessCheck runs every registered check.
func (c *Checker) ReadinessCheck(ctx context.Context) Response {
	status := StatusOK
	if !c.IsReady() {
		status = StatusFailed
	}

	results := make([]Check, 0, len(c.checks))
	for _, chk := range c.checks {
		res := Check{Name: chk.Name, Status: StatusOK}
		if err := chk.Check(ctx); err != nil {
			log.Warnw("readiness check failed", "check", chk.Name, "error", err)
			res.Status = StatusFailed
			res.Error = err.Error()
			status = StatusFailed
		}
		results = append(results, res)
	}

	return Response{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   build.Version,
		Checks:    results,
	}
}

// HealthCheck performs a combined health check
func (c *Checker) HealthCheck(ctx context.Context) Response {
	liveness := c.LivenessCheck()
	readiness := c.ReadinessCheck(ctx)

	return Response{
		Status:    readiness.Status,
		Timestamp: time.Now().UTC(),
		Version:   build.Version,
		Checks: append([]Check{
			{Name: "liveness", Status: liveness.Status},
			{Name: "readiness", Status: readiness.Status},
		}, readiness.Checks...),
	}
}
