// Package metrics provides Prometheus metrics for pyxidust.
//
// Runs are short lived, so metrics are written to a node_exporter textfile
// at exit instead of being scraped.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pyxidust/internal/ports"
)

// Metrics holds all Prometheus metrics for pyxidust.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	SerialsMinted    prometheus.Counter
	ProjectsCreated  prometheus.Counter
	ArtifactsCreated *prometheus.CounterVec
	FilesCrawled     prometheus.Counter
	JoinedRows       *prometheus.CounterVec
	DroppedRows      *prometheus.CounterVec
	CommandErrors    *prometheus.CounterVec
}

var _ ports.Recorder = (*Metrics)(nil)

// New creates and registers all metrics on a private registry
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	factory := promauto.With(m.registry)

	m.SerialsMinted = factory.NewCounter(prometheus.CounterOpts{
		Name: "pyxidust_serials_minted_total",
		Help: "Total number of serials minted",
	})

	m.ProjectsCreated = factory.NewCounter(prometheus.CounterOpts{
		Name: "pyxidust_projects_created_total",
		Help: "Total number of project folders created",
	})

	m.ArtifactsCreated = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "pyxidust_artifacts_created_total",
		Help: "Total number of artifacts created",
	}, []string{"mode"})

	m.FilesCrawled = factory.NewCounter(prometheus.CounterOpts{
		Name: "pyxidust_files_crawled_total",
		Help: "Total number of files recorded by crawls",
	})

	m.JoinedRows = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "pyxidust_joined_rows_total",
		Help: "Total number of rows written to joined reports",
	}, []string{"kind"})

	m.DroppedRows = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "pyxidust_dropped_rows_total",
		Help: "Metadata rows without any attribute row, per report",
	}, []string{"kind"})

	m.CommandErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "pyxidust_command_errors_total",
		Help: "Total number of failed commands",
	}, []string{"command"})

	return m
}

// Registry returns the registry holding the metrics
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordMinted counts minted serials
func (m *Metrics) RecordMinted(n int) {
	if m == nil {
		return
	}
	m.SerialsMinted.Add(float64(n))
}

// RecordProject counts a created project and its first artifact
func (m *Metrics) RecordProject() {
	if m == nil {
		return
	}
	m.ProjectsCreated.Inc()
	m.ArtifactsCreated.WithLabelValues("template").Inc()
}

// RecordArtifacts counts artifacts added to a project
func (m *Metrics) RecordArtifacts(mode string, n int) {
	if m == nil {
		return
	}
	m.ArtifactsCreated.WithLabelValues(mode).Add(float64(n))
}

// RecordCrawl counts crawled files
func (m *Metrics) RecordCrawl(n int) {
	if m == nil {
		return
	}
	m.FilesCrawled.Add(float64(n))
}

// RecordJoin counts joined and dropped rows of one report
func (m *Metrics) RecordJoin(kind string, joined, dropped int) {
	if m == nil {
		return
	}
	m.JoinedRows.WithLabelValues(kind).Add(float64(joined))
	m.DroppedRows.WithLabelValues(kind).Add(float64(dropped))
}

// RecordError counts a failed command
func (m *Metrics) RecordError(command string) {
	if m == nil {
		return
	}
	m.CommandErrors.WithLabelValues(command).Inc()
}

// WriteTextfile writes the metrics in the text exposition format. An empty
// path disables writing.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
