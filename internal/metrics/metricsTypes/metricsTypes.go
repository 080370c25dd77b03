package metricsTypes

import "time"

type IMetricsClient interface {
	Incr(name string, labels []MetricsLabel, value float64) error
	Gauge(name string, value float64, labels []MetricsLabel) error
	Timing(name string, value time.Duration, labels []MetricsLabel) error
}

type MetricsLabel struct {
	Name  string
	Value string
}

var (
	Metric_Incr_PipelineRun      = "pipeline.run"
	Metric_Incr_PipelineRunError = "pipeline.run.error"

	Metric_Gauge_TableRows = "pipeline.tableRows"

	Metric_Timing_StageDuration  = "pipeline.stage.duration"
	Metric_Timing_RunDuration    = "pipeline.run.duration"
	Metric_Timing_LoadDuration   = "load.duration"
	Metric_Timing_ExportDuration = "export.duration"
)
