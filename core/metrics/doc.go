package metrics

// Package metrics defines interfaces and implementations for collecting
// scheduling metrics. Sinks like PromSink and InfluxSink record events such
// as train assignments or emitted alerts and can be combined with
// NewMultiSink. A NopSink discards everything and is used when no sink is
// configured.
