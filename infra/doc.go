// Package infra contains technical adapters such as the MQTT publisher,
// metrics exporters and persistence stores. These packages depend only on
// the interfaces defined in the core packages.
package infra
