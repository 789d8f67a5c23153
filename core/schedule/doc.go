// Package schedule implements the core scheduling pipeline for a station:
// platform assignment and time adjustment for a batch of train requests.
//
// It receives validated schedule requests and distributes the trains over
// the station's platforms so that no platform is double-booked (including a
// dwell buffer after each departure), total weighted delay is minimized and
// platform reassignments are discouraged. Lower-numbered priorities receive
// a larger protection weight, max(1, K - priority), so express services are
// preferentially shielded from both delay and platform churn.
//
// Key components:
//   - Optimizer: builds solver variables, runs the exact search under a
//     wall-clock budget and degrades gracefully to a greedy heuristic or to
//     the requested schedule.
//   - Manager: orchestrates validation, conflict detection, delay
//     prediction, optimization, KPI computation and publication to the
//     shared schedule state.
//
// All components are decoupled via interfaces, supporting testing and
// extension.
package schedule
