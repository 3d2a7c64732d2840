// Package replay re-runs recorded sessions through fresh trackball
// controllers.
//
// A replay is deterministic: the same records at the same sensitivity
// produce the same orientations, so comparing them with the orientations
// stored in the session detects behavior changes in the controller.
//
// # Example
//
//	p := replay.NewPlayer(trackball.DefaultConfig())
//	p.AddMetric(replay.DefaultMetrics()...)
//	res, err := p.Run(ctx, records)
//
// # Thread Safety
//
// A Player owns no shared state across runs beyond its metrics, which are
// reset at the start of Run; use one Player per goroutine. [RunAll] builds
// a Player per session.
package replay
