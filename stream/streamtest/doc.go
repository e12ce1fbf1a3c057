// Package streamtest provides observers and instrumented sources for
// exercising stream pipelines in tests.
//
// Recorder captures every notification an observable delivers, including
// how many terminal notifications arrived, so tests can assert the
// single-terminal contract. Probe is a slice-backed source that counts
// emissions and notices when its subscriber cancels, which makes
// short-circuit behavior observable:
//
//	probe := streamtest.NewProbe(10, 20, 30, 40)
//	rec := streamtest.NewRecorder[int]()
//	stream.ElementAt[int](1)(probe.Observable()).Subscribe(ctx, rec)
//	// probe.Emitted() == 2, probe.CancelledAfter() == 2
package streamtest
