package gamefuzz

import "context"

// worker runs one independent fuzzing lane: it advances its fuzzer, forwards
// each step to the shared channel, and polls its stop channel between
// iterations. A worker never stops on its own, even after emitting a fatal
// step; it keeps producing until told to stop. The step send also selects on
// stop so a worker cannot deadlock against a consumer that has already quit.
func worker(ctx context.Context, fuzzer *Fuzzer, steps chan<- Step, stop <-chan struct{}) {
	for {
		step := fuzzer.Advance(ctx)
		select {
		case steps <- step:
		case <-stop:
			return
		case <-ctx.Done():
			return
		}
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		default:
		}
	}
}
