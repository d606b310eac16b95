// Package pipeline runs producers and consumers over one bounded buffer.
//
// An Orchestrator shards a Source round-robin across P producers, starts C
// consumers, and terminates them in two phases: it waits for every producer
// to finish, then puts exactly one end-of-stream marker per consumer. Since
// every data item is in the buffer before the first marker, each consumer
// stops only after the data ahead of its marker has been taken.
//
// Items travel as Message values. The end-of-stream marker is a separate
// variant, so any value of T, including one that prints like a marker, is
// delivered as data.
//
// # Usage
//
//	orch, err := pipeline.New[int](pipeline.Config{
//	    Buffer:    buffer.KindCondition,
//	    Capacity:  2,
//	    Producers: 2,
//	    Consumers: 3,
//	})
//	if err != nil {
//	    return err
//	}
//	consumed, err := orch.Run(ctx, pipeline.NewSliceSource([]int{0, 1, 2, 3, 4, 5}))
//
// Producer and Consumer can also be used directly. A standalone Producer
// puts its own marker after its last item unless WithEndOfStream(false) is
// given.
package pipeline
