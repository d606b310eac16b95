// Package buffer provides bounded, blocking FIFO buffers shared between
// producer and consumer goroutines.
//
// Two implementations satisfy the same Buffer contract:
//
//   - Condition guards a fixed ring with one mutex and two condition
//     variables (notFull, notEmpty).
//   - Queue delegates to a buffered channel.
//
// Put blocks while the buffer is full and Get blocks while it is empty.
// Neither has a timeout and neither can be cancelled; the caller owns the
// protocol that guarantees every blocked call is eventually released.
//
//	buf, err := buffer.New[int](buffer.KindCondition, 2)
//	if err != nil {
//	    return err // INVALID_CONFIG
//	}
//	buf.Put(1)
//	v := buf.Get()
package buffer
