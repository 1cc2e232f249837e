package irx

import "sync/atomic"

// fidCounter is the process-wide function-identifier counter spec §5
// names as one of only two pieces of mutable state a generator run
// may touch (the other being the schema catalogue): "the
// function-identifier counter is strictly monotonic; no two live
// lambdas share a function id" (§3.4). Every Function a codec or the
// driver builds during one generation run draws its fid from here, so
// that independently-written packages (codec/sexpr, driver, a second
// concrete codec) never collide.
var fidCounter atomic.Uint64

// NextFid allocates a fresh, process-wide-unique function id.
func NextFid() uint64 { return fidCounter.Add(1) }
