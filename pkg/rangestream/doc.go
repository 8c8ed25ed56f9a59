// Package rangestream serves a single contiguous byte range of a file to an
// HTTP client.
//
// A [Streamer] resolves the window requested by a `Range: bytes=<start>-[<end>]`
// header against the file's declared size, emits the matching status and
// headers on a [ResponseSink], and copies the window from the source in fixed
// size chunks. The sink is polled for client liveness before every chunk, so a
// player that seeks away or closes the connection stops the copy within one
// chunk. Declared sizes of zero mean the size is unknown; no length headers are
// emitted in that case.
package rangestream
