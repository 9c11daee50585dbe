// Package buffer provides Shared, a cache-line aligned block of 32-bit cells
// that a host component owns and hands out as bounded float32 or int32 views.
//
// Shared is meant for data exchanged between a setup thread, the audio
// callback and scripted processors. Allocate, Release and NewShared allocate
// and must run outside the real-time path. All other methods are
// allocation-free. Plain views carry no synchronization; only AtomicSetInt
// and AtomicGetInt may be used concurrently on the same cell.
package buffer
