package arith

import "math/bits"

// Rotl64 rotates x left by n bits. n is taken modulo 64, so 0 and 64 are the
// identity and 32 swaps the two halves.
func Rotl64(x uint64, n int) uint64 { return bits.RotateLeft64(x, n&63) }

// Rotr64 rotates x right by n bits. n is taken modulo 64.
func Rotr64(x uint64, n int) uint64 { return bits.RotateLeft64(x, -(n & 63)) }

func Shr64(x uint64, n uint) uint64 { return x >> n }

func Add2x64(a, b uint64) uint64 { return a + b }

func Add4x64(a, b, c, d uint64) uint64 { return a + b + c + d }

func Add5x64(a, b, c, d, e uint64) uint64 { return a + b + c + d + e }

func Ch64(x, y, z uint64) uint64 { return (x & y) ^ (^x & z) }

func Maj64(x, y, z uint64) uint64 { return (x & y) ^ (x & z) ^ (y & z) }

func Sigma0x64(x uint64) uint64 { return Rotr64(x, 28) ^ Rotr64(x, 34) ^ Rotr64(x, 39) }

func Sigma1x64(x uint64) uint64 { return Rotr64(x, 14) ^ Rotr64(x, 18) ^ Rotr64(x, 41) }

func Gamma0x64(x uint64) uint64 { return Rotr64(x, 1) ^ Rotr64(x, 8) ^ Shr64(x, 7) }

func Gamma1x64(x uint64) uint64 { return Rotr64(x, 19) ^ Rotr64(x, 61) ^ Shr64(x, 6) }

// Join builds a 64-bit word from its high and low 32-bit halves.
func Join(hi, lo uint32) uint64 { return uint64(hi)<<32 | uint64(lo) }

// Split returns the high and low 32-bit halves of x.
func Split(x uint64) (hi, lo uint32) { return uint32(x >> 32), uint32(x) }
