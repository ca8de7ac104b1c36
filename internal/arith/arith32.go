// Package arith holds the word-level operations used by the SHA-1, SHA-2 and
// Keccak round functions.
//
// All additions wrap around the width of the operand type. FIPS 180-4 is
// defined in terms of addition modulo 2^32 and 2^64, so the wrap is part of
// the algorithm and not an implementation detail.
package arith

import "math/bits"

// Rotl32 rotates x left by n bits. n is taken modulo 32.
func Rotl32(x uint32, n int) uint32 { return bits.RotateLeft32(x, n&31) }

// Rotr32 rotates x right by n bits. n is taken modulo 32.
func Rotr32(x uint32, n int) uint32 { return bits.RotateLeft32(x, -(n & 31)) }

// Shr32 is the logical right shift.
func Shr32(x uint32, n uint) uint32 { return x >> n }

func Add2(a, b uint32) uint32 { return a + b }

func Add4(a, b, c, d uint32) uint32 { return a + b + c + d }

func Add5(a, b, c, d, e uint32) uint32 { return a + b + c + d + e }

// Parity is the SHA-1 f function for rounds 20-39 and 60-79.
func Parity(x, y, z uint32) uint32 { return x ^ y ^ z }

func Ch(x, y, z uint32) uint32 { return (x & y) ^ (^x & z) }

func Maj(x, y, z uint32) uint32 { return (x & y) ^ (x & z) ^ (y & z) }

// Sigma0 is the SHA-256 Σ0.
func Sigma0(x uint32) uint32 { return Rotr32(x, 2) ^ Rotr32(x, 13) ^ Rotr32(x, 22) }

// Sigma1 is the SHA-256 Σ1.
func Sigma1(x uint32) uint32 { return Rotr32(x, 6) ^ Rotr32(x, 11) ^ Rotr32(x, 25) }

// Gamma0 is the SHA-256 message schedule σ0.
func Gamma0(x uint32) uint32 { return Rotr32(x, 7) ^ Rotr32(x, 18) ^ Shr32(x, 3) }

// Gamma1 is the SHA-256 message schedule σ1.
func Gamma1(x uint32) uint32 { return Rotr32(x, 17) ^ Rotr32(x, 19) ^ Shr32(x, 10) }
