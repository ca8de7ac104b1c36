// Package stream drives the update/finalize/MAC lifecycle shared by every
// hash family. A family only supplies its state constructor, compression
// round, padding finalizer and state copier; the engine owns buffering,
// length accounting, HMAC keying and multi-round stretching.
package stream

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Giulio2002/streamhash/internal/packed"
)

var (
	// ErrConfiguration reports an invalid option or option combination.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrState reports an operation that is illegal in the current MAC or
	// update state.
	ErrState = errors.New("invalid state")
)

// Family is the set of functions that make up one hash construction.
// Finalize must not modify remainder and must ignore any bits past
// remainderBits.
type Family[S any] interface {
	NewState() S
	Round(block []uint32, s S) S
	Finalize(remainder []uint32, remainderBits int, processedBits uint64, s S, outputBits int) []uint32
	Clone(s S) S
}

// Descriptor is the immutable per-variant configuration of an engine.
type Descriptor[S any] struct {
	Name   string
	Family Family[S]
	// BlockSize is the compression block (or sponge rate) in bits.
	BlockSize int
	// OutputSize is the digest size in bits, 0 for variable-length output.
	OutputSize int
	Endian     packed.EndianMod
	HMAC       bool
}

// Variable reports whether the output length is chosen by the caller.
func (d Descriptor[S]) Variable() bool { return d.OutputSize == 0 }

// MACFunc produces a MAC of outputBits bits from e's current state without
// modifying it.
type MACFunc[S any] func(e *Engine[S], outputBits int) []uint32

// Engine is a streaming hash context. It is not safe for concurrent use.
type Engine[S any] struct {
	desc      Descriptor[S]
	conv      packed.Converter
	numRounds int
	log       *zap.Logger

	state         S
	remainder     []uint32
	remainderBits int
	processedBits uint64

	keyIPad, keyOPad []uint32
	mac              MACFunc[S]
	macKeySet        bool
	updateCalled     bool
}

// New returns an engine at the family IV. numRounds is the stretching count
// applied by Digest and must be at least 1.
func New[S any](desc Descriptor[S], conv packed.Converter, numRounds int, log *zap.Logger) (*Engine[S], error) {
	if numRounds < 1 {
		return nil, errors.Wrapf(ErrConfiguration, "numRounds must be an integer >= 1, got %d", numRounds)
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("variant", desc.Name))
	log.Debug("engine created",
		zap.Int("blockSize", desc.BlockSize),
		zap.Int("outputSize", desc.OutputSize),
		zap.Int("numRounds", numRounds))
	return &Engine[S]{
		desc:      desc,
		conv:      conv,
		numRounds: numRounds,
		log:       log,
		state:     desc.Family.NewState(),
	}, nil
}

// Descriptor returns the engine's family configuration.
func (e *Engine[S]) Descriptor() Descriptor[S] { return e.desc }

// NumRounds returns the stretching count.
func (e *Engine[S]) NumRounds() int { return e.numRounds }

// MACKeySet reports whether an HMAC key or MAC hook has been installed.
func (e *Engine[S]) MACKeySet() bool { return e.macKeySet }

// Update converts input, appends it to the pending remainder and compresses
// every whole block. On error the engine is left unchanged.
func (e *Engine[S]) Update(input []byte) error {
	chunk, err := e.conv(input, packed.Value{Words: e.remainder, BitLen: e.remainderBits})
	if err != nil {
		return err
	}
	e.consume(chunk)
	e.updateCalled = true
	return nil
}

func (e *Engine[S]) consume(chunk packed.Value) {
	blockWords := e.desc.BlockSize >> 5
	done := 0
	for done+e.desc.BlockSize <= chunk.BitLen {
		i := done >> 5
		e.state = e.desc.Family.Round(chunk.Words[i:i+blockWords], e.state)
		done += e.desc.BlockSize
	}
	e.processedBits += uint64(done)
	e.remainder = append([]uint32(nil), chunk.Words[min(done>>5, len(chunk.Words)):]...)
	e.remainderBits = chunk.BitLen - done
}

// Absorb compresses whole blocks straight into the state and counts them as
// processed. It does not mark the engine as updated; it is meant for prefix
// blocks written during construction.
func (e *Engine[S]) Absorb(blocks []uint32) {
	blockWords := e.desc.BlockSize >> 5
	for i := 0; i+blockWords <= len(blocks); i += blockWords {
		e.state = e.desc.Family.Round(blocks[i:i+blockWords], e.state)
		e.processedBits += uint64(e.desc.BlockSize)
	}
}

// Digest finalizes a copy of the context. outputBits is required for
// variable-length families and ignored otherwise. If a MAC key is set the
// MAC is returned instead of the plain digest. The returned length is the
// number of valid output bits.
func (e *Engine[S]) Digest(outputBits int) ([]uint32, int, error) {
	if outputBits < 0 || outputBits%8 != 0 {
		return nil, 0, errors.Wrapf(ErrConfiguration, "output length must be a multiple of 8, got %d", outputBits)
	}
	outBits := e.desc.OutputSize
	if e.desc.Variable() {
		if outputBits == 0 {
			return nil, 0, errors.Wrap(ErrConfiguration, "output length must be specified for variable-length variants")
		}
		outBits = outputBits
	}

	if e.macKeySet && e.mac != nil {
		return e.mac(e, outBits), outBits, nil
	}

	f := e.desc.Family
	out := f.Finalize(e.remainder, e.remainderBits, e.processedBits, f.Clone(e.state), outBits)
	for i := 1; i < e.numRounds; i++ {
		if e.desc.Variable() && outBits%32 != 0 {
			out[len(out)-1] &= uint32(0x00ffffff) >> (24 - outBits%32)
		}
		out = f.Finalize(out, outBits, 0, f.NewState(), outBits)
	}
	return out, outBits, nil
}

// SetHMACKey keys the engine for HMAC. It must be called before the first
// Update and at most once.
func (e *Engine[S]) SetHMACKey(key packed.Value) error {
	if !e.desc.HMAC {
		return e.reject(errors.Wrapf(ErrState, "variant %s does not support HMAC", e.desc.Name))
	}
	if err := e.checkMACTransition(); err != nil {
		return err
	}

	f := e.desc.Family
	blockWords := e.desc.BlockSize >> 5
	words, bitLen := key.Words, key.BitLen
	if bitLen > e.desc.BlockSize {
		words = f.Finalize(words, bitLen, 0, f.NewState(), e.desc.OutputSize)
		bitLen = e.desc.OutputSize
	}
	block := make([]uint32, blockWords)
	copy(block, words[:min(len(words), (bitLen+31)>>5)])

	e.keyIPad = make([]uint32, blockWords)
	e.keyOPad = make([]uint32, blockWords)
	for i, w := range block {
		e.keyIPad[i] = w ^ 0x36363636
		e.keyOPad[i] = w ^ 0x5c5c5c5c
	}
	e.state = f.Round(e.keyIPad, e.state)
	e.processedBits = uint64(e.desc.BlockSize)
	e.mac = func(e *Engine[S], _ int) []uint32 { return e.hmac() }
	e.macKeySet = true
	e.log.Debug("MAC key installed", zap.String("kind", "HMAC"))
	return nil
}

// SetMAC installs a family-specific MAC finalizer and marks the MAC key as
// set. The same rules as SetHMACKey apply.
func (e *Engine[S]) SetMAC(kind string, fn MACFunc[S]) error {
	if err := e.checkMACTransition(); err != nil {
		return err
	}
	e.mac = fn
	e.macKeySet = true
	e.log.Debug("MAC key installed", zap.String("kind", kind))
	return nil
}

func (e *Engine[S]) checkMACTransition() error {
	switch {
	case e.macKeySet:
		return e.reject(errors.Wrap(ErrState, "MAC key already set"))
	case e.updateCalled:
		return e.reject(errors.Wrap(ErrState, "cannot set MAC key after calling update"))
	case e.numRounds != 1:
		return e.reject(errors.Wrap(ErrConfiguration, "cannot set numRounds with MAC"))
	}
	return nil
}

// HMAC returns hash(opad || hash(ipad || message)).
func (e *Engine[S]) HMAC() ([]uint32, int, error) {
	if !e.desc.HMAC {
		return nil, 0, e.reject(errors.Wrapf(ErrState, "variant %s does not support HMAC", e.desc.Name))
	}
	if e.keyOPad == nil {
		return nil, 0, e.reject(errors.Wrap(ErrState, "cannot call getHMAC without first setting MAC key"))
	}
	return e.hmac(), e.desc.OutputSize, nil
}

func (e *Engine[S]) hmac() []uint32 {
	f := e.desc.Family
	inner := f.Finalize(e.remainder, e.remainderBits, e.processedBits, f.Clone(e.state), e.desc.OutputSize)
	s := f.Round(e.keyOPad, f.NewState())
	return f.Finalize(inner, e.desc.OutputSize, uint64(e.desc.BlockSize), s, e.desc.OutputSize)
}

// FinalizeWith finalizes a copy of the context with suffix appended to the
// pending remainder. Used by MAC finalizers that bind the output length.
func (e *Engine[S]) FinalizeWith(suffix packed.Value, outputBits int) []uint32 {
	msg := packed.Concat(packed.Value{Words: e.remainder, BitLen: e.remainderBits}, suffix, e.desc.Endian)
	f := e.desc.Family
	return f.Finalize(msg.Words, msg.BitLen, e.processedBits, f.Clone(e.state), outputBits)
}

// Clone returns an independent copy of the engine.
func (e *Engine[S]) Clone() *Engine[S] {
	c := *e
	c.state = e.desc.Family.Clone(e.state)
	c.remainder = append([]uint32(nil), e.remainder...)
	if e.keyIPad != nil {
		c.keyIPad = append([]uint32(nil), e.keyIPad...)
		c.keyOPad = append([]uint32(nil), e.keyOPad...)
	}
	return &c
}

func (e *Engine[S]) reject(err error) error {
	e.log.Debug("rejected", zap.Error(err))
	return err
}
