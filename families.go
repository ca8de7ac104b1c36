package streamhash

import (
	"github.com/pkg/errors"

	"github.com/Giulio2002/streamhash/internal/keccak"
	"github.com/Giulio2002/streamhash/internal/md"
	"github.com/Giulio2002/streamhash/internal/packed"
	"github.com/Giulio2002/streamhash/internal/sp800185"
	"github.com/Giulio2002/streamhash/internal/stream"
)

// engine is the state-type-erased view of a stream.Engine.
type engine interface {
	Update(input []byte) error
	Digest(outputBits int) ([]uint32, int, error)
	HMAC() ([]uint32, int, error)
	SetHMACKey(key packed.Value) error
	fork() engine
}

type adapter[S any] struct {
	*stream.Engine[S]
}

func (a adapter[S]) fork() engine { return adapter[S]{a.Clone()} }

type variantSpec struct {
	endian     packed.EndianMod
	blockSize  int // bits
	outputSize int // bits, 0 when variable
	hmac       bool
	cshake     bool
	kmac       bool
	sponge     keccak.Sponge
}

var kmacName = packed.FromBytes([]byte("KMAC"), packed.LittleEndian)

var variantSpecs = map[Variant]variantSpec{
	SHA1:   {endian: packed.BigEndian, blockSize: md.SHA1BlockSize, outputSize: md.SHA1Size, hmac: true},
	SHA224: {endian: packed.BigEndian, blockSize: md.SHA256BlockSize, outputSize: 224, hmac: true},
	SHA256: {endian: packed.BigEndian, blockSize: md.SHA256BlockSize, outputSize: 256, hmac: true},
	SHA384: {endian: packed.BigEndian, blockSize: md.SHA512BlockSize, outputSize: 384, hmac: true},
	SHA512: {endian: packed.BigEndian, blockSize: md.SHA512BlockSize, outputSize: 512, hmac: true},

	SHA3_224:  spongeSpec(keccak.SHA3(224), 224),
	SHA3_256:  spongeSpec(keccak.SHA3(256), 256),
	SHA3_384:  spongeSpec(keccak.SHA3(384), 384),
	SHA3_512:  spongeSpec(keccak.SHA3(512), 512),
	Keccak256: spongeSpec(keccak.Sponge{Rate: keccak.Rate256, Delimiter: keccak.DelimKeccak}, 256),

	SHAKE128:  spongeSpec(keccak.SHAKE(128), 0),
	SHAKE256:  spongeSpec(keccak.SHAKE(256), 0),
	CSHAKE128: withFlags(spongeSpec(keccak.CSHAKE(128), 0), true, false),
	CSHAKE256: withFlags(spongeSpec(keccak.CSHAKE(256), 0), true, false),
	KMAC128:   withFlags(spongeSpec(keccak.CSHAKE(128), 0), true, true),
	KMAC256:   withFlags(spongeSpec(keccak.CSHAKE(256), 0), true, true),
}

// spongeSpec describes a Keccak variant. Fixed-length sponges support HMAC.
func spongeSpec(sp keccak.Sponge, outputSize int) variantSpec {
	return variantSpec{
		endian:     packed.LittleEndian,
		blockSize:  sp.Rate,
		outputSize: outputSize,
		hmac:       outputSize != 0,
		sponge:     sp,
	}
}

func withFlags(vs variantSpec, cshake, kmac bool) variantSpec {
	vs.cshake, vs.kmac = cshake, kmac
	return vs
}

func descriptor[S any](v Variant, vs variantSpec, f stream.Family[S]) stream.Descriptor[S] {
	return stream.Descriptor[S]{
		Name:       string(v),
		Family:     f,
		BlockSize:  vs.blockSize,
		OutputSize: vs.outputSize,
		Endian:     vs.endian,
		HMAC:       vs.hmac,
	}
}

func build[S any](desc stream.Descriptor[S], format Format, cfg *config) (*stream.Engine[S], error) {
	conv, err := packed.NewConverter(format, cfg.encoding, desc.Endian)
	if err != nil {
		return nil, errors.Wrapf(ErrConfiguration, "%v", err)
	}
	return stream.New(desc, conv, cfg.numRounds, cfg.logger)
}

func wrap[S any](e *stream.Engine[S], err error) (engine, error) {
	if err != nil {
		return nil, err
	}
	return adapter[S]{e}, nil
}

// newEngine constructs the engine for v, including cSHAKE domain separation
// and KMAC keying.
func newEngine(v Variant, vs variantSpec, format Format, cfg *config) (engine, error) {
	switch {
	case v == SHA1:
		e, err := build(descriptor[md.SHA1State](v, vs, md.SHA1{}), format, cfg)
		return wrap(e, err)
	case v == SHA224 || v == SHA256:
		e, err := build(descriptor[md.SHA256State](v, vs, md.SHA256{Is224: v == SHA224}), format, cfg)
		return wrap(e, err)
	case v == SHA384 || v == SHA512:
		e, err := build(descriptor[md.SHA512State](v, vs, md.SHA512{Is384: v == SHA384}), format, cfg)
		return wrap(e, err)
	case vs.cshake:
		return newCSHAKE(v, vs, format, cfg)
	default:
		e, err := build(descriptor[keccak.State](v, vs, vs.sponge), format, cfg)
		return wrap(e, err)
	}
}

func newCSHAKE(v Variant, vs variantSpec, format Format, cfg *config) (engine, error) {
	funcName, customization := packed.Value{}, packed.Value{}
	var err error
	if cfg.customization != nil {
		if customization, err = cfg.customization.pack("customization", packed.LittleEndian); err != nil {
			return nil, err
		}
	}
	var key packed.Value
	switch {
	case vs.kmac:
		if cfg.kmacKey == nil {
			return nil, errors.Wrap(ErrConfiguration, "kmacKey must include a value and format")
		}
		if key, err = cfg.kmacKey.pack("kmacKey", packed.LittleEndian); err != nil {
			return nil, err
		}
		funcName = kmacName
	case cfg.funcName != nil:
		if funcName, err = cfg.funcName.pack("funcName", packed.LittleEndian); err != nil {
			return nil, err
		}
	}

	// cSHAKE with empty N and S is SHAKE.
	sp := vs.sponge
	plain := funcName.BitLen == 0 && customization.BitLen == 0
	if plain {
		sp.Delimiter = keccak.DelimSHAKE
	}
	e, err := build(descriptor[keccak.State](v, vs, sp), format, cfg)
	if err != nil {
		return nil, err
	}
	rateBytes := vs.blockSize >> 3
	if !plain {
		params := packed.Concat(sp800185.EncodeString(funcName), sp800185.EncodeString(customization), packed.LittleEndian)
		e.Absorb(sp800185.BytePad(params, rateBytes))
	}
	if vs.kmac {
		e.Absorb(sp800185.BytePad(sp800185.EncodeString(key), rateBytes))
		if err := e.SetMAC("KMAC", kmacFinalize); err != nil {
			return nil, err
		}
	}
	return adapter[keccak.State]{e}, nil
}

// kmacFinalize binds the output length by appending right_encode(L).
func kmacFinalize(e *stream.Engine[keccak.State], outputBits int) []uint32 {
	return e.FinalizeWith(sp800185.RightEncode(uint64(outputBits)), outputBits)
}
