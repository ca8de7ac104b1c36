// Command shasum prints SHA-1, SHA-2, SHA-3, SHAKE, cSHAKE and KMAC digests
// (or HMACs) of files, standard input or a literal string.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Giulio2002/streamhash"
)

var (
	algorithmFlag = &cli.StringFlag{
		Name:    "algorithm",
		Aliases: []string{"a"},
		Usage:   "hash variant, e.g. SHA-256, SHA3-512, SHAKE128, KMAC256",
		Value:   string(streamhash.SHA256),
		EnvVars: []string{"SHASUM_ALGORITHM"},
	}
	inputFormatFlag = &cli.StringFlag{
		Name:    "input-format",
		Usage:   "input representation: TEXT, HEX, B64, BYTES, UINT8ARRAY or ARRAYBUFFER",
		Value:   streamhash.FormatByteSlice.String(),
		EnvVars: []string{"SHASUM_INPUT_FORMAT"},
	}
	encodingFlag = &cli.StringFlag{
		Name:    "encoding",
		Usage:   "encoding of TEXT input: UTF8, UTF16BE or UTF16LE",
		Value:   streamhash.UTF8.String(),
		EnvVars: []string{"SHASUM_ENCODING"},
	}
	outputFormatFlag = &cli.StringFlag{
		Name:    "output-format",
		Usage:   "digest representation: HEX, B64 or BYTES",
		Value:   streamhash.FormatHex.String(),
		EnvVars: []string{"SHASUM_OUTPUT_FORMAT"},
	}
	outputLenFlag = &cli.IntFlag{
		Name:    "output-len",
		Usage:   "output length in bits for SHAKE, cSHAKE and KMAC",
		EnvVars: []string{"SHASUM_OUTPUT_LEN"},
	}
	upperFlag = &cli.BoolFlag{
		Name:  "upper",
		Usage: "print hex digests in upper case",
	}
	b64PadFlag = &cli.StringFlag{
		Name:  "b64-pad",
		Usage: "base64 padding string",
		Value: "=",
	}
	roundsFlag = &cli.IntFlag{
		Name:    "rounds",
		Usage:   "number of hashing rounds",
		Value:   1,
		EnvVars: []string{"SHASUM_ROUNDS"},
	}
	hmacKeyFlag = &cli.StringFlag{
		Name:    "hmac-key",
		Usage:   "compute an HMAC with this key",
		EnvVars: []string{"SHASUM_HMAC_KEY"},
	}
	kmacKeyFlag = &cli.StringFlag{
		Name:    "kmac-key",
		Usage:   "KMAC key (required for KMAC128 and KMAC256)",
		EnvVars: []string{"SHASUM_KMAC_KEY"},
	}
	keyFormatFlag = &cli.StringFlag{
		Name:  "key-format",
		Usage: "representation of --hmac-key and --kmac-key: TEXT, HEX or B64",
		Value: streamhash.FormatText.String(),
	}
	customizationFlag = &cli.StringFlag{
		Name:  "customization",
		Usage: "cSHAKE/KMAC customization string",
	}
	functionNameFlag = &cli.StringFlag{
		Name:  "function-name",
		Usage: "cSHAKE function name",
	}
	textFlag = &cli.StringFlag{
		Name:  "text",
		Usage: "hash this string instead of files",
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "enable debug logging",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:      "shasum",
		Usage:     "print or check SHA family digests",
		ArgsUsage: "[FILE...]",
		Flags: []cli.Flag{
			algorithmFlag,
			inputFormatFlag,
			encodingFlag,
			outputFormatFlag,
			outputLenFlag,
			upperFlag,
			b64PadFlag,
			roundsFlag,
			hmacKeyFlag,
			kmacKeyFlag,
			keyFormatFlag,
			customizationFlag,
			functionNameFlag,
			textFlag,
			verboseFlag,
		},
		Action: shasum,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// settings is the resolved command line configuration.
type settings struct {
	variant      streamhash.Variant
	inputFormat  streamhash.Format
	outputFormat streamhash.Format
	opts         []streamhash.Option
	outOpts      []streamhash.OutputOption
	hmac         bool
}

func parseSettings(ctx *cli.Context, logger *zap.Logger) (*settings, error) {
	variant, err := streamhash.ParseVariant(ctx.String(algorithmFlag.Name))
	if err != nil {
		return nil, err
	}
	inputFormat, err := streamhash.ParseFormat(ctx.String(inputFormatFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "--input-format")
	}
	outputFormat, err := streamhash.ParseFormat(ctx.String(outputFormatFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "--output-format")
	}
	enc, err := streamhash.ParseEncoding(ctx.String(encodingFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "--encoding")
	}
	keyFormat, err := streamhash.ParseFormat(ctx.String(keyFormatFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "--key-format")
	}

	s := &settings{
		variant:      variant,
		inputFormat:  inputFormat,
		outputFormat: outputFormat,
		opts: []streamhash.Option{
			streamhash.WithEncoding(enc),
			streamhash.WithNumRounds(ctx.Int(roundsFlag.Name)),
			streamhash.WithLogger(logger),
		},
		outOpts: []streamhash.OutputOption{
			streamhash.WithB64Pad(ctx.String(b64PadFlag.Name)),
			streamhash.WithOutputLen(ctx.Int(outputLenFlag.Name)),
		},
	}
	if ctx.Bool(upperFlag.Name) {
		s.outOpts = append(s.outOpts, streamhash.WithOutputUpper())
	}
	key := func(v string) streamhash.Input {
		return streamhash.Input{Value: []byte(v), Format: keyFormat}
	}
	if ctx.IsSet(hmacKeyFlag.Name) {
		s.opts = append(s.opts, streamhash.WithHMACKey(key(ctx.String(hmacKeyFlag.Name))))
		s.hmac = true
	}
	if ctx.IsSet(kmacKeyFlag.Name) {
		s.opts = append(s.opts, streamhash.WithKMACKey(key(ctx.String(kmacKeyFlag.Name))))
	}
	if ctx.IsSet(customizationFlag.Name) {
		s.opts = append(s.opts, streamhash.WithCustomization(streamhash.TextInput(ctx.String(customizationFlag.Name))))
	}
	if ctx.IsSet(functionNameFlag.Name) {
		s.opts = append(s.opts, streamhash.WithFuncName(streamhash.TextInput(ctx.String(functionNameFlag.Name))))
	}
	return s, nil
}

func shasum(ctx *cli.Context) error {
	logger := zap.NewNop()
	if ctx.Bool(verboseFlag.Name) {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer l.Sync() //nolint:errcheck
		logger = l
	}
	s, err := parseSettings(ctx, logger)
	if err != nil {
		return err
	}

	if ctx.IsSet(textFlag.Name) {
		text := ctx.String(textFlag.Name)
		return s.print(ctx.App.Writer, strconv.Quote(text), func(h *streamhash.Hash) error {
			return h.UpdateString(text)
		})
	}
	if ctx.NArg() == 0 {
		return s.print(ctx.App.Writer, "-", s.feed(ctx.App.Reader))
	}
	for _, name := range ctx.Args().Slice() {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		err = s.print(ctx.App.Writer, name, s.feed(f))
		f.Close()
		if err != nil {
			return errors.Wrap(err, name)
		}
	}
	return nil
}

// feed returns a function writing r into a hash. Raw byte input is streamed;
// textual formats are read whole so that no hex pair, base64 quantum or
// UTF-16 code unit is split across updates.
func (s *settings) feed(r io.Reader) func(*streamhash.Hash) error {
	return func(h *streamhash.Hash) error {
		switch s.inputFormat {
		case streamhash.FormatBytes, streamhash.FormatByteSlice, streamhash.FormatBuffer:
			_, err := io.Copy(h, r)
			return err
		}
		b, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		return h.Update(b)
	}
}

func (s *settings) print(w io.Writer, name string, feed func(*streamhash.Hash) error) error {
	h, err := streamhash.New(s.variant, s.inputFormat, s.opts...)
	if err != nil {
		return err
	}
	if err := feed(h); err != nil {
		return err
	}
	var digest string
	if s.hmac {
		digest, err = h.GetHMAC(s.outputFormat, s.outOpts...)
	} else {
		digest, err = h.GetHash(s.outputFormat, s.outOpts...)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s  %s\n", digest, name)
	return err
}
