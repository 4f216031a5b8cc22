package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/danmuck/thaiqr/internal/history"
	"github.com/danmuck/thaiqr/internal/protocol"
	"github.com/danmuck/thaiqr/internal/protocol/crc"
	"github.com/danmuck/thaiqr/internal/qr"
	"github.com/danmuck/thaiqr/internal/render"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// errHelp stops a command after pflag printed its usage.
var errHelp = errors.New("help requested")

func newFlagSet(name string, e env) *pflag.FlagSet {
	fs := pflag.NewFlagSet("qrctl "+name, pflag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func parseFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return errHelp
		}
		return &exitError{code: 2, err: err}
	}
	return nil
}

// payloadArg returns the single positional payload, reading stdin for "-".
func payloadArg(e env, fs *pflag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", usageError("%s: expected exactly one payload argument", fs.Name())
	}
	raw := fs.Arg(0)
	if raw != "-" {
		return raw, nil
	}
	b, err := io.ReadAll(e.stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func runDecode(e env, args []string) error {
	fs := newFlagSet("decode", e)
	source := fs.StringP("source", "s", string(history.SourceText), "payload source: camera|file|text")
	asJSON := fs.Bool("json", false, "print the decoded payload as JSON")
	tag := fs.StringP("tag", "t", "", "print only the field with this tag")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	src, err := history.ParseSource(*source)
	if err != nil {
		return &exitError{code: 2, err: err}
	}
	raw, err := payloadArg(e, fs)
	if err != nil {
		return err
	}

	res, err := qr.NewService(nil, nil).Scan(src, raw)
	if err != nil {
		return err
	}
	if *tag != "" {
		f, ok := res.Data.Field(*tag)
		if !ok {
			return fmt.Errorf("decode: no field with tag %q", *tag)
		}
		if *asJSON {
			enc := json.NewEncoder(e.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(f)
		}
		tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
		printField(tw, f)
		return tw.Flush()
	}
	if *asJSON {
		enc := json.NewEncoder(e.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Data          *protocol.Data `json:"data"`
			ChecksumValid bool           `json:"checksumValid"`
		}{res.Data, res.ChecksumValid})
	}
	printData(e.stdout, res)
	return nil
}

func printData(w io.Writer, res qr.ScanResult) {
	d := res.Data
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "type\t%s\n", d.Type)
	fmt.Fprintf(tw, "version\t%s\n", d.Version)
	printOpt(tw, "merchant id", d.MerchantID)
	printOpt(tw, "merchant name", d.MerchantName)
	if d.Amount != nil {
		if math.IsNaN(*d.Amount) {
			fmt.Fprintf(tw, "amount\tinvalid\n")
		} else {
			fmt.Fprintf(tw, "amount\t%.2f\n", *d.Amount)
		}
	}
	printOpt(tw, "currency", d.Currency)
	printOpt(tw, "reference", d.Reference)
	if d.Checksum != nil {
		verdict := "valid"
		if !res.ChecksumValid {
			verdict = res.ChecksumError.Error()
		}
		fmt.Fprintf(tw, "checksum\t%s (%s)\n", *d.Checksum, verdict)
	}
	fmt.Fprintln(tw)
	for _, f := range d.ParsedFields {
		printField(tw, f)
	}
	tw.Flush()
}

func printField(w io.Writer, f protocol.Field) {
	fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", f.Tag, f.Description, f.Length, f.Value)
	for _, sub := range f.SubTags {
		fmt.Fprintf(w, "  %s\t  %s\t%d\t%s\n", sub.Tag, sub.Description, sub.Length, sub.Value)
	}
}

func printOpt(w io.Writer, label string, v *string) {
	if v != nil {
		fmt.Fprintf(w, "%s\t%s\n", label, *v)
	}
}

func runEncode(e env, args []string) error {
	fs := newFlagSet("encode", e)
	var in protocol.GeneratorInput
	fs.StringVar(&in.AID, "aid", "", "application identifier")
	fs.StringVar(&in.BillerID, "biller-id", "", "biller id")
	fs.StringVar(&in.Reference1, "ref1", "", "reference 1")
	fs.StringVar(&in.Reference2, "ref2", "", "reference 2")
	fs.StringVar(&in.MerchantName, "name", "", "merchant name")
	fs.StringVar(&in.MerchantCity, "city", "", "merchant city")
	amount := fs.String("amount", "", "transaction amount in baht")
	pngPath := fs.String("png", "", "also render the QR symbol to this PNG file")
	size := fs.Int("size", render.DefaultSize, "PNG size in pixels")
	recovery := fs.String("recovery", "medium", "error recovery level: low|medium|high|highest")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usageError("encode: unexpected arguments %v", fs.Args())
	}
	if *amount != "" {
		d, err := decimal.NewFromString(*amount)
		if err != nil {
			return usageError("encode: invalid amount %q", *amount)
		}
		in.Amount = &d
	}

	payload, err := encode(e, in, *pngPath, *size, *recovery)
	if err != nil {
		var verr *protocol.ValidationError
		if errors.As(err, &verr) {
			for _, msg := range verr.Messages {
				fmt.Fprintf(e.stderr, "  - %s\n", msg)
			}
			return &exitError{code: 2, err: err}
		}
		return err
	}
	fmt.Fprintln(e.stdout, payload)
	return nil
}

func encode(e env, in protocol.GeneratorInput, pngPath string, size int, recovery string) (string, error) {
	if pngPath == "" {
		return qr.NewService(nil, nil).Encode(in)
	}
	level, err := render.ParseLevel(recovery)
	if err != nil {
		return "", usageError("encode: %v", err)
	}
	svc := qr.NewService(render.PNGRenderer{Size: size, Recovery: level}, nil)
	res, err := svc.Generate(context.Background(), in)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(pngPath, res.Image.Data, 0o644); err != nil {
		return "", fmt.Errorf("write png: %w", err)
	}
	fmt.Fprintf(e.stderr, "wrote %s (%d bytes)\n", pngPath, len(res.Image.Data))
	return res.QRString, nil
}

func runSample(e env, args []string) error {
	fs := newFlagSet("sample", e)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	in := protocol.SampleInput()
	payload, err := protocol.Encode(in)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(e.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(in); err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, payload)
	return nil
}

func runCRC(e env, args []string) error {
	fs := newFlagSet("crc", e)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	data, err := payloadArg(e, fs)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, crc.Checksum(data))
	return nil
}

func runVerify(e env, args []string) error {
	fs := newFlagSet("verify", e)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	raw, err := payloadArg(e, fs)
	if err != nil {
		return err
	}
	if err := protocol.VerifyChecksum(raw); err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, "checksum ok")
	return nil
}
