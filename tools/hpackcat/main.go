// Command hpackcat exercises the public hpack.Encoder/hpack.Decoder API
// end-to-end from the command line: it either decodes a hex-encoded header
// block fragment into "name: value" lines, or encodes "name: value" lines
// read from stdin into a hex-encoded header block fragment.
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"hpackcodec/internal/hpack"
	"hpackcodec/internal/logging"
)

func main() {
	decode := flag.Bool("decode", false, "decode a hex header block fragment from -in (or stdin) into headers")
	encode := flag.Bool("encode", false, "encode \"name: value\" lines from -in (or stdin) into a hex header block fragment")
	in := flag.String("in", "", "input file path; defaults to stdin")
	maxSize := flag.Int("max-size", hpack.DefaultMaxDynamicTableSize, "initial dynamic table max size in octets")
	verbose := flag.Bool("verbose", false, "log dynamic table mutations (resizes and insertions) to stderr")
	flag.Parse()

	if *decode == *encode {
		log.Fatal("exactly one of -decode or -encode is required")
	}

	src := os.Stdin
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		src = f
	}

	var logger logging.Logger
	if *verbose {
		logger = logging.NewWriterLogger(logging.LogLevelDebug, os.Stderr)
	}

	if *decode {
		if err := runDecode(src, *maxSize, logger); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := runEncode(src, *maxSize, logger); err != nil {
		log.Fatal(err)
	}
}

func runDecode(src *os.File, maxSize int, logger logging.Logger) error {
	scanner := bufio.NewScanner(src)
	buf := make([]byte, 0, 4096)
	for scanner.Scan() {
		buf = append(buf, strings.TrimSpace(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	block, err := hex.DecodeString(string(buf))
	if err != nil {
		return fmt.Errorf("hpackcat: invalid hex input: %w", err)
	}

	dec := hpack.NewDecoder(maxSize)
	dec.SetLogger(logger)

	headers, err := dec.Decode(block)
	if err != nil {
		return fmt.Errorf("hpackcat: decode: %w", err)
	}
	for _, h := range headers {
		fmt.Printf("%s: %s\n", h.Name, h.Value)
	}
	return nil
}

func runEncode(src *os.File, maxSize int, logger logging.Logger) error {
	var headers []hpack.Header
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return fmt.Errorf("hpackcat: malformed header line %q, want \"name: value\"", line)
		}
		headers = append(headers, hpack.Header{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)})
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	enc := hpack.NewEncoder(maxSize)
	enc.SetLogger(logger)

	block := enc.Encode(nil, headers)
	fmt.Println(hex.EncodeToString(block))
	return nil
}
