// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Command marshalreencode decodes one document and re-encodes it,
// exercising the Decoder and Encoder back to back the way the format's
// own re-encode example does.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ReinUsesLisp/marshal/internal/config"
	"github.com/ReinUsesLisp/marshal/internal/fileio"
	"github.com/ReinUsesLisp/marshal/marshal"
)

func main() {
	verbose := flag.Bool("v", false, "log progress to stderr")
	configPath := flag.String("config", "", "optional YAML file pre-setting decoder bounds")
	dedupe := flag.Bool("dedupe-symbols", false, "emit repeated symbols as back-references")
	flag.Parse()

	if !*verbose {
		log.SetOutput(os.Stderr)
		log.SetFlags(0)
	}

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: marshalreencode [flags] <in> <out>")
		os.Exit(1)
	}
	inPath, outPath := args[0], args[1]

	var opts []marshal.DecoderOption
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading config %q: %s\n", *configPath, err)
			os.Exit(1)
		}
		if cfg.Decoder.MaxDepth != 0 {
			opts = append(opts, marshal.WithMaxDepth(cfg.Decoder.MaxDepth))
		}
		if cfg.Decoder.MaxLength != 0 {
			opts = append(opts, marshal.WithMaxLength(cfg.Decoder.MaxLength))
		}
	}

	if *verbose {
		log.Printf("reading %s", inPath)
	}
	raw, err := fileio.ReadAll(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "can't read %q: %s\n", inPath, err)
		os.Exit(1)
	}

	dec := marshal.NewDecoder(opts...)
	v, err := dec.Decode(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decoding %s: %s\n", inPath, err)
		os.Exit(1)
	}

	enc := &marshal.Encoder{DedupeSymbols: *dedupe}
	out, err := enc.Encode(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encoding: %s\n", err)
		os.Exit(1)
	}

	if *verbose {
		log.Printf("writing %s (%d bytes)", outPath, len(out))
	}
	if err := fileio.WriteAll(outPath, out); err != nil {
		fmt.Fprintf(os.Stderr, "can't write %q: %s\n", outPath, err)
		os.Exit(1)
	}
}
