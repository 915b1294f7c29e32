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

// Command marshalprint renders one or more marshal documents as
// human-readable text, the way cmd/dump renders ion documents as JSON.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ReinUsesLisp/marshal/internal/config"
	"github.com/ReinUsesLisp/marshal/internal/fileio"
	"github.com/ReinUsesLisp/marshal/marshal"
)

func main() {
	verbose := flag.Bool("v", false, "log each input file as it is processed")
	configPath := flag.String("config", "", "optional YAML file pre-setting decoder bounds")
	maxDepth := flag.Int("max-depth", 0, "override the decoder's maximum nesting depth (0 = use default)")
	maxLength := flag.Int("max-length", 0, "override the decoder's maximum byte-run/container length (0 = use default)")
	flag.Parse()

	if !*verbose {
		log.SetOutput(os.Stderr)
		log.SetFlags(0)
	}

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
	if *maxDepth != 0 {
		opts = append(opts, marshal.WithMaxDepth(*maxDepth))
	}
	if *maxLength != 0 {
		opts = append(opts, marshal.WithMaxLength(int32(*maxLength)))
	}
	dec := marshal.NewDecoder(opts...)

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: marshalprint [flags] <path>...")
		os.Exit(1)
	}

	out := bufio.NewWriter(os.Stdout)
	for _, arg := range args {
		if *verbose {
			log.Printf("reading %s", arg)
		}
		raw, err := fileio.ReadAll(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "can't read %q: %s\n", arg, err)
			os.Exit(1)
		}
		v, err := dec.Decode(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "input %s: %s\n", arg, err)
			os.Exit(1)
		}
		if err := marshal.Fprint(out, v); err != nil {
			fmt.Fprintf(os.Stderr, "writing output: %s\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(out)
	}
	if err := out.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
