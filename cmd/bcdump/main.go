// Copyright (C) 2024 Willcharlton, Inc.
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

// Command bcdump disassembles a bcimage container (or a single raw
// scope buffer passed with -raw) into a human-readable instruction
// listing, for inspecting what the emitter produced without a real VM.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/willcharlton/pybc/bcimage"
	"github.com/willcharlton/pybc/bytecode"
)

func main() {
	raw := flag.Bool("raw", false, "treat the input as a single raw scope buffer instead of a bcimage container")
	wordSize := flag.Int("word-size", 8, "target pointer width used to decode raw_code operands")
	flag.Parse()

	o := bufio.NewWriter(os.Stdout)
	defer o.Flush()

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := dumpFile(o, arg, *raw, *wordSize); err != nil {
			fmt.Fprintf(os.Stderr, "bcdump: %s: %s\n", arg, err)
			os.Exit(1)
		}
	}
}

func dumpFile(o io.Writer, path string, raw bool, wordSize int) error {
	var in *os.File
	if path == "-" {
		in = os.Stdin
	} else {
		var err error
		in, err = os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	if raw {
		fmt.Fprintf(o, "; raw scope buffer, %d bytes\n", len(data))
		return dumpScope(o, data, wordSize)
	}

	entries, err := bcimage.Read(data)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(o, "; scope handle=%d, %d bytes\n", e.HandleID, len(e.Buf))
		if err := dumpScope(o, e.Buf, wordSize); err != nil {
			return err
		}
	}
	return nil
}

func dumpScope(o io.Writer, buf []byte, wordSize int) error {
	lines, err := bytecode.Disassemble(buf, wordSize)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(o, line)
	}
	return nil
}
