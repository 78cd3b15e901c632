// Command statictablegen regenerates the Header literals in
// internal/hpack/header.go's staticTable from a semicolon-delimited
// "index;name;value" source file, the format RFC 7541 Appendix A's table
// is easiest to transcribe into by hand. It prints Go struct literals to
// stdout; pipe the output into the staticTable declaration rather than
// hand-editing entries.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
)

func main() {
	path := flag.String("content", "", "The content of the file to insert")
	flag.Parse()

	if *path == "" {
		log.Fatal("the -content file path is required")
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ";")
		if len(fields) < 2 {
			continue
		}
		for i, field := range fields {
			fields[i] = strings.TrimSpace(field)
		}

		name := fields[1]
		value := ""
		if len(fields) > 2 {
			value = fields[2]
		}

		if value == "" {
			fmt.Printf("\t{Name: %q},\n", name)
		} else {
			fmt.Printf("\t{Name: %q, Value: %q},\n", name, value)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}
