// Command edgehdc encodes sensor readings into hypervectors from the host.
//
// Usage:
//
//	edgehdc encode <reading>...          Encode one reading, or one reading per channel
//	edgehdc signed <value> <min> <max>   Encode a bipolar value
//	edgehdc compare <hex> <hex>          Print Hamming distance and similarity
//	edgehdc stream                       Encode sample lines from stdin
//	edgehdc log [n]                      Print the newest n logged records
//
// Every command accepts -config <file.yaml>.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "encode":
		err = runEncode(args, os.Stdout)
	case "signed":
		err = runSigned(args, os.Stdout)
	case "compare":
		err = runCompare(args, os.Stdout)
	case "stream":
		err = runStream(args, os.Stdin, os.Stdout)
	case "log":
		err = runLog(args, os.Stdout)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`edgehdc: encode sensor readings into 128-bit hypervectors

Usage:
  edgehdc encode [-config f] <reading>...       Thermometer-encode 10-bit readings (0-1023);
                                                several readings, or any reading with -config,
                                                are bound to one role vector per channel as in stream
  edgehdc signed [-config f] <value> <min> <max> Encode a bipolar value in [min, max]
  edgehdc compare <hex> <hex>                   Print Hamming distance and similarity
  edgehdc stream [-config f]                    Read whitespace-separated samples per line from
                                                stdin and write one vector line per sample set
  edgehdc log [-config f] [n]                   Print the newest n records (default 10)
  edgehdc help                                  Show this help

Vectors are printed as 32 uppercase hex digits, byte 0 first, CRLF terminated.`)
}
