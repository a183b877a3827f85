// wavetool inspects wave fields without a GPU: it dumps generated batches,
// bakes the normal map on the CPU and samples displaced positions.
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

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "dump":
		err = cmdDump(args, os.Stdout)
	case "bake":
		err = cmdBake(args, os.Stdout)
	case "sample":
		err = cmdSample(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`wavetool - Gerstner wave field utility

Usage:
  wavetool <command> [options]

Commands:
  dump   [-config f] [-seed N] [-format json|yaml]     Print generated wave batches
  bake   [-config f] [-seed N] [-size 256] [-time t] -o out.png
                                                     Bake the normal map on the CPU
  sample [-config f] [-seed N] [-x X] [-z Z] [-time t] Print a displaced point and its basis

Examples:
  wavetool dump -seed 7 -format yaml
  wavetool bake -seed 7 -size 512 -o normalmap.png
  wavetool sample -seed 7 -x 3 -z -4 -time 1.5`)
}
