package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch cmd := os.Args[1]; cmd {
	case "monitor":
		err = runMonitor(os.Args[2:])
	case "simulate":
		err = runSimulate(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("ppmx-host - servo pulse extender host tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ppmx-host monitor  [-device /dev/ttyACM0] [-baud 115200] [-file capture.bin]")
	fmt.Println("  ppmx-host simulate [-scenario file.yaml] [-telemetry out.bin] [-debug]")
	fmt.Println()
}
