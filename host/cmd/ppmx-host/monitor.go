package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"ppmx/host/monitor"
	"ppmx/host/serial"
)

func runMonitor(args []string) error {
	fs := flag.NewFlagSet("monitor", flag.ContinueOnError)
	device := fs.String("device", "/dev/ttyACM0", "Serial device path")
	baud := fs.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	file := fs.String("file", "", "Read a recorded telemetry file instead of a device")
	verbose := fs.Bool("verbose", false, "Print stream counters on exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var src io.ReadCloser
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			return fmt.Errorf("failed to open telemetry file: %w", err)
		}
		src = f
	} else {
		cfg := serial.DefaultConfig(*device)
		cfg.Baud = *baud
		port, err := serial.Open(cfg)
		if err != nil {
			return err
		}
		if err := port.Flush(); err != nil {
			port.Close()
			return fmt.Errorf("failed to flush %s: %w", *device, err)
		}
		fmt.Fprintf(os.Stderr, "Monitoring %s...\n", *device)
		src = port
	}
	defer src.Close()

	m := monitor.New(src, func(r monitor.Report) {
		fmt.Println(r.String())
	})
	m.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	select {
	case <-m.Done():
	case <-interrupt:
		m.Stop()
	}

	if *verbose {
		c := m.Counters()
		fmt.Fprintf(os.Stderr, "frames=%d dropped=%d lost=%d unknown=%d malformed=%d\n",
			c.Frames, c.Dropped, c.Lost, c.Unknown, c.Malformed)
	}
	return m.Err()
}
