// Command filterforge designs analog filters from the command line and
// serves the design engine over HTTP.
//
// Usage:
//
//	filterforge design [notation ...] [flags]
//	filterforge factor --num 1 --den 1,2,2
//	filterforge schema [--format yaml]
//	filterforge serve
//	filterforge list
//
// Examples:
//
//	filterforge design passive lpf butterworth n=3 fc=1k
//	filterforge design --type active --family hpf --approx chebyshev1 -n 4 --fc 500 --rp 0.5
//	filterforge design apf n=2 f0=1k --impulse 1024 --format table
package main

import "github.com/cwbudde/filterforge/cmd/filterforge/cmd"

func main() {
	cmd.Execute()
}
