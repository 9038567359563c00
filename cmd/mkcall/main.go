package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/meridian-analytics/kadlu-echo/signal"
)

// mkcall synthesizes a test source signal and writes it to a WAV file, for
// driving simulations when no recorded call is at hand.
func main() {
	kind := flag.String("kind", "chirp", "signal kind: chirp, whistle, or clicks")
	f0 := flag.Float64("f0", 2000, "start/carrier frequency in Hz")
	f1 := flag.Float64("f1", 8000, "chirp end frequency in Hz")
	deviation := flag.Float64("deviation", 500, "whistle frequency deviation in Hz")
	modRate := flag.Float64("mod-rate", 4, "whistle modulation rate in Hz")
	clickRate := flag.Float64("click-rate", 10, "clicks per second")
	duration := flag.Float64("duration", 1.0, "signal duration in seconds")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	out := flag.String("out", "call.wav", "output wav file")
	flag.Parse()

	var samples []float64
	var err error
	switch *kind {
	case "chirp":
		samples, err = signal.Chirp(*f0, *f1, *duration, *rate)
	case "whistle":
		samples, err = signal.Whistle(*f0, *deviation, *modRate, *duration, *rate)
	case "clicks":
		samples, err = signal.ClickTrain(*f0, *clickRate, *duration, *rate)
	default:
		fmt.Printf("unknown kind %q: want chirp, whistle, or clicks\n", *kind)
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("synthesizing %s: %v", *kind, err)
	}

	signal.Normalize(samples, 0.9)
	if err := signal.WriteWAV(*out, samples, *rate); err != nil {
		log.Fatalf("writing %s: %v", *out, err)
	}
	fmt.Printf("Wrote %d samples to %s\n", len(samples), *out)
}
