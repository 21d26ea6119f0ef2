// Command nesgo is a windowed shell around the nescore emulation core.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"nescore/internal/console"
	"nescore/internal/hostui"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "Path to NES ROM file")
		configFile = flag.String("config", "", "Path to host config file (JSON)")
		nogui      = flag.Bool("nogui", false, "Run headless (no window, no audio)")
		trace      = flag.String("trace", "", "Write a per-instruction trace log to this path")
	)
	flag.Parse()

	if *romFile == "" {
		fmt.Fprintln(os.Stderr, "usage: nesgo -rom <file> [-config path] [-nogui] [-trace path]")
		os.Exit(2)
	}

	setupGracefulShutdown()

	hostCfg := hostui.DefaultConfig()
	if *configFile != "" {
		loaded, err := hostui.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("nesgo: load config: %v", err)
		}
		hostCfg = loaded
	}
	if *nogui {
		hostCfg.Video.Backend = "headless"
	}

	coreCfg := console.DefaultConfig()
	var opts []console.Option
	var traceFile *os.File
	if *trace != "" {
		f, err := os.Create(*trace)
		if err != nil {
			log.Fatalf("nesgo: create trace file: %v", err)
		}
		traceFile = f
		coreCfg.Trace = console.TraceConfig{Enabled: true, Path: *trace}
		opts = append(opts, console.WithTraceWriter(f))
	}
	if traceFile != nil {
		defer traceFile.Close()
	}

	app, err := hostui.New(*romFile, hostCfg, coreCfg, opts...)
	if err != nil {
		log.Fatalf("nesgo: %v", err)
	}
	defer func() {
		if err := app.Cleanup(); err != nil {
			log.Printf("nesgo: cleanup: %v", err)
		}
	}()

	if err := app.Run(); err != nil {
		log.Fatalf("nesgo: run: %v", err)
	}

	fmt.Printf("frames rendered: %d (avg %.1f fps)\n", app.FrameCount(), app.FPS())
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		os.Exit(0)
	}()
}
