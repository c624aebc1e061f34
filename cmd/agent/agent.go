// Command agent runs the swarm steering loop on one robot: it reads range
// scans from a lidar, computes a steering force from the flocking behaviors,
// and drives the differential wheels, with telemetry going to the log, an
// optional sqlite database, and an HTTP debug dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/swarm.pilot/internal/actuator"
	"github.com/banshee-data/swarm.pilot/internal/monitoring"
	"github.com/banshee-data/swarm.pilot/internal/sensor"
	"github.com/banshee-data/swarm.pilot/internal/swarm"
	"github.com/banshee-data/swarm.pilot/internal/swarmdb"
	"github.com/banshee-data/swarm.pilot/internal/telemetry"
	"github.com/banshee-data/swarm.pilot/internal/timeutil"
	"github.com/banshee-data/swarm.pilot/internal/version"
	"github.com/banshee-data/swarm.pilot/internal/viz"
)

var (
	agentName    = flag.String("name", "", "Agent name (defaults to a generated ID)")
	serialPath   = flag.String("serial", "", "Lidar serial device (e.g. /dev/ttyUSB0); empty selects the synthetic scanner")
	baudRate     = flag.Int("baud", sensor.DefaultBaudRate, "Lidar serial baud rate")
	actuatorPath = flag.String("actuator", "", "Wheel controller serial device; empty logs drive commands instead")
	dbPath       = flag.String("db", "", "Sqlite telemetry database path; empty disables persistence")
	configPath   = flag.String("config", "", "Tuning config JSON path")
	listen       = flag.String("listen", ":8080", "Debug HTTP listen address; empty disables the server")
	tick         = flag.Duration("tick", 32*time.Millisecond, "Control loop interval")
	seed         = flag.Int64("seed", 0, "Wander RNG seed (0 seeds from the clock)")
	verbose      = flag.Bool("verbose", false, "Enable debug logging")
	showVersion  = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	monitoring.SetVerbose(*verbose)

	name := *agentName
	if name == "" {
		name = "agent-" + uuid.NewString()[:8]
	}

	var cfg *swarm.TuningConfig
	if *configPath != "" {
		var err error
		cfg, err = swarm.LoadTuningConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load tuning config: %v", err)
		}
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	agent := swarm.NewAgent(name, cfg.Params(), rngSeed)
	agent.Weights = cfg.InitialWeights()

	scanner, err := openScanner()
	if err != nil {
		log.Fatalf("failed to open scanner: %v", err)
	}
	defer scanner.Close()

	drive, err := openActuator(name)
	if err != nil {
		log.Fatalf("failed to open actuator: %v", err)
	}
	defer drive.Close()

	sinks := []swarm.TelemetrySink{telemetry.LogSink{}}
	if *dbPath != "" {
		db, err := swarmdb.NewSwarmDB(*dbPath)
		if err != nil {
			log.Fatalf("failed to open telemetry database: %v", err)
		}
		defer db.Close()
		sinks = append(sinks, db)
	}

	tuning := make(chan swarm.TuningEvent, 16)
	vizServer := viz.NewServer(name, tuning)

	runner := &swarm.Runner{
		Agent:     agent,
		Scanner:   scanner,
		Actuator:  drive,
		Telemetry: sinks,
		Viz:       vizServer,
		Tuning:    tuning,
		Clock:     timeutil.RealClock{},
		Interval:  *tick,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("%s starting agent %s (tick=%s seed=%d)", version.String(), name, *tick, rngSeed)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := runner.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("control loop terminated: %v", err)
		}
		log.Print("control loop stopped")
	}()

	if *listen != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serveDebug(ctx, vizServer)
		}()
	}

	wg.Wait()
}

// scanCloser pairs the RangeScanner interface with Close so main can defer
// cleanup without caring which scanner it got.
type scanCloser interface {
	swarm.RangeScanner
	Close() error
}

type nopCloserScanner struct{ swarm.RangeScanner }

func (nopCloserScanner) Close() error { return nil }

func openScanner() (scanCloser, error) {
	if *serialPath == "" {
		log.Print("no lidar device configured; using synthetic scanner")
		syn := sensor.NewSynthetic(sensor.DefaultSyntheticConfig())
		return nopCloserScanner{syn}, nil
	}
	return sensor.OpenSerialScanner(*serialPath, *baudRate)
}

type driveCloser interface {
	swarm.Actuator
	Close() error
}

type nopCloserActuator struct{ swarm.Actuator }

func (nopCloserActuator) Close() error { return nil }

func openActuator(name string) (driveCloser, error) {
	if *actuatorPath == "" {
		log.Print("no wheel controller configured; logging drive commands")
		return nopCloserActuator{actuator.LogActuator{Name: name}}, nil
	}
	return actuator.OpenSerialActuator(*actuatorPath, actuator.DefaultBaudRate)
}

// serveDebug runs the visualisation HTTP server until ctx is cancelled.
func serveDebug(ctx context.Context, vizServer *viz.Server) {
	server := &http.Server{
		Addr:    *listen,
		Handler: vizServer.Handler(),
	}

	go func() {
		log.Printf("debug server listening on %s", *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("debug server failed: %v", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Print("shutting down debug server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("debug server shutdown error: %v", err)
	}
}
