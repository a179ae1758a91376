package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Maksim2301/System-activity-monitor/internal/config"
	"github.com/Maksim2301/System-activity-monitor/internal/daemon"
	"github.com/Maksim2301/System-activity-monitor/internal/database"
	"github.com/Maksim2301/System-activity-monitor/internal/idle"
	"github.com/Maksim2301/System-activity-monitor/internal/metrics"
	"github.com/Maksim2301/System-activity-monitor/internal/models"
	"github.com/Maksim2301/System-activity-monitor/internal/monitor"
	"github.com/Maksim2301/System-activity-monitor/internal/report"
	"github.com/Maksim2301/System-activity-monitor/internal/web"
	"github.com/Maksim2301/System-activity-monitor/version"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "start":
		startDaemon()
	case "serve":
		serveForeground()
	case "stop":
		stopDaemon()
	case "status":
		showStatus()
	case "report":
		generateReport()
	case "version":
		showVersion()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`sysmon - workstation activity monitor

Usage:
  sysmon <command> [options]

Commands:
  start                       Start the sampling daemon with the web API
  serve                       Run the collector in the foreground
  stop                        Stop the sampling daemon
  status                      Show daemon status and a current reading
  report <name> <start> <end> Generate and export a report (dates: 2006-01-02)
  version                     Show version information
  help                        Show this help message

Report options:
  --format=<csv|xlsx|pdf>     Export format (default csv)

Environment Variables:
  SYSMON_USER                 Username to record snapshots under (empty = guest)
  SYSMON_DB_PATH              Database file path
  SYSMON_FAST_INTERVAL        Warning tick period in seconds
  SYSMON_SLOW_INTERVAL        Persistence tick period in seconds
  SYSMON_INPUT_POLL_MS        Input polling period in milliseconds
  SYSMON_PID_FILE             PID file path
  SYSMON_EXPORT_DIR           Export output directory
  SYSMON_WEB_HOST             Web API host
  SYSMON_WEB_PORT             Web API port

Version: %s
`, version.Version)
}

func startDaemon() {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if running {
		log.Fatalf("Daemon is already running (PID: %d)", pid)
	}

	if os.Getenv("SYSMON_DAEMON_CHILD") != "1" {
		daemonize()
		return
	}

	runDaemon(cfg, dm)
}

// serveForeground runs the collector and web API in the current process,
// logging to stderr. Useful under a process supervisor or for debugging.
func serveForeground() {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if running {
		log.Fatalf("Daemon is already running (PID: %d)", pid)
	}

	runDaemon(cfg, dm)
}

func runDaemon(cfg *config.Config, dm *daemon.Daemon) {
	// Only the detached child loses its terminal; foreground serve keeps
	// logging to stderr.
	if os.Getenv("SYSMON_DAEMON_CHILD") == "1" {
		logPath := fmt.Sprintf("/tmp/sysmon-%d.log", os.Getuid())
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			log.SetOutput(logFile)
			defer logFile.Close()
		}
	}

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	user := resolveUser(db)

	provider := metrics.NewSystemProvider(cfg.Monitor.InputPollInterval)
	defer provider.Close()

	if err := dm.WritePID(); err != nil {
		log.Fatalf("Failed to write PID file: %v", err)
	}
	defer dm.RemovePID()

	snapshots := database.NewSnapshotRepository(db)
	idles := database.NewIdleRepository(db)
	reports := database.NewReportRepository(db)

	monitorSvc := monitor.NewService(cfg, provider, snapshots)
	idleSvc := idle.NewService(idles)
	reportSvc := report.NewService(snapshots, idles, reports, cfg.Export.Dir)

	handler := web.NewHandler(cfg, monitorSvc, idleSvc, reportSvc, snapshots, user)
	webServer := web.NewServer(cfg, handler)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := webServer.Start(); err != nil && err != http.ErrServerClosed {
			log.Printf("Web server error: %v", err)
		}
	}()

	monitorSvc.Start(user)

	log.Println("Starting sysmon daemon...")
	log.Printf("Web API available at: http://%s", webServer.GetAddress())
	log.Printf("Configuration:\n%s", cfg.String())

	<-sigChan
	log.Println("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	monitorSvc.Stop()
	monitorSvc.Wait()
	if err := webServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down web server: %v", err)
	}

	log.Println("Daemon stopped successfully")
}

// resolveUser maps SYSMON_USER to a stored identity. An empty value means
// guest mode: sampling runs, nothing is persisted.
func resolveUser(db *database.DB) *models.User {
	username := os.Getenv("SYSMON_USER")
	if username == "" {
		log.Println("No user configured, running in guest mode")
		return nil
	}

	users := database.NewUserRepository(db)
	user, err := users.FindOrCreate(username)
	if err != nil {
		log.Printf("Failed to resolve user %q, running in guest mode: %v", username, err)
		return nil
	}
	return user
}

func stopDaemon() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if !running {
		fmt.Println("Daemon is not running")
		return
	}
	fmt.Printf("Stopping daemon (PID: %d)...\n", pid)
	if err := dm.Stop(); err != nil {
		log.Fatalf("Failed to stop daemon: %v", err)
	}
	fmt.Println("Daemon stopped successfully")
}

func showStatus() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if !running {
		fmt.Println("Status: Not running")
	} else {
		fmt.Printf("Status: Running (PID: %d)\n", pid)
		fmt.Printf("Fast Interval: %v\n", cfg.Monitor.FastInterval)
		fmt.Printf("Slow Interval: %v\n", cfg.Monitor.SlowInterval)
		fmt.Printf("Database: %s\n", cfg.Database.Path)
	}

	provider := metrics.NewSystemProvider(cfg.Monitor.InputPollInterval)
	defer provider.Close()

	reading, err := provider.Snapshot()
	if err != nil {
		fmt.Printf("\nCould not take a reading: %v\n", err)
		return
	}

	fmt.Printf("\nCurrent Reading:\n")
	if reading.CpuLoad != nil {
		fmt.Printf("  CPU: %.2f%%\n", *reading.CpuLoad)
	}
	if reading.RamUsedMb != nil && reading.RamTotalMb != nil {
		fmt.Printf("  RAM: %.2f / %.2f MB\n", *reading.RamUsedMb, *reading.RamTotalMb)
	}
	if reading.DiskFreeGb != nil && reading.DiskTotalGb != nil {
		fmt.Printf("  Disk free: %.2f / %.2f GB\n", *reading.DiskFreeGb, *reading.DiskTotalGb)
	}
	if reading.ActiveWindow != "" {
		fmt.Printf("  Window: %s\n", reading.ActiveWindow)
	}
	fmt.Printf("  Uptime: %ds\n", reading.SystemUptimeSeconds)
}

func generateReport() {
	if len(os.Args) < 5 {
		fmt.Println("Usage: sysmon report <name> <start> <end> [--format=csv]")
		os.Exit(1)
	}

	name, startStr, endStr := os.Args[2], os.Args[3], os.Args[4]

	format := "csv"
	for _, arg := range os.Args[5:] {
		if len(arg) > len("--format=") && arg[:len("--format=")] == "--format=" {
			format = arg[len("--format="):]
		}
	}

	start, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
	if err != nil {
		log.Fatalf("Invalid start date: %v", err)
	}
	end, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
	if err != nil {
		log.Fatalf("Invalid end date: %v", err)
	}

	cfg := config.New()
	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	user := resolveUser(db)

	snapshots := database.NewSnapshotRepository(db)
	idles := database.NewIdleRepository(db)
	reports := database.NewReportRepository(db)
	reportSvc := report.NewService(snapshots, idles, reports, cfg.Export.Dir)

	flags := models.SectionFlags{
		CpuRam:      true,
		Idle:        true,
		DailyUptime: true,
		HourlyStats: true,
		AppUsage:    true,
	}

	rep, pkg, err := reportSvc.Generate(user, name, start, end, flags)
	if err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}

	path, err := reportSvc.Export(pkg, format)
	if err != nil {
		log.Fatalf("Failed to export report: %v", err)
	}

	fmt.Printf("Report %d generated: %s\n", rep.ID, path)
}

func daemonize() {
	env := os.Environ()
	env = append(env, "SYSMON_DAEMON_CHILD=1")
	args := os.Args
	procAttr := &os.ProcAttr{
		Env:   env,
		Files: []*os.File{nil, nil, nil},
		Sys:   &syscall.SysProcAttr{Setsid: true},
	}
	process, err := os.StartProcess(args[0], args, procAttr)
	if err != nil {
		log.Fatalf("Failed to start daemon process: %v", err)
	}

	fmt.Printf("Daemon started successfully (PID: %d)\n", process.Pid)
	fmt.Printf("Logs: /tmp/sysmon-%d.log\n", os.Getuid())
}

func showVersion() {
	fmt.Printf("version: %s\n", version.Version)
	fmt.Printf("built  : %s\n", version.Date)
}
