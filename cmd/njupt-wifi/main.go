package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/kardianos/service"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/njupt-wifi/autologin/internal/adapter/http"
	"github.com/njupt-wifi/autologin/internal/adapter/netchange"
	"github.com/njupt-wifi/autologin/internal/adapter/yamlfile"
	"github.com/njupt-wifi/autologin/internal/domain"
	"github.com/njupt-wifi/autologin/internal/logging"
	"github.com/njupt-wifi/autologin/internal/port"
	"github.com/njupt-wifi/autologin/internal/usecase/client"
)

const stopTimeout = 10 * time.Second

var svcConfig = &service.Config{
	Name:        "NjuptWifi",
	DisplayName: "NJUPT Wi-Fi Auto Login",
	Description: "Logs in to the campus portal whenever network connectivity changes.",
}

func main() {
	exeDir := executableDir()
	if err := godotenv.Load(filepath.Join(exeDir, ".env")); err != nil && !os.IsNotExist(err) {
		log.Warn("Cannot load .env", "err", err)
	}

	installCmd := flag.NewFlagSet("install", flag.ExitOnError)
	installUser := installCmd.String("userid", "", "Portal user id (writes the config file when set)")
	installPass := installCmd.String("password", "", "Portal password")
	installISP := installCmd.String("isp", "EDU", "Carrier: EDU, CMCC or CT")

	prg := &program{}
	s, err := service.New(prg, svcConfig)
	if err != nil {
		log.Fatal("Create service", "err", err)
	}

	if len(os.Args) < 2 {
		runService(s, prg, exeDir)
		return
	}

	switch cmd := os.Args[1]; cmd {
	case "install":
		installCmd.Parse(os.Args[2:])
		if *installUser != "" {
			carrier, err := domain.ParseCarrier(*installISP)
			if err != nil {
				log.Fatal("Invalid --isp", "err", err)
			}
			path := filepath.Join(exeDir, yamlfile.FileName)
			cred := domain.Credential{UserID: *installUser, Password: *installPass, Carrier: carrier}
			if err := yamlfile.Save(path, cred); err != nil {
				log.Fatal("Write config", "path", path, "err", err)
			}
			fmt.Printf("Config written: %s\n", path)
		}
		control(s, "install")
		control(s, "start")
	case "uninstall":
		control(s, "stop")
		control(s, "uninstall")
	case "start", "stop", "restart":
		control(s, cmd)
	case "run":
		runService(s, prg, exeDir)
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [install [--userid U --password P --isp EDU|CMCC|CT] | uninstall | start | stop | restart | run]\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}
}

func control(s service.Service, action string) {
	if err := service.Control(s, action); err != nil {
		// stop before uninstall fails harmlessly when the service is not running
		if action == "stop" {
			fmt.Printf("%s: %v\n", action, err)
			return
		}
		log.Fatal("Service control failed", "action", action, "err", err)
	}
	fmt.Printf("Service %s: done\n", action)
}

func runService(s service.Service, prg *program, exeDir string) {
	logPath := envOr("NJUPT_WIFI_LOG", filepath.Join(exeDir, logging.FileName))
	cfgPath := configPath(exeDir)

	cfg, cfgErr := yamlfile.Load(cfgPath)
	level := ""
	if cfgErr == nil {
		level = cfg.LogLevel
	}
	logger, closer, err := logging.New(logPath, level)
	if logger == nil {
		log.Fatal("Setup logging", "err", err)
	}
	defer closer.Close()

	logger.Info("=== NJUPT Wi-Fi starting ===", "exe_dir", exeDir, "log", logPath)
	if cfgErr != nil {
		logger.Fatal("Failed to read config", "path", cfgPath, "err", cfgErr)
	}
	logger.Info("Config loaded", "path", cfgPath, "userid", cfg.Credential.UserID, "isp", cfg.Credential.Carrier)

	prg.cfg = cfg
	prg.logger = logger
	if err := s.Run(); err != nil {
		logger.Fatal("Service run failed", "err", err)
	}
}

type program struct {
	cfg    *yamlfile.Config
	logger *log.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

func (p *program) Start(s service.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	go func() {
		defer close(p.done)
		if err := run(ctx, p.cfg, p.logger); err != nil {
			p.logger.Fatal("Stopped with error", "err", err)
		}
	}()
	return nil
}

func (p *program) Stop(s service.Service) error {
	p.cancel()
	select {
	case <-p.done:
	case <-time.After(stopTimeout):
		p.logger.Warn("Timed out waiting for scheduler to stop")
	}
	return nil
}

// run wires the notifier into the scheduler. It returns when ctx ends or the
// signal source fails.
func run(ctx context.Context, cfg *yamlfile.Config, logger *log.Logger) error {
	portal := httpadapter.NewPortalClient(httpadapter.NewClient(cfg.Timeout), httpadapter.DefaultPortal())
	loginer := client.NewLoginer(portal, logger)
	scheduler := client.NewScheduler(loginer, cfg.Credential, cfg.Debounce, logger)
	var notifier port.ConnectivityNotifier = netchange.New(logger)

	signals := make(chan struct{}, 1)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return notifier.Listen(gctx, signals)
	})
	g.Go(func() error {
		return scheduler.Run(gctx, signals)
	})
	return g.Wait()
}

func executableDir() string {
	exePath, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exePath)
}

func configPath(exeDir string) string {
	if p := os.Getenv("NJUPT_WIFI_CONFIG"); p != "" {
		return p
	}
	p := filepath.Join(exeDir, yamlfile.FileName)
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return yamlfile.FileName
	}
	return p
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
