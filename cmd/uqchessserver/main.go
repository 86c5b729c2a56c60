// Command uqchessserver mediates chess games between TCP-connected
// clients and a single shared chess engine subprocess.
package main

import (
	"fmt"
	"log"
	"net"
	"os"

	"uqchessserver/internal/config"
	"uqchessserver/internal/engine"
	"uqchessserver/internal/listener"
	"uqchessserver/internal/matchmaker"
	"uqchessserver/internal/registry"
	"uqchessserver/internal/session"
	"uqchessserver/internal/storage"
)

const (
	exitUsage       = 14
	exitListen      = 7
	exitEngineStart = 11
)

func main() {
	port, err := listener.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Usage: uqchessserver [--listen portnum]")
		os.Exit(exitUsage)
	}

	ln, boundPort, err := listener.Listen(port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "uqchessserver: can't listen on port %s\n", port)
		os.Exit(exitListen)
	}

	reg := registry.New()
	driver := engine.New(reg, os.Stderr, os.Exit)
	if err := driver.Start(config.EnginePath()); err != nil {
		fmt.Fprintln(os.Stderr, "uqchessserver: unable to start communication with chess engine")
		os.Exit(exitEngineStart)
	}

	ledger := openLedger()
	waitList := matchmaker.New()

	fmt.Fprintln(os.Stderr, boundPort)

	listener.Serve(ln, func(conn net.Conn) {
		session.New(conn, driver, waitList, reg, ledger).Run()
	})
}

// openLedger tries to open the completed-game ledger. A missing or
// unreachable database is not fatal: the server plays chess perfectly
// well without an audit trail, so a failure here just disables it.
func openLedger() storage.Ledger {
	db, err := storage.OpenPostgres(storage.LoadConfig())
	if err != nil {
		log.Printf("uqchessserver: completed-game ledger disabled: %v", err)
		return nil
	}
	return storage.NewPostgresLedger(db)
}
