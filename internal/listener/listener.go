// Package listener owns the server's TCP socket: parsing the "--listen"
// command-line argument, binding the socket, and accepting connections.
package listener

import (
	"fmt"
	"log"
	"net"
)

// ParseArgs validates the command line against "[--listen <port>]" and
// returns the port string to bind ("0" for an ephemeral port when the
// flag is omitted). Any other argument shape, or an empty-string
// argument anywhere, is a usage error.
func ParseArgs(args []string) (port string, err error) {
	if len(args) == 0 {
		return "0", nil
	}
	if len(args) == 2 && args[0] == "--listen" && args[1] != "" {
		return args[1], nil
	}
	return "", fmt.Errorf("usage: uqchessserver [--listen portnum]")
}

// Listen binds a TCP socket on localhost at port, returning the listener
// and the port actually bound (meaningful when port is "0").
func Listen(port string) (net.Listener, int, error) {
	ln, err := net.Listen("tcp", "localhost:"+port)
	if err != nil {
		return nil, 0, err
	}
	addr := ln.Addr().(*net.TCPAddr)
	return ln, addr.Port, nil
}

// Serve accepts connections forever, handing each off to handle on its own
// goroutine. It never returns: an Accept error is logged and the loop
// carries on.
func Serve(ln net.Listener, handle func(net.Conn)) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Printf("uqchessserver: accept error: %v", err)
			continue
		}
		log.Printf("uqchessserver: connection from %s", conn.RemoteAddr())
		go handle(conn)
	}
}
