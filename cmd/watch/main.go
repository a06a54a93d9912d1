// Command watch prints the change events a postboard server streams over
// /ws/events, one JSON document per line.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	host := flag.String("host", "localhost:8000", "Server host:port")
	resource := flag.String("resource", "", "Comma separated resources to follow (users, posts); empty follows all")
	secure := flag.Bool("tls", false, "Use wss://")
	flag.Parse()

	u := url.URL{Scheme: "ws", Host: *host, Path: "/ws/events"}
	if *secure {
		u.Scheme = "wss"
	}
	if *resource != "" {
		u.RawQuery = url.Values{"resource": {*resource}}.Encode()
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", u.String(), err)
	}
	defer func() { _ = conn.Close() }()
	log.Printf("Watching %s", u.String())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					log.Printf("Stream closed: %v", err)
				}
				return
			}
			fmt.Println(string(msg))
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
