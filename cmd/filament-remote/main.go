// filament-remote sends control operations to a running installation
// over its websocket bridge and can tail the notification feed.
//
//	filament-remote -addr host:port spawn [drift|orbit|playhead]
//	filament-remote -addr host:port despawn [node-id]
//	filament-remote -addr host:port trigger
//	filament-remote -addr host:port set <key> <value>
//	filament-remote -addr host:port mute
//	filament-remote -addr host:port quit
//	filament-remote -addr host:port watch
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/filament/bridge"
)

var (
	addrFlag  = flag.String("addr", "", "Bridge address (host:port), matches the installation's [bridge] listen_addr")
	tagFlag   = flag.String("tag", "", "Scan tag for spawned nodes")
	countFlag = flag.Int("count", 0, "Spawn batch size")
	posFlag   = flag.String("pos", "", "Spawn placement as x,y,z in world units")
	watchFlag = flag.Bool("watch", false, "Stay connected after the op and print notifications")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: filament-remote -addr host:port <op> [args]\n")
	fmt.Fprintf(os.Stderr, "ops: spawn [drift|orbit|playhead] | despawn [node-id] | trigger | set <key> <value> | mute | quit | watch\n\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *addrFlag == "" {
		fmt.Fprintf(os.Stderr, "no bridge address: pass -addr matching the installation's [bridge] listen_addr\n")
		os.Exit(2)
	}
	if flag.NArg() == 0 {
		usage()
	}

	cmd, err := buildCommand(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+*addrFlag+"/ws", nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial failed: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	if cmd != nil {
		if err := conn.WriteJSON(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
			os.Exit(1)
		}
	}

	if cmd == nil || *watchFlag {
		watch(conn)
		return
	}

	// The server answers a rejected op with an error notification on
	// this session; silence within the window means it was queued
	conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var n bridge.Notification
	for {
		if err := conn.ReadJSON(&n); err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				fmt.Printf("%s ok\n", cmd.Op)
				return
			}
			if cmd.Op == bridge.OpQuit {
				// Shutdown drops the session before the window closes
				fmt.Println("quit ok")
				return
			}
			fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
			os.Exit(1)
		}
		if n.Event == bridge.EventError {
			fmt.Fprintf(os.Stderr, "rejected: %s\n", n.Error)
			os.Exit(1)
		}
		// Broadcast traffic from the live scene; keep waiting
	}
}

// buildCommand maps positional args onto a wire command
// A nil command with nil error means watch-only
func buildCommand(args []string) (*bridge.Command, error) {
	op := args[0]
	rest := args[1:]

	switch op {
	case "watch":
		return nil, nil

	case bridge.OpSpawn:
		cmd := &bridge.Command{Op: bridge.OpSpawn, Tag: *tagFlag, Count: *countFlag}
		if len(rest) > 0 {
			cmd.Kind = rest[0]
		}
		if *posFlag != "" {
			pos, err := parsePos(*posFlag)
			if err != nil {
				return nil, err
			}
			cmd.Pos = pos
		}
		return cmd, nil

	case bridge.OpDespawn:
		cmd := &bridge.Command{Op: bridge.OpDespawn}
		if len(rest) > 0 {
			node, err := strconv.ParseUint(rest[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("bad node id %q: %w", rest[0], err)
			}
			cmd.Node = node
		}
		return cmd, nil

	case bridge.OpSet:
		if len(rest) != 2 {
			return nil, fmt.Errorf("set needs <key> <value>")
		}
		return &bridge.Command{Op: bridge.OpSet, Key: rest[0], Value: rest[1]}, nil

	case bridge.OpTrigger, bridge.OpMute, bridge.OpQuit:
		return &bridge.Command{Op: op}, nil

	default:
		return nil, fmt.Errorf("unknown op %q", op)
	}
}

func parsePos(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("pos wants x,y,z, got %q", s)
	}
	pos := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad pos component %q: %w", p, err)
		}
		pos[i] = v
	}
	return pos, nil
}

// watch prints the notification feed until interrupted
func watch(conn *websocket.Conn) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var n bridge.Notification
			if err := conn.ReadJSON(&n); err != nil {
				return
			}
			printNotification(n)
		}
	}()

	select {
	case <-sigChan:
		deadline := time.Now().Add(time.Second)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
	case <-done:
	}
}

func printNotification(n bridge.Notification) {
	switch n.Event {
	case bridge.EventEstablished, bridge.EventBroken:
		fmt.Printf("%s hub=%d target=%d slot=%d\n", n.Event, n.Hub, n.Target, n.Slot)
	case bridge.EventSpawned, bridge.EventDespawned:
		fmt.Printf("%s node=%d\n", n.Event, n.Node)
	case bridge.EventBeat:
		fmt.Printf("%s beat=%d accent=%v\n", n.Event, n.Beat, n.Accent)
	case bridge.EventError:
		fmt.Printf("%s %s\n", n.Event, n.Error)
	default:
		fmt.Printf("%s\n", n.Event)
	}
}
