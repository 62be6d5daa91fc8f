package daemon

import (
	"fmt"
	"os"
	"testing"
)

// TestLiveDaemonConnection connects to a running speech daemon and checks
// status and subscribe. Skipped if the daemon socket doesn't exist.
func TestLiveDaemonConnection(t *testing.T) {
	sockPath := DefaultSocketPath()
	if _, err := os.Stat(sockPath); os.IsNotExist(err) {
		t.Skip("speech daemon not running (no socket at", sockPath, ")")
	}

	client, err := Connect(sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	resp, err := client.Do(Command{Cmd: CmdStatus})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	fmt.Printf("Status: recording=%v locale=%q status=%q\n", resp.Recording, resp.Locale, resp.Status)

	events, err := Connect(sockPath)
	if err != nil {
		t.Fatalf("connect for subscribe: %v", err)
	}
	defer events.Close()

	if _, err := events.Do(Command{Cmd: CmdSubscribe}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	fmt.Println("Subscribe: ok")
}
