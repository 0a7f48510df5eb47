package websocket

import (
	"bytes"
	"testing"
	"time"
)

func receiveOne(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case message, ok := <-c.send:
		if !ok {
			t.Fatal("send queue closed unexpectedly")
		}
		return message
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return nil
}

func assertNoMessage(t *testing.T, c *Client) {
	t.Helper()
	select {
	case message := <-c.send:
		t.Errorf("expected no message, got %v", message)
	default:
	}
}

func TestBroadcastExcludesSender(t *testing.T) {
	hub := NewHub()
	sender := NewClient(nil)
	receiver := NewClient(nil)
	room, _ := hub.Join("doc-1", sender)
	hub.Join("doc-1", receiver)

	payload := []byte{0xAA, 0xBB}
	room.Broadcast(payload, sender)

	if message := receiveOne(t, receiver); !bytes.Equal(message, payload) {
		t.Errorf("expected %v, got %v", payload, message)
	}
	assertNoMessage(t, sender)
}

func TestBroadcastReachesAllOtherClients(t *testing.T) {
	hub := NewHub()
	sender := NewClient(nil)
	room, _ := hub.Join("doc-1", sender)

	receivers := make([]*Client, 3)
	for i := range receivers {
		receivers[i] = NewClient(nil)
		hub.Join("doc-1", receivers[i])
	}

	payload := []byte{0x01}
	room.Broadcast(payload, sender)

	for i, receiver := range receivers {
		if message := receiveOne(t, receiver); !bytes.Equal(message, payload) {
			t.Errorf("receiver %d: expected %v, got %v", i, payload, message)
		}
	}
}

func TestJoinReplaysAccumulatedState(t *testing.T) {
	hub := NewHub()
	sender := NewClient(nil)
	room, snapshot := hub.Join("doc-1", sender)
	if snapshot != nil {
		t.Errorf("expected no replay for a fresh room, got %v", snapshot)
	}

	room.Broadcast([]byte{0x01}, sender)
	room.Broadcast([]byte{0x02, 0x03}, sender)

	late := NewClient(nil)
	_, snapshot = hub.Join("doc-1", late)

	expected := []byte{0x01, 0x02, 0x03}
	if !bytes.Equal(snapshot, expected) {
		t.Errorf("expected snapshot %v, got %v", expected, snapshot)
	}
	if message := receiveOne(t, late); !bytes.Equal(message, expected) {
		t.Errorf("expected queued snapshot %v, got %v", expected, message)
	}

	// Live traffic resumes after the snapshot.
	room.Broadcast([]byte{0x04}, sender)
	if message := receiveOne(t, late); !bytes.Equal(message, []byte{0x04}) {
		t.Errorf("expected %v after snapshot, got %v", []byte{0x04}, message)
	}

	if count := room.UpdateCount(); count != 3 {
		t.Errorf("expected 3 logged updates, got %d", count)
	}
}

func TestBroadcastOrderPreserved(t *testing.T) {
	hub := NewHub()
	sender := NewClient(nil)
	room, _ := hub.Join("doc-1", sender)
	receiver := NewClient(nil)
	hub.Join("doc-1", receiver)

	for i := 0; i < 50; i++ {
		room.Broadcast([]byte{byte(i)}, sender)
	}

	for i := 0; i < 50; i++ {
		message := receiveOne(t, receiver)
		if message[0] != byte(i) {
			t.Fatalf("expected payload %d at position %d, got %d", i, i, message[0])
		}
	}
}

func TestSlowClientDropped(t *testing.T) {
	hub := NewHub()
	sender := NewClient(nil)
	room, _ := hub.Join("doc-1", sender)
	slow := NewClient(nil)
	hub.Join("doc-1", slow)
	healthy := NewClient(nil)
	hub.Join("doc-1", healthy)

	// The healthy client drains its queue, the slow one never does.
	// Its queue fills up and overflows on the final broadcast.
	for i := 0; i < sendQueueSize+1; i++ {
		room.Broadcast([]byte{byte(i)}, sender)
		if message := receiveOne(t, healthy); message[0] != byte(i) {
			t.Fatalf("healthy client: expected payload %d, got %d", byte(i), message[0])
		}
	}

	if count := room.MemberCount(); count != 2 {
		t.Errorf("expected slow client to be dropped, member count is %d", count)
	}

	// The dropped client keeps its buffered backlog and a closed queue.
	buffered := 0
	for range slow.send {
		buffered++
	}
	if buffered != sendQueueSize {
		t.Errorf("expected %d buffered payloads, got %d", sendQueueSize, buffered)
	}
}

func TestLeaveIsIdempotent(t *testing.T) {
	hub := NewHub()
	client := NewClient(nil)
	room, _ := hub.Join("doc-1", client)

	room.leave(client)
	room.leave(client)

	if count := room.MemberCount(); count != 0 {
		t.Errorf("expected empty room, got %d members", count)
	}

	// Leaving a room that was never joined is also a no-op.
	room.leave(NewClient(nil))
}

func TestSoleClientBroadcastAppendsToLog(t *testing.T) {
	hub := NewHub()
	sender := NewClient(nil)
	room, _ := hub.Join("doc-1", sender)

	room.Broadcast([]byte{0x01}, sender)
	room.Broadcast([]byte{0x02}, sender)

	assertNoMessage(t, sender)
	if count := room.UpdateCount(); count != 2 {
		t.Errorf("expected 2 logged updates, got %d", count)
	}
}

func TestLateJoinerSeesEveryUpdateExactlyOnce(t *testing.T) {
	hub := NewHub()
	sender := NewClient(nil)
	room, _ := hub.Join("doc-1", sender)

	const total = 200
	expected := make([]byte, 0, total*2)
	for i := 0; i < total; i++ {
		expected = append(expected, byte(i>>8), byte(i))
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < total; i++ {
			room.Broadcast([]byte{byte(i >> 8), byte(i)}, sender)
		}
	}()

	// Join somewhere in the middle of the stream. Everything before the
	// join arrives as the queued snapshot, everything after as live
	// traffic; together they must reproduce the full log without gaps
	// or repeats.
	time.Sleep(time.Millisecond)
	late := NewClient(nil)
	hub.Join("doc-1", late)

	var received []byte
	deadline := time.After(5 * time.Second)
	for len(received) < len(expected) {
		select {
		case message := <-late.send:
			received = append(received, message...)
		case <-deadline:
			t.Fatalf("timed out with %d of %d bytes", len(received), len(expected))
		}
	}
	<-done

	if !bytes.Equal(received, expected) {
		t.Error("received stream does not match the update log")
	}
}
