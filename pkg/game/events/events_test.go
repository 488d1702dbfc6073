package events

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestFlushDeliversInPostingOrder(t *testing.T) {
	d := NewDispatcher()
	var got []Kind
	d.SubscribeAll(func(m Message) { got = append(got, m.Kind) })

	d.Post(Message{Kind: RoomBuilt})
	d.Post(Message{Kind: ResourceLow})
	d.Post(Message{Kind: RoomDemolished})
	if len(got) != 0 {
		t.Fatal("Post delivered before Flush")
	}
	if n := d.Flush(); n != 3 {
		t.Errorf("Flush() = %d, want 3", n)
	}
	want := []Kind{RoomBuilt, ResourceLow, RoomDemolished}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("delivered %v, want %v", got, want)
	}
	if d.Pending() != 0 {
		t.Errorf("Pending() = %d after Flush, want 0", d.Pending())
	}
}

func TestSubscribeFiltersByKind(t *testing.T) {
	d := NewDispatcher()
	built := 0
	d.Subscribe(RoomBuilt, func(Message) { built++ })
	d.Post(Message{Kind: BuildFailed})
	d.Post(Message{Kind: RoomBuilt})
	d.Flush()
	if built != 1 {
		t.Errorf("RoomBuilt handler ran %d times, want 1", built)
	}
}

func TestHandlersPostingDuringFlush(t *testing.T) {
	d := NewDispatcher()
	var order []Kind
	d.Subscribe(ResourceDepleted, func(Message) {
		d.Post(Message{Kind: ResourceRestored})
	})
	d.SubscribeAll(func(m Message) { order = append(order, m.Kind) })

	d.Post(Message{Kind: ResourceDepleted})
	d.Post(Message{Kind: RoomBuilt})
	if n := d.Flush(); n != 3 {
		t.Errorf("Flush() = %d, want 3", n)
	}
	want := []Kind{ResourceDepleted, RoomBuilt, ResourceRestored}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("delivered %v, want %v", order, want)
	}
}

func TestMessageString(t *testing.T) {
	tests := []struct {
		msg  Message
		want string
	}{
		{Message{Kind: RoomBuilt, Room: 2, RoomType: "bridge"}, "room_built room=2 type=bridge"},
		{Message{Kind: ResourceWarning, Resource: "oxygen", Percent: 24.6}, "resource_warning oxygen=25%"},
		{Message{Kind: PlayerMoved}, "player_moved"},
	}
	for _, tt := range tests {
		t.Run(tt.msg.Kind.String(), func(t *testing.T) {
			if got := tt.msg.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}

	failed := Message{Kind: BuildFailed, RoomType: "bridge", Err: errors.New("overlap")}
	if got := failed.String(); !strings.HasSuffix(got, ": overlap") {
		t.Errorf("String() = %q, want suffix %q", got, ": overlap")
	}
}
