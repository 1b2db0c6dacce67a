package cache

import (
	"context"
	"testing"
	"time"
)

type entry struct {
	Total int `json:"total"`
}

func TestNilClientIsNoop(t *testing.T) {
	c := NewCache[entry](nil, "dashboard", time.Minute)
	ctx := context.Background()

	if c.Enabled() {
		t.Fatal("Enabled() = true without a client")
	}
	if err := c.Set(ctx, "admin", &entry{Total: 3}); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	got, err := c.Get(ctx, "admin")
	if err != nil || got != nil {
		t.Errorf("Get() = %v, %v; want nil, nil", got, err)
	}
	if err := c.Delete(ctx, "admin", "user:1"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestKey(t *testing.T) {
	if got := NewCache[entry](nil, "dashboard", 0).Key("admin"); got != "dashboard:admin" {
		t.Errorf("Key() = %q", got)
	}
	if got := NewCache[entry](nil, "", 0).Key("admin"); got != "admin" {
		t.Errorf("Key() without prefix = %q", got)
	}
}
