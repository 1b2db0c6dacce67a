package redis

import (
	"context"
	"testing"

	"github.com/ncobase/taskmanager/config"
)

func TestConnectDisabled(t *testing.T) {
	client, err := Connect(context.Background(), &config.Redis{})
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if client != nil {
		t.Error("Connect() without an address should return a nil client")
	}
	if err := Close(nil); err != nil {
		t.Errorf("Close(nil) error = %v", err)
	}
}
