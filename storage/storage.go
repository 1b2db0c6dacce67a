// Package storage stores uploaded files behind the casdoor/oss interface.
package storage

import (
	"fmt"

	"github.com/casdoor/oss"
	"github.com/ncobase/taskmanager/config"
)

// NewStorage new storage
func NewStorage(c *config.Storage) (oss.StorageInterface, error) {
	if c == nil {
		return nil, fmt.Errorf("storage config is nil")
	}
	switch c.Provider {
	case "filesystem", "":
		return NewFileSystem(c.Bucket)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", c.Provider)
	}
}
