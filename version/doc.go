// Package version exposes build metadata injected with -ldflags:
//
//	go build -ldflags "-X github.com/ncobase/taskmanager/version.Version=v1.2.0 \
//	  -X github.com/ncobase/taskmanager/version.Revision=$(git rev-parse --short HEAD)"
package version
