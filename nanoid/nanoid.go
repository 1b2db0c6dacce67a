// Package nanoid generates short random identifiers.
package nanoid

import (
	"github.com/ncobase/taskmanager/consts"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	defaultSize = 16
)

func getSize(l ...int) int {
	size := defaultSize
	if len(l) > 0 && l[0] > 0 {
		size = l[0]
	}
	return size
}

// Must generate optional length nanoid
func Must(l ...int) string {
	return gonanoid.Must(getSize(l...))
}

// Lower generate optional length nanoid of digits and lowercase letters
func Lower(l ...int) string {
	return gonanoid.MustGenerate(consts.NumLower, getSize(l...))
}

// String generate optional length nanoid of digits and letters
func String(l ...int) string {
	return gonanoid.MustGenerate(consts.NumLowerUpper, getSize(l...))
}
