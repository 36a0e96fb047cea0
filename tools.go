//go:build tools

// Package tools pins the mock generator. Run "go generate ./..." from the
// module root after changing pkg/store.Store or pkg/resolve.CrateMap.
package tools

//go:generate go run github.com/vektra/mockery/v2

import (
	_ "github.com/vektra/mockery/v2"
)
