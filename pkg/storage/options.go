package storage

import (
	"github.com/iotaledger/hive.go/db"
	"github.com/iotaledger/hive.go/runtime/options"
)

func WithDBEngine(optsDBEngine db.Engine) options.Option[Storage] {
	return func(s *Storage) {
		s.optsDBEngine = optsDBEngine
	}
}
