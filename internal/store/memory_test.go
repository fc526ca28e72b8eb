package store_test

import (
	"testing"

	"github.com/mitchelldurbincs/kingdomrun/internal/store"
	"github.com/mitchelldurbincs/kingdomrun/internal/store/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, store.NewMemoryStore())
}
