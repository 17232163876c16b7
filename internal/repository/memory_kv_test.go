package repository_test

import (
	"testing"
	"github.com/nikolayk812/gomarket-cart/internal/repository"
)

func TestMemory(t *testing.T) {
	testKeyValueStore(t, repository.NewMemory())
}
